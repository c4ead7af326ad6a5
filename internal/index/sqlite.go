// Package index keeps a SQLite search index over the stored markdown
// documents. The markdown files stay the source of truth. The index is
// derived data and is rebuilt wholesale.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/rcliao/wingman-memory/internal/model"
)

// FileName is the index database name inside the state root.
const FileName = "index.db"

// Index is a SQLite-backed chunk index.
type Index struct {
	db      *sql.DB
	path    string
	entropy *rand.Rand
	logger  *zap.Logger
}

// Open opens or creates the index database at dbPath.
func Open(dbPath string, logger *zap.Logger) (*Index, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	ix := &Index{
		db:      db,
		path:    dbPath,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:  logger,
	}
	if err := ix.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return ix, nil
}

func (ix *Index) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), ix.entropy).String()
}

func (ix *Index) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id         TEXT PRIMARY KEY,
		kind       TEXT NOT NULL,
		handle     TEXT NOT NULL DEFAULT '',
		path       TEXT NOT NULL UNIQUE,
		bytes      INTEGER NOT NULL,
		indexed_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_documents_kind ON documents(kind);
	CREATE INDEX IF NOT EXISTS idx_documents_handle ON documents(handle);

	CREATE TABLE IF NOT EXISTS chunks (
		id          TEXT PRIMARY KEY,
		document_id TEXT NOT NULL REFERENCES documents(id),
		seq         INTEGER NOT NULL,
		heading     TEXT NOT NULL DEFAULT '',
		text        TEXT NOT NULL,
		start_line  INTEGER,
		end_line    INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_chunks_document ON chunks(document_id);
	`
	_, err := ix.db.Exec(schema)
	return err
}

// RebuildResult summarizes a rebuild.
type RebuildResult struct {
	Documents int `json:"documents"`
	Chunks    int `json:"chunks"`
	Skipped   int `json:"skipped"`
}

// Rebuild replaces the whole index with docs in a single transaction.
// Documents that cannot be read are skipped and counted.
func (ix *Index) Rebuild(ctx context.Context, docs []model.Document) (*RebuildResult, error) {
	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks`); err != nil {
		return nil, fmt.Errorf("clear chunks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return nil, fmt.Errorf("clear documents: %w", err)
	}

	res := &RebuildResult{}
	now := time.Now().UTC().Format(time.RFC3339)
	for _, d := range docs {
		if !model.ValidKinds[d.Kind] {
			return nil, fmt.Errorf("invalid document kind %q for %s", d.Kind, d.Path)
		}
		b, err := os.ReadFile(d.Path)
		if err != nil {
			ix.logger.Debug("skipping unreadable document", zap.String("path", d.Path), zap.Error(err))
			res.Skipped++
			continue
		}

		docID := ix.newID()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO documents (id, kind, handle, path, bytes, indexed_at) VALUES (?, ?, ?, ?, ?, ?)`,
			docID, string(d.Kind), d.Handle, d.Path, len(b), now)
		if err != nil {
			return nil, fmt.Errorf("insert document: %w", err)
		}

		for i, c := range chunkDocument(string(b), DefaultMaxChunkSize) {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO chunks (id, document_id, seq, heading, text, start_line, end_line)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				ix.newID(), docID, i, c.Heading, c.Text, c.StartLine, c.EndLine)
			if err != nil {
				return nil, fmt.Errorf("insert chunk: %w", err)
			}
			res.Chunks++
		}
		res.Documents++
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	ix.logger.Debug("rebuilt index",
		zap.String("path", ix.path),
		zap.Int("documents", res.Documents),
		zap.Int("chunks", res.Chunks))
	return res, nil
}

// Close closes the index database.
func (ix *Index) Close() error {
	return ix.db.Close()
}
