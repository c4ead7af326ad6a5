package index

import (
	"context"
	"os"
)

// Stats holds index statistics.
type Stats struct {
	DBPath      string      `json:"db_path"`
	DBSizeBytes int64       `json:"db_size_bytes"`
	Documents   int         `json:"documents"`
	Chunks      int         `json:"chunks"`
	LastIndexed string      `json:"last_indexed,omitempty"`
	Kinds       []KindStats `json:"kinds"`
}

// KindStats holds per-kind counts.
type KindStats struct {
	Kind      string `json:"kind"`
	Documents int    `json:"documents"`
	Bytes     int64  `json:"bytes"`
}

// Stats returns index statistics.
func (ix *Index) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{DBPath: ix.path, Kinds: []KindStats{}}

	if info, err := os.Stat(ix.path); err == nil {
		st.DBSizeBytes = info.Size()
	}

	if err := ix.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&st.Documents); err != nil {
		return nil, err
	}
	if err := ix.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&st.Chunks); err != nil {
		return nil, err
	}
	if err := ix.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(indexed_at), '') FROM documents`).Scan(&st.LastIndexed); err != nil {
		return nil, err
	}

	rows, err := ix.db.QueryContext(ctx, `
		SELECT kind, COUNT(*) AS cnt, COALESCE(SUM(bytes), 0)
		FROM documents
		GROUP BY kind ORDER BY cnt DESC, kind`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var k KindStats
		if err := rows.Scan(&k.Kind, &k.Documents, &k.Bytes); err != nil {
			return nil, err
		}
		st.Kinds = append(st.Kinds, k)
	}
	return st, rows.Err()
}
