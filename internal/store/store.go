// Package store persists the user and per-crush markdown documents under a
// state root directory.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/wingman-memory/internal/markdown"
	"github.com/rcliao/wingman-memory/internal/model"
	"github.com/rcliao/wingman-memory/internal/slug"
	"github.com/rcliao/wingman-memory/internal/templates"
)

var (
	ErrNotFound      = errors.New("file not found")
	ErrEmptyInput    = errors.New("no content provided")
	ErrAlreadyExists = errors.New("already exists")
	ErrNoHandle      = errors.New("no handle given and no active handle set")
)

// Paths lists the well-known locations inside a state root.
type Paths struct {
	StateDir     string `json:"state_dir"`
	ActiveHandle string `json:"active_handle"`
	UserProfile  string `json:"user_profile"`
	UserMemory   string `json:"user_memory"`
	CrushesDir   string `json:"crushes_dir"`
}

// Store reads and writes documents under a single state root.
// Writes replace whole files. Nothing is ever deleted.
type Store struct {
	root   string
	tmpl   *templates.Set
	logger *zap.Logger
	now    func() time.Time
}

// New returns a Store rooted at root. The directory is created lazily by the
// operations that write.
func New(root string, tmpl *templates.Set, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tmpl == nil {
		tmpl = templates.New("")
	}
	return &Store{root: root, tmpl: tmpl, logger: logger, now: time.Now}
}

// Root returns the state directory.
func (s *Store) Root() string { return s.root }

// Paths returns the key locations for this root.
func (s *Store) Paths() Paths {
	return Paths{
		StateDir:     s.root,
		ActiveHandle: s.activeHandlePath(),
		UserProfile:  s.UserProfilePath(),
		UserMemory:   s.UserMemoryPath(),
		CrushesDir:   s.crushesDir(),
	}
}

func (s *Store) activeHandlePath() string { return filepath.Join(s.root, "active_handle.txt") }
func (s *Store) userDir() string          { return filepath.Join(s.root, "user") }
func (s *Store) crushesDir() string       { return filepath.Join(s.root, "crushes") }

// UserProfilePath is user/profile.md.
func (s *Store) UserProfilePath() string { return filepath.Join(s.userDir(), "profile.md") }

// UserMemoryPath is user/memory.md.
func (s *Store) UserMemoryPath() string { return filepath.Join(s.userDir(), "memory.md") }

// CrushDir returns crushes/<slug>. The handle is normalized first.
func (s *Store) CrushDir(handle string) string {
	return filepath.Join(s.crushesDir(), slug.Normalize(handle))
}

// CrushProfilePath is crushes/<slug>/profile.md.
func (s *Store) CrushProfilePath(handle string) string {
	return filepath.Join(s.CrushDir(handle), "profile.md")
}

// CrushMemoryPath is crushes/<slug>/memory.md.
func (s *Store) CrushMemoryPath(handle string) string {
	return filepath.Join(s.CrushDir(handle), "memory.md")
}

// CrushLogDir is crushes/<slug>/log.
func (s *Store) CrushLogDir(handle string) string {
	return filepath.Join(s.CrushDir(handle), "log")
}

func (s *Store) ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	return nil
}

// writeText replaces path with content, creating parent directories.
func (s *Store) writeText(path, content string) error {
	if err := s.ensureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	s.logger.Debug("wrote document", zap.String("path", path), zap.Int("bytes", len(content)))
	return nil
}

// Normalize trims trailing whitespace and ends the text with one newline.
func Normalize(content string) string {
	return strings.TrimRight(content, " \t\r\n\v\f") + "\n"
}

// Read returns the content of path, or ErrNotFound.
func (s *Store) Read(path string) (string, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

// Upsert overwrites path with content. Blank content is rejected with
// ErrEmptyInput and leaves the file untouched.
func (s *Store) Upsert(path, content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyInput
	}
	return s.writeText(path, Normalize(content))
}

// Missing returns the keys of unfilled `- key: value` fields in the profile at path.
func (s *Store) Missing(path string) ([]string, error) {
	text, err := s.Read(path)
	if err != nil {
		return nil, err
	}
	return markdown.MissingFields(text), nil
}

// Fields returns every `- key: value` field in the document at path, in order.
func (s *Store) Fields(path string) ([]model.Field, error) {
	text, err := s.Read(path)
	if err != nil {
		return nil, err
	}
	fields := []model.Field{}
	for k, v := range markdown.Fields(text) {
		fields = append(fields, model.Field{Key: k, Value: v})
	}
	return fields, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (s *Store) vars() templates.Vars {
	now := s.now()
	return templates.Vars{
		Date:     now.Format("2006-01-02"),
		DateTime: now.Format("2006-01-02 15:04"),
	}
}

// render executes a template and normalizes its trailing newline.
func (s *Store) render(name string, v templates.Vars) (string, error) {
	text, err := s.tmpl.Execute(name, v)
	if err != nil {
		return "", err
	}
	return Normalize(text), nil
}
