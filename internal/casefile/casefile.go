// Package casefile persists one markdown "case file" per handle under its own
// root, separate from the state store.
package casefile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/rcliao/wingman-memory/internal/model"
	"github.com/rcliao/wingman-memory/internal/slug"
	"github.com/rcliao/wingman-memory/internal/store"
	"github.com/rcliao/wingman-memory/internal/templates"
)

// FallbackHandle is used when a handle normalizes to nothing.
const FallbackHandle = "case-file"

// Store reads and writes case files in a single directory.
type Store struct {
	root   string
	tmpl   *templates.Set
	logger *zap.Logger
}

// New returns a case-file Store rooted at root.
func New(root string, tmpl *templates.Set, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tmpl == nil {
		tmpl = templates.New("")
	}
	return &Store{root: root, tmpl: tmpl, logger: logger}
}

// Root returns the case-file directory.
func (s *Store) Root() string { return s.root }

// Resolve normalizes handleOrName and returns the handle and its file path.
func (s *Store) Resolve(handleOrName string) (handle, path string) {
	handle = slug.NormalizeOr(handleOrName, FallbackHandle)
	return handle, filepath.Join(s.root, handle+".md")
}

// List returns the case file names (with .md), sorted. A missing root
// yields an empty list.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.root, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Show returns the content of the case file for handleOrName.
func (s *Store) Show(handleOrName string) (string, error) {
	_, path := s.Resolve(handleOrName)
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("case %w: %s", store.ErrNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

// Init creates a case file from the template with a header naming the
// handle and, when given, the display name.
func (s *Store) Init(handle, name string, force bool) (string, error) {
	if strings.TrimSpace(handle) == "" {
		return "", fmt.Errorf("handle is required")
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("create dir %s: %w", s.root, err)
	}

	h, path := s.Resolve(handle)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("case file %w: %s", store.ErrAlreadyExists, path)
	}

	tmpl, err := s.tmpl.Load(templates.CaseFile)
	if err != nil {
		return "", err
	}
	header := fmt.Sprintf("# Case File (%s)\n\n", h)
	if n := strings.TrimSpace(name); n != "" {
		header = fmt.Sprintf("# Case File: %s (%s)\n\n", n, h)
	}
	content := header + strings.TrimSpace(tmpl) + "\n"

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	s.logger.Debug("initialized case file", zap.String("path", path))
	return path, nil
}

// Upsert creates or overwrites the case file for handleOrName.
func (s *Store) Upsert(handleOrName, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", store.ErrEmptyInput
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("create dir %s: %w", s.root, err)
	}
	_, path := s.Resolve(handleOrName)
	if err := os.WriteFile(path, []byte(store.Normalize(content)), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	s.logger.Debug("wrote case file", zap.String("path", path))
	return path, nil
}

// Documents enumerates every case file for indexing.
func (s *Store) Documents() ([]model.Document, error) {
	names, err := s.List()
	if err != nil {
		return nil, err
	}
	docs := make([]model.Document, 0, len(names))
	for _, n := range names {
		docs = append(docs, model.Document{
			Kind:   model.KindCaseFile,
			Handle: strings.TrimSuffix(n, ".md"),
			Path:   filepath.Join(s.root, n),
		})
	}
	return docs, nil
}
