package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/rcliao/wingman-memory/internal/slug"
	"github.com/rcliao/wingman-memory/internal/templates"
)

// logStampLayout names log files by minute, e.g. 2026-10-15-0930.md.
const logStampLayout = "2006-01-02-1504"

// ListCrushes returns the crush handles under crushes/, sorted. A missing
// crushes directory yields an empty list.
func (s *Store) ListCrushes() ([]string, error) {
	entries, err := os.ReadDir(s.crushesDir())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.crushesDir(), err)
	}
	var handles []string
	for _, e := range entries {
		if e.IsDir() {
			handles = append(handles, e.Name())
		}
	}
	sort.Strings(handles)
	return handles, nil
}

// InitCrush creates crushes/<slug> with a log directory and fresh profile and
// memory documents. name defaults to the handle.
func (s *Store) InitCrush(handle, name string, force bool) (string, error) {
	h := slug.Normalize(handle)
	crushName := strings.TrimSpace(name)
	if crushName == "" {
		crushName = h
	}

	dir := s.CrushDir(h)
	if exists(dir) && !force {
		return "", fmt.Errorf("crush %w: %s", ErrAlreadyExists, dir)
	}
	if err := s.ensureDir(s.CrushLogDir(h)); err != nil {
		return "", err
	}

	v := s.vars()
	v.Handle = h
	v.CrushName = crushName

	docs := []struct {
		path string
		tmpl string
	}{
		{s.CrushProfilePath(h), templates.CrushProfile},
		{s.CrushMemoryPath(h), templates.CrushMemory},
	}
	for _, d := range docs {
		content, err := s.render(d.tmpl, v)
		if err != nil {
			return "", err
		}
		if err := s.writeText(d.path, content); err != nil {
			return "", err
		}
	}
	s.logger.Debug("initialized crush", zap.String("handle", h), zap.String("dir", dir))
	return dir, nil
}

// SetActive records handle (normalized) as the active crush.
func (s *Store) SetActive(handle string) (string, error) {
	h := slug.Normalize(handle)
	if err := s.writeText(s.activeHandlePath(), h+"\n"); err != nil {
		return "", err
	}
	return h, nil
}

// Active returns the active handle, or "" when none has been set.
func (s *Store) Active() (string, error) {
	b, err := os.ReadFile(s.activeHandlePath())
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read active handle: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// ResolveHandle returns handle when given, otherwise the active handle.
func (s *Store) ResolveHandle(handle string) (string, error) {
	if strings.TrimSpace(handle) != "" {
		return handle, nil
	}
	active, err := s.Active()
	if err != nil {
		return "", err
	}
	if active == "" {
		return "", ErrNoHandle
	}
	return active, nil
}

// AppendLogParams holds parameters for adding a crush log entry.
type AppendLogParams struct {
	Handle    string
	Content   string
	Title     string // used when Content is blank; defaults to "Session"
	CrushName string // used when Content is blank; defaults to the handle
}

// AppendLog writes a new timestamped file under crushes/<slug>/log. Blank
// content renders the log template instead. Existing logs are never
// overwritten: a second entry in the same minute gets a -2, -3, ... suffix.
func (s *Store) AppendLog(p AppendLogParams) (string, error) {
	h := slug.Normalize(p.Handle)
	dir := s.CrushLogDir(h)
	if err := s.ensureDir(dir); err != nil {
		return "", err
	}

	now := s.now()
	stamp := now.Format(logStampLayout)
	path := filepath.Join(dir, stamp+".md")
	for n := 2; exists(path); n++ {
		path = filepath.Join(dir, fmt.Sprintf("%s-%d.md", stamp, n))
	}

	content := p.Content
	if strings.TrimSpace(content) == "" {
		title := strings.TrimSpace(p.Title)
		if title == "" {
			title = "Session"
		}
		crushName := strings.TrimSpace(p.CrushName)
		if crushName == "" {
			crushName = h
		}
		v := s.vars()
		v.Handle = h
		v.CrushName = crushName
		v.Title = title
		tmpl, err := s.tmpl.Execute(templates.MemoryLog, v)
		if err != nil {
			return "", err
		}
		content = tmpl
	}

	if err := s.writeText(path, Normalize(content)); err != nil {
		return "", err
	}
	return path, nil
}

// Logs returns the log file paths for handle, sorted by name.
func (s *Store) Logs(handle string) ([]string, error) {
	entries, err := os.ReadDir(s.CrushLogDir(handle))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		paths = append(paths, filepath.Join(s.CrushLogDir(handle), e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
