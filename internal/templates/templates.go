// Package templates loads and renders the markdown templates used to create
// new profiles, snapshots, logs and case files.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Template file names. A templates directory may override any of them.
const (
	UserProfile  = "user-profile.md"
	UserMemory   = "user-memory.md"
	CrushProfile = "crush-profile.md"
	CrushMemory  = "crush-memory.md"
	MemoryLog    = "memory-log.md"
	CaseFile     = "case-file.md"
)

//go:embed defaults/*.md
var defaults embed.FS

// Set resolves templates from an optional directory, falling back to the
// built-in copies file by file.
type Set struct {
	dir string
}

// New returns a Set that prefers files in dir. An empty dir uses only the
// built-in templates.
func New(dir string) *Set {
	return &Set{dir: dir}
}

// Dir returns the override directory, or "" when none is configured.
func (s *Set) Dir() string {
	return s.dir
}

// Load returns the raw text of the named template.
func (s *Set) Load(name string) (string, error) {
	if s != nil && s.dir != "" {
		b, err := os.ReadFile(filepath.Join(s.dir, name))
		if err == nil {
			return string(b), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("read template %s: %w", name, err)
		}
	}
	b, err := defaults.ReadFile("defaults/" + name)
	if err != nil {
		return "", fmt.Errorf("unknown template %q", name)
	}
	return string(b), nil
}

// Vars are the placeholder values substituted by Render.
type Vars struct {
	Date      string
	DateTime  string
	Handle    string
	CrushName string
	Title     string
}

// Render replaces each placeholder token with its value. Substitution is
// literal: values are not escaped and are never expanded again.
func Render(tmpl string, v Vars) string {
	r := strings.NewReplacer(
		"{{DATE}}", v.Date,
		"{{DATE_TIME}}", v.DateTime,
		"{{HANDLE}}", v.Handle,
		"{{CRUSH_NAME}}", v.CrushName,
		"{{TITLE}}", v.Title,
	)
	return r.Replace(tmpl)
}

// Execute loads and renders the named template.
func (s *Set) Execute(name string, v Vars) (string, error) {
	tmpl, err := s.Load(name)
	if err != nil {
		return "", err
	}
	return Render(tmpl, v), nil
}
