package casefile

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rcliao/wingman-memory/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "case-files"), nil, nil)
}

func TestResolve(t *testing.T) {
	s := newTestStore(t)
	h, p := s.Resolve("Alex @ Work")
	if h != "alex-work" {
		t.Errorf("expected alex-work, got %q", h)
	}
	if p != filepath.Join(s.Root(), "alex-work.md") {
		t.Errorf("unexpected path %q", p)
	}
	if h, _ := s.Resolve("???"); h != FallbackHandle {
		t.Errorf("expected fallback handle, got %q", h)
	}
}

func TestInitAndShow(t *testing.T) {
	s := newTestStore(t)
	path, err := s.Init("alex-work", "Alex", false)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	got, err := s.Show("Alex Work")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.HasPrefix(got, "# Case File: Alex (alex-work)\n\n") {
		t.Errorf("unexpected header in %q", got)
	}
	if !strings.HasSuffix(got, "\n") || strings.HasSuffix(got, "\n\n") {
		t.Errorf("expected single trailing newline in %q", got)
	}
	if filepath.Dir(path) != s.Root() {
		t.Errorf("unexpected path %s", path)
	}
}

func TestInit_NoName(t *testing.T) {
	s := newTestStore(t)
	s.Init("sam", "", false)
	got, _ := s.Show("sam")
	if !strings.HasPrefix(got, "# Case File (sam)\n\n") {
		t.Errorf("unexpected header in %q", got)
	}
}

func TestInit_Errors(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Init("   ", "", false); err == nil {
		t.Error("expected error for blank handle")
	}
	s.Init("sam", "", false)
	if _, err := s.Init("sam", "", false); !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
	if _, err := s.Init("sam", "Sam", true); err != nil {
		t.Errorf("forced init: %v", err)
	}
}

func TestShowNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Show("nobody"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpsertAndList(t *testing.T) {
	s := newTestStore(t)
	if names, _ := s.List(); len(names) != 0 {
		t.Fatalf("expected empty list, got %v", names)
	}

	if _, err := s.Upsert("zed", "# Zed\n\n\n"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	s.Upsert("amy", "# Amy")
	if _, err := s.Upsert("amy", "\n \n"); !errors.Is(err, store.ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}

	names, _ := s.List()
	if !reflect.DeepEqual(names, []string{"amy.md", "zed.md"}) {
		t.Errorf("unexpected list %v", names)
	}
	got, _ := s.Show("zed")
	if got != "# Zed\n" {
		t.Errorf("expected normalized content, got %q", got)
	}

	docs, _ := s.Documents()
	if len(docs) != 2 || docs[0].Handle != "amy" {
		t.Errorf("unexpected documents %+v", docs)
	}
}
