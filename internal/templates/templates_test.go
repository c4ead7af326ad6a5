package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	got := Render("{{TITLE}} for {{CRUSH_NAME}} ({{HANDLE}}) on {{DATE}} at {{DATE_TIME}}", Vars{
		Date:      "2026-10-15",
		DateTime:  "2026-10-15 09:30",
		Handle:    "alex",
		CrushName: "Alex",
		Title:     "Coffee",
	})
	want := "Coffee for Alex (alex) on 2026-10-15 at 2026-10-15 09:30"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_NoRecursiveExpansion(t *testing.T) {
	got := Render("{{TITLE}}", Vars{Title: "{{HANDLE}}", Handle: "x"})
	if got != "{{HANDLE}}" {
		t.Errorf("expected value to stay literal, got %q", got)
	}
}

func TestRender_UnknownTokensKept(t *testing.T) {
	got := Render("{{OTHER}} {{DATE}}", Vars{Date: "d"})
	if got != "{{OTHER}} d" {
		t.Errorf("unexpected %q", got)
	}
}

func TestLoad_Defaults(t *testing.T) {
	s := New("")
	for _, name := range []string{UserProfile, UserMemory, CrushProfile, CrushMemory, MemoryLog, CaseFile} {
		text, err := s.Load(name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if strings.TrimSpace(text) == "" {
			t.Errorf("template %s is empty", name)
		}
	}
}

func TestLoad_SnapshotTemplatesHaveTrackedSections(t *testing.T) {
	s := New("")
	for _, name := range []string{UserMemory, CrushMemory} {
		text, _ := s.Load(name)
		for _, h := range []string{"## Key Memories", "## Open Loops", "## Next Step"} {
			if !strings.Contains(text, h) {
				t.Errorf("%s missing %q", name, h)
			}
		}
	}
}

func TestLoad_DirectoryOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, UserMemory), []byte("custom {{DATE}}"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := New(dir)

	got, err := s.Execute(UserMemory, Vars{Date: "today"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got != "custom today" {
		t.Errorf("expected override, got %q", got)
	}

	// Files absent from the directory fall back to the built-in copy.
	fallback, err := s.Load(UserProfile)
	if err != nil {
		t.Fatalf("load fallback: %v", err)
	}
	if !strings.Contains(fallback, "# User Profile") {
		t.Errorf("expected built-in user profile, got %q", fallback)
	}
}

func TestLoad_Unknown(t *testing.T) {
	if _, err := New("").Load("nope.md"); err == nil {
		t.Error("expected error for unknown template")
	}
}
