package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rcliao/wingman-memory/internal/model"
)

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "memory.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	return path
}

func bullets(n int, word string) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "- %s %d\n", word, i)
	}
	return sb.String()
}

func TestValidate_Valid(t *testing.T) {
	doc := "# Memory\n\n## Key Memories\n- one\n\n## Open Loops\n- two\n\n## Next Step\n- three\n"
	path := writeSnapshot(t, doc)
	if errs := Validate(path, model.DefaultLimits()); len(errs) != 0 {
		t.Errorf("expected no violations, got %v", errs)
	}
}

func TestValidate_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.md")
	errs := Validate(path, model.DefaultLimits())
	want := "Missing snapshot: " + path
	if len(errs) != 1 || errs[0] != want {
		t.Errorf("expected [%q], got %v", want, errs)
	}
}

func TestValidate_TooManyKeyMemories(t *testing.T) {
	doc := "## Key Memories\n" + bullets(21, "k") + "## Open Loops\n\n## Next Step\n"
	limits := model.Limits{MaxChars: 100000, MaxKeyMemories: 20, MaxOpenLoops: 5, MaxNextSteps: 1}
	errs := ValidateText("memory.md", doc, limits)
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 violation, got %v", errs)
	}
	for _, want := range []string{"Key Memories", "21", "20"} {
		if !strings.Contains(errs[0], want) {
			t.Errorf("expected %q in %q", want, errs[0])
		}
	}
}

func TestValidate_CarriageReturnLineEndings(t *testing.T) {
	doc := "## Key Memories\r" + strings.Repeat("- k\r", 25) + "## Next Step\r- a\r- b\r"
	errs := ValidateText("memory.md", doc, model.DefaultLimits())
	want := []string{
		"memory.md: too many Key Memories (25 > 20)",
		"memory.md: too many Next Step bullets (2 > 1)",
	}
	if fmt.Sprint(errs) != fmt.Sprint(want) {
		t.Errorf("expected %v, got %v", want, errs)
	}
}

func TestValidate_UnicodeIndentedBullets(t *testing.T) {
	doc := "## Next Step\n- a\n\u00a0- b\n\f- c\n"
	errs := ValidateText("memory.md", doc, model.DefaultLimits())
	if len(errs) != 1 || errs[0] != "memory.md: too many Next Step bullets (3 > 1)" {
		t.Errorf("expected one next-step violation for 3 bullets, got %v", errs)
	}
}

func TestValidate_LengthThenSections(t *testing.T) {
	body := "## Key Memories\n- a\n## Open Loops\n" + bullets(6, "loop") + "## Next Step\n- x\n- y\n## Notes\n"
	pad := 1500 - len(body)
	doc := "\n\n" + body + strings.Repeat("z", pad) + "\n\n   "
	if n := len(strings.TrimSpace(doc)); n != 1500 {
		t.Fatalf("fixture should trim to 1500 chars, got %d", n)
	}

	errs := ValidateText("memory.md", doc, model.DefaultLimits())
	if len(errs) != 3 {
		t.Fatalf("expected 3 violations, got %v", errs)
	}
	if !strings.Contains(errs[0], "1500") || !strings.Contains(errs[0], "1200") {
		t.Errorf("expected length violation first, got %q", errs[0])
	}
	if !strings.Contains(errs[1], "Open Loops") || !strings.Contains(errs[1], "(6 > 5)") {
		t.Errorf("expected open loops second, got %q", errs[1])
	}
	if !strings.Contains(errs[2], "Next Step") || !strings.Contains(errs[2], "(2 > 1)") {
		t.Errorf("expected next step third, got %q", errs[2])
	}
}

func TestValidate_AllFour(t *testing.T) {
	doc := "## Key Memories\n" + bullets(3, "k") + "## Open Loops\n" + bullets(3, "o") + "## Next Steps\n" + bullets(3, "n")
	limits := model.Limits{MaxChars: 10, MaxKeyMemories: 2, MaxOpenLoops: 2, MaxNextSteps: 2}
	errs := ValidateText("m.md", doc, limits)
	want := []string{"too long", "Key Memories", "Open Loops", "Next Step"}
	if len(errs) != len(want) {
		t.Fatalf("expected %d violations, got %v", len(want), errs)
	}
	for i, w := range want {
		if !strings.Contains(errs[i], w) {
			t.Errorf("violation %d: expected %q in %q", i, w, errs[i])
		}
	}
}

func TestValidate_AtLimitIsValid(t *testing.T) {
	limits := model.DefaultLimits()
	doc := "## Key Memories\n" + bullets(20, "k") + "## Next Step\n- only one\n"
	if errs := ValidateText("m.md", doc, limits); len(errs) != 0 {
		t.Errorf("expected at-limit doc to pass, got %v", errs)
	}

	exact := strings.Repeat("a", limits.MaxChars)
	if errs := ValidateText("m.md", "  "+exact+"\n", limits); len(errs) != 0 {
		t.Errorf("expected %d chars to pass, got %v", limits.MaxChars, errs)
	}
}

func TestValidate_CountsRunesNotBytes(t *testing.T) {
	limits := model.Limits{MaxChars: 5, MaxKeyMemories: 1, MaxOpenLoops: 1, MaxNextSteps: 1}
	if errs := ValidateText("m.md", "ééééé", limits); len(errs) != 0 {
		t.Errorf("expected 5 runes to fit in 5 chars, got %v", errs)
	}
}

func TestValidate_NamesFile(t *testing.T) {
	doc := "## Open Loops\n" + bullets(6, "o")
	path := writeSnapshot(t, doc)
	errs := Validate(path, model.DefaultLimits())
	if len(errs) != 1 || !strings.HasPrefix(errs[0], path+":") {
		t.Errorf("expected violation naming %s, got %v", path, errs)
	}
}

func TestValidate_ConcurrentReaders(t *testing.T) {
	path := writeSnapshot(t, "## Next Step\n- a\n- b\n")
	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Validate(path, model.DefaultLimits())
		}(i)
	}
	wg.Wait()
	for i, r := range results {
		if len(r) != 1 {
			t.Errorf("reader %d: expected 1 violation, got %v", i, r)
		}
	}
}
