package markdown

import (
	"reflect"
	"strings"
	"testing"
)

const snapshotDoc = `# Memory: alex

## Key Memories (max 20)
- met at the climbing gym
- likes oolong tea

## Open Loops
- ask about the marathon

## Next Step
- send the playlist
`

func TestSection_PrefixMatch(t *testing.T) {
	lines := Section(snapshotDoc, "Key Memories")
	if got := CountBullets(lines); got != 2 {
		t.Errorf("expected 2 key memory bullets, got %d (%q)", got, lines)
	}
}

func TestSection_StopsAtNextHeading(t *testing.T) {
	lines := Section(snapshotDoc, "Open Loops")
	for _, l := range lines {
		if strings.Contains(l, "playlist") {
			t.Fatalf("section leaked into next heading: %q", lines)
		}
	}
	if CountBullets(lines) != 1 {
		t.Errorf("expected 1 open loop, got %d", CountBullets(lines))
	}
}

func TestSection_RunsToEndOfDocument(t *testing.T) {
	lines := Section(snapshotDoc, "Next Step")
	if len(lines) != 1 || lines[0] != "- send the playlist" {
		t.Errorf("unexpected next step lines %q", lines)
	}
}

func TestSection_NoMatch(t *testing.T) {
	if lines := Section(snapshotDoc, "Missing Heading"); lines != nil {
		t.Errorf("expected nil, got %q", lines)
	}
}

func TestSection_CaseSensitive(t *testing.T) {
	if lines := Section(snapshotDoc, "key memories"); lines != nil {
		t.Errorf("expected case-sensitive miss, got %q", lines)
	}
}

func TestSection_FirstMatchWins(t *testing.T) {
	doc := "## Notes\n- a\n## Notes again\n- b\n- c\n"
	lines := Section(doc, "Notes")
	if CountBullets(lines) != 1 {
		t.Errorf("expected first section only, got %q", lines)
	}
}

func TestSection_IgnoresDeeperHeadings(t *testing.T) {
	doc := "## Key Memories\n### Early\n- one\n### Late\n- two\n## Other\n- three\n"
	if got := CountBullets(Section(doc, "Key Memories")); got != 2 {
		t.Errorf("expected level-3 headings to stay inside the section, got %d bullets", got)
	}
}

func TestSection_IndentedHeading(t *testing.T) {
	doc := "  ## Open Loops\n  - one\n"
	if got := CountBullets(Section(doc, "Open Loops")); got != 1 {
		t.Errorf("expected indented heading to match, got %d", got)
	}
}

func TestCountBullets(t *testing.T) {
	lines := []string{"- a", "   - nested", "-no space", "* star", "", "text - not"}
	if got := CountBullets(lines); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
}

func TestCountBullets_UnicodeIndent(t *testing.T) {
	lines := []string{"- a", "\u00a0- nbsp", "\f- form feed", "\u3000- ideographic", "\u00a0-no space"}
	if got := CountBullets(lines); got != 4 {
		t.Errorf("expected 4, got %d", got)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\n\nb", []string{"a", "", "b"}},
		{"a\r\nb\r\n", []string{"a", "b"}},
		{"a\rb\r", []string{"a", "b"}},
		{"a\r\rb", []string{"a", "", "b"}},
		{"a\vb\fc", []string{"a", "b", "c"}},
		{"a\x1cb\x1dc\x1ed", []string{"a", "b", "c", "d"}},
		{"a\u0085b\u2028c\u2029d", []string{"a", "b", "c", "d"}},
		{"\n", []string{""}},
	}
	for _, tt := range tests {
		if got := splitLines(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitLines(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSection_CarriageReturnOnly(t *testing.T) {
	doc := "## Key Memories\r- a\r- b\r- c\r## Next Step\r- x\r- y\r"
	if got := CountBullets(Section(doc, "Key Memories")); got != 3 {
		t.Errorf("expected 3 key memories, got %d", got)
	}
	if got := CountBullets(Section(doc, "Next Step")); got != 2 {
		t.Errorf("expected 2 next steps, got %d", got)
	}
}

func TestSections(t *testing.T) {
	blocks := Sections(snapshotDoc)
	if len(blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d: %+v", len(blocks), blocks)
	}
	if blocks[0].Heading != "" || blocks[0].Text != "# Memory: alex" {
		t.Errorf("unexpected preamble block %+v", blocks[0])
	}
	if blocks[1].Heading != "Key Memories (max 20)" {
		t.Errorf("unexpected heading %q", blocks[1].Heading)
	}
	if blocks[1].StartLine != 3 {
		t.Errorf("expected key memories to start on line 3, got %d", blocks[1].StartLine)
	}
	if !strings.HasPrefix(blocks[3].Text, "## Next Step") {
		t.Errorf("expected block text to include its heading, got %q", blocks[3].Text)
	}
}

func TestFields(t *testing.T) {
	type kv struct{ k, v string }
	var got []kv
	for k, v := range Fields("- age: 30\n- name:\n- notes: none\n") {
		got = append(got, kv{k, v})
	}
	want := []kv{{"age", "30"}, {"name", ""}, {"notes", "none"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFields_SkipsNonFieldLines(t *testing.T) {
	doc := "# Profile\n- Name: Upper\n- free text bullet\n  -   city :  Lisbon  \n- city: Porto\n"
	var keys, values []string
	for k, v := range Fields(doc) {
		keys = append(keys, k)
		values = append(values, v)
	}
	if !reflect.DeepEqual(keys, []string{"city", "city"}) {
		t.Errorf("expected duplicate city keys, got %v", keys)
	}
	if values[0] != "Lisbon" {
		t.Errorf("expected trimmed value, got %q", values[0])
	}
}

func TestFields_OtherLineEndingsAndIndent(t *testing.T) {
	got := MissingFields("- age: 30\r- name:\r\u00a0- city: none\u2028- job: chef")
	if !reflect.DeepEqual(got, []string{"name", "city"}) {
		t.Errorf("expected [name city], got %v", got)
	}
}

func TestFields_StopsEarly(t *testing.T) {
	n := 0
	for range Fields("- a: 1\n- b: 2\n- c: 3\n") {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("expected iteration to stop at 2, got %d", n)
	}
}

func TestIsMissing(t *testing.T) {
	cases := map[string]bool{
		"":         true,
		"null":     true,
		"NULL":     true,
		"None":     true,
		"[]":       true,
		"[ ]":      true,
		"[   ]":    true,
		"0":        false,
		"nothing":  false,
		"[x]":      false,
		"none yet": false,
	}
	for in, want := range cases {
		if got := IsMissing(in); got != want {
			t.Errorf("IsMissing(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestMissingFields(t *testing.T) {
	got := MissingFields("- age: 30\n- name:\n- notes: none\n")
	if !reflect.DeepEqual(got, []string{"name", "notes"}) {
		t.Errorf("expected [name notes], got %v", got)
	}
}
