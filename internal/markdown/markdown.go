// Package markdown scans memory and profile documents by heading and field line.
package markdown

import (
	"iter"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const headingMarker = "## "

// isLineBreak reports whether r ends a line: \n, \r, \v, \f, the
// file/group/record separators, NEL and the Unicode line and paragraph
// separators.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// splitLines breaks text on any line terminator, treating \r\n as one.
// Empty lines are kept. A trailing terminator does not produce an extra
// empty line.
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, text[start:i])
		i += size
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// headingTitle reports whether line is a level-2 heading and returns its title.
func headingTitle(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, headingMarker) {
		return "", false
	}
	return trimmed[len(headingMarker):], true
}

// Section returns the lines under the first level-2 heading whose title
// starts with prefix, up to the next level-2 heading or end of text.
// Matching is case-sensitive. No match yields nil.
func Section(text, prefix string) []string {
	lines := splitLines(text)
	start := -1
	for i, line := range lines {
		if title, ok := headingTitle(line); ok && strings.HasPrefix(title, prefix) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	var out []string
	for _, line := range lines[start:] {
		if _, ok := headingTitle(line); ok {
			break
		}
		out = append(out, line)
	}
	return out
}

// CountBullets counts lines that start with "- " once leading whitespace is removed.
func CountBullets(lines []string) int {
	n := 0
	for _, l := range lines {
		if strings.HasPrefix(strings.TrimLeftFunc(l, unicode.IsSpace), "- ") {
			n++
		}
	}
	return n
}

// Block is a heading-delimited run of lines. The block before the first
// level-2 heading has an empty Heading.
type Block struct {
	Heading   string
	Text      string
	StartLine int
	EndLine   int
}

// Sections splits text into level-2 heading blocks, in document order.
// Blocks with no non-blank content are dropped.
func Sections(text string) []Block {
	lines := splitLines(text)
	var blocks []Block
	cur := Block{StartLine: 1}
	var body []string

	flush := func(end int) {
		t := strings.TrimSpace(strings.Join(body, "\n"))
		if t != "" {
			cur.Text = t
			cur.EndLine = end
			blocks = append(blocks, cur)
		}
		body = nil
	}

	for i, line := range lines {
		if title, ok := headingTitle(line); ok {
			flush(i)
			cur = Block{Heading: title, StartLine: i + 1}
		}
		body = append(body, line)
	}
	flush(len(lines))
	return blocks
}

var fieldLineRe = regexp.MustCompile(`^-\s+([a-z0-9_]+)\s*:\s*(.*)\s*$`)

// Fields yields every `- key: value` line in document order. Duplicate keys
// are yielded as often as they appear.
func Fields(text string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, line := range splitLines(text) {
			m := fieldLineRe.FindStringSubmatch(strings.TrimLeftFunc(line, unicode.IsSpace))
			if m == nil {
				continue
			}
			if !yield(m[1], strings.TrimSpace(m[2])) {
				return
			}
		}
	}
}

// IsMissing reports whether a field value counts as unfilled.
func IsMissing(v string) bool {
	if v == "" {
		return true
	}
	lowered := strings.ToLower(v)
	switch lowered {
	case "null", "none":
		return true
	}
	return strings.ReplaceAll(lowered, " ", "") == "[]"
}

// MissingFields returns the keys of every field whose value is missing.
func MissingFields(text string) []string {
	var keys []string
	for k, v := range Fields(text) {
		if IsMissing(v) {
			keys = append(keys, k)
		}
	}
	return keys
}
