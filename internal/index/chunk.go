package index

import (
	"strings"

	"github.com/rcliao/wingman-memory/internal/markdown"
)

// DefaultMaxChunkSize caps the text stored per chunk row.
const DefaultMaxChunkSize = 600

type chunk struct {
	Heading   string
	Text      string
	StartLine int
	EndLine   int
}

// chunkDocument splits text into one chunk per level-2 section, hard-splitting
// sections longer than maxSize on line boundaries.
func chunkDocument(text string, maxSize int) []chunk {
	var out []chunk
	for _, b := range markdown.Sections(text) {
		if len(b.Text) <= maxSize {
			out = append(out, chunk{Heading: b.Heading, Text: b.Text, StartLine: b.StartLine, EndLine: b.EndLine})
			continue
		}
		out = append(out, hardSplit(b, maxSize)...)
	}
	return out
}

// hardSplit breaks an oversized block on line boundaries. A single line
// longer than maxSize becomes its own chunk.
func hardSplit(b markdown.Block, maxSize int) []chunk {
	lines := strings.Split(b.Text, "\n")
	var out []chunk
	var current []string
	curStart := b.StartLine
	curLen := 0

	flush := func(end int) {
		t := strings.TrimSpace(strings.Join(current, "\n"))
		if t != "" {
			out = append(out, chunk{Heading: b.Heading, Text: t, StartLine: curStart, EndLine: end})
		}
		current = nil
		curLen = 0
	}

	for i, line := range lines {
		lineNum := b.StartLine + i
		if curLen+len(line) > maxSize && len(current) > 0 {
			flush(lineNum - 1)
			curStart = lineNum
		}
		current = append(current, line)
		curLen += len(line) + 1
	}
	flush(b.StartLine + len(lines) - 1)
	return out
}
