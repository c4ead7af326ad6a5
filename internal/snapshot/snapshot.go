// Package snapshot checks memory snapshots against size and shape limits.
package snapshot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rcliao/wingman-memory/internal/markdown"
	"github.com/rcliao/wingman-memory/internal/model"
)

// Section heading prefixes tracked by the validator.
const (
	KeyMemories = "Key Memories"
	OpenLoops   = "Open Loops"
	NextStep    = "Next Step"
)

// Validate reads the snapshot at path and returns one message per violated
// limit. An empty result means the snapshot is valid. It only reads the file.
func Validate(path string, limits model.Limits) []string {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{fmt.Sprintf("Missing snapshot: %s", path)}
	}
	if err != nil {
		return []string{fmt.Sprintf("%s: unreadable (%v)", path, err)}
	}
	return ValidateText(path, string(b), limits)
}

// ValidateText applies the limits to snapshot text. name prefixes each message.
// Violations are ordered: length, Key Memories, Open Loops, Next Step.
func ValidateText(name, text string, limits model.Limits) []string {
	txt := strings.TrimSpace(text)
	var errs []string

	if n := utf8.RuneCountInString(txt); n > limits.MaxChars {
		errs = append(errs, fmt.Sprintf("%s: too long (%d chars > %d)", name, n, limits.MaxChars))
	}

	checks := []struct {
		heading string
		label   string
		max     int
	}{
		{KeyMemories, "Key Memories", limits.MaxKeyMemories},
		{OpenLoops, "Open Loops", limits.MaxOpenLoops},
		{NextStep, "Next Step bullets", limits.MaxNextSteps},
	}
	for _, c := range checks {
		count := markdown.CountBullets(markdown.Section(txt, c.heading))
		if count > c.max {
			errs = append(errs, fmt.Sprintf("%s: too many %s (%d > %d)", name, c.label, count, c.max))
		}
	}

	return errs
}
