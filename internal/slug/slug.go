// Package slug turns display names into filesystem-safe handles.
package slug

import (
	"regexp"
	"strings"
)

// Fallback is returned when the input has no letters or digits.
const Fallback = "case"

var (
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)
	hyphensRe  = regexp.MustCompile(`-{2,}`)
)

// Normalize lowercases s, collapses every non-alphanumeric run to one hyphen
// and trims hyphens from both ends. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return NormalizeOr(s, Fallback)
}

// NormalizeOr is Normalize with a caller-chosen fallback. The fallback must
// itself be a normalized handle.
func NormalizeOr(s, fallback string) string {
	v := strings.ToLower(strings.TrimSpace(s))
	v = nonAlnumRe.ReplaceAllString(v, "-")
	v = strings.Trim(v, "-")
	v = hyphensRe.ReplaceAllString(v, "-")
	if v == "" {
		return fallback
	}
	return v
}
