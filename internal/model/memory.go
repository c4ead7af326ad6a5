// Package model defines the core memory data types.
package model

// Limits bounds the size and shape of a memory snapshot.
type Limits struct {
	MaxChars       int `koanf:"max_chars" json:"max_chars"`
	MaxKeyMemories int `koanf:"max_key_memories" json:"max_key_memories"`
	MaxOpenLoops   int `koanf:"max_open_loops" json:"max_open_loops"`
	MaxNextSteps   int `koanf:"max_next_steps" json:"max_next_steps"`
}

const (
	DefaultMaxChars       = 1200
	DefaultMaxKeyMemories = 20
	DefaultMaxOpenLoops   = 5
	DefaultMaxNextSteps   = 1
)

// DefaultLimits returns the limits applied to user and crush snapshots.
func DefaultLimits() Limits {
	return Limits{
		MaxChars:       DefaultMaxChars,
		MaxKeyMemories: DefaultMaxKeyMemories,
		MaxOpenLoops:   DefaultMaxOpenLoops,
		MaxNextSteps:   DefaultMaxNextSteps,
	}
}

// Kind identifies what a stored markdown document is.
type Kind string

const (
	KindUserProfile  Kind = "user-profile"
	KindUserMemory   Kind = "user-memory"
	KindCrushProfile Kind = "crush-profile"
	KindCrushMemory  Kind = "crush-memory"
	KindCrushLog     Kind = "crush-log"
	KindCaseFile     Kind = "case-file"
)

// ValidKinds are the document kinds the index accepts.
var ValidKinds = map[Kind]bool{
	KindUserProfile:  true,
	KindUserMemory:   true,
	KindCrushProfile: true,
	KindCrushMemory:  true,
	KindCrushLog:     true,
	KindCaseFile:     true,
}

// Document is a markdown file on disk together with its role.
type Document struct {
	Kind   Kind   `json:"kind"`
	Handle string `json:"handle,omitempty"`
	Path   string `json:"path"`
}

// Field is a `- key: value` line from a profile document.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
