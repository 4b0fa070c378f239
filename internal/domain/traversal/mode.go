package traversal

import m "bytemut.dev/pkg/bytemut/internal/model"

// ModeKind tells a traversal whether it discovers candidates or rewrites one.
type ModeKind int

const (
	// Enumeration records every candidate and emits instructions unchanged.
	Enumeration ModeKind = iota
	// Application rewrites the single instruction matching the target.
	Application
)

// String returns the mode name.
func (k ModeKind) String() string {
	switch k {
	case Enumeration:
		return "enumeration"
	case Application:
		return "application"
	default:
		return "unknown"
	}
}

// Mode is either Enumerate() or Apply(target).
type Mode struct {
	kind   ModeKind
	target m.MutationIdentifier
}

// Enumerate returns the enumeration mode.
func Enumerate() Mode {
	return Mode{kind: Enumeration}
}

// Apply returns the application mode for target.
func Apply(target m.MutationIdentifier) Mode {
	return Mode{kind: Application, target: target}
}

// Kind returns the mode kind.
func (md Mode) Kind() ModeKind {
	return md.kind
}

// Target returns the identifier to apply; ok is false in enumeration mode.
func (md Mode) Target() (m.MutationIdentifier, bool) {
	switch md.kind {
	case Application:
		return md.target, true
	case Enumeration:
	}

	return m.MutationIdentifier{}, false
}

// Selects reports whether id is the candidate this mode rewrites.
func (md Mode) Selects(id m.MutationIdentifier) bool {
	switch md.kind {
	case Application:
		return md.target.Matches(id)
	case Enumeration:
	}

	return false
}
