// Package model defines the data structures for bytecode mutation testing.
package model

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	idSeparator = "|"
	idEscape    = '\\'
	idFields    = 5
	shortIDLen  = 16
)

var idFieldEscaper = strings.NewReplacer(`\`, `\\`, idSeparator, `\`+idSeparator)

// ErrInvalidIdentifier is returned when a mutation identifier cannot be parsed.
var ErrInvalidIdentifier = errors.New("invalid mutation identifier")

// Location identifies a method body within a processed unit.
type Location struct {
	ClassName  string
	MethodName string
	Descriptor string
}

// String renders the location as Class.method(desc).
func (l Location) String() string {
	return l.ClassName + "." + l.MethodName + l.Descriptor
}

// MutationIdentifier names one candidate mutation. Identifiers computed for
// the same instruction in an enumeration pass and an application pass are
// equal.
type MutationIdentifier struct {
	Location Location
	Index    int
	Kind     string
}

// Matches reports whether other names the same candidate. It is plain
// structural equality.
func (id MutationIdentifier) Matches(other MutationIdentifier) bool {
	return id == other
}

// String renders class|method|descriptor|kind|index. A '|' or '\' inside a
// field is escaped with a backslash.
func (id MutationIdentifier) String() string {
	return strings.Join([]string{
		idFieldEscaper.Replace(id.Location.ClassName),
		idFieldEscaper.Replace(id.Location.MethodName),
		idFieldEscaper.Replace(id.Location.Descriptor),
		idFieldEscaper.Replace(id.Kind),
		strconv.Itoa(id.Index),
	}, idSeparator)
}

// ShortID is a 16 character hex digest of String, convenient on the command line.
func (id MutationIdentifier) ShortID() string {
	h := sha256.Sum256([]byte(id.String()))
	return fmt.Sprintf("%x", h)[:shortIDLen]
}

// ParseMutationIdentifier is the inverse of MutationIdentifier.String.
func ParseMutationIdentifier(s string) (MutationIdentifier, error) {
	parts, err := splitIDFields(strings.TrimSpace(s))
	if err != nil {
		return MutationIdentifier{}, fmt.Errorf("%w: %q: %w", ErrInvalidIdentifier, s, err)
	}

	if len(parts) != idFields {
		return MutationIdentifier{}, fmt.Errorf("%w: %q: want %d fields, got %d", ErrInvalidIdentifier, s, idFields, len(parts))
	}

	index, err := strconv.Atoi(parts[4])
	if err != nil || index < 0 {
		return MutationIdentifier{}, fmt.Errorf("%w: %q: bad index %q", ErrInvalidIdentifier, s, parts[4])
	}

	if parts[0] == "" || parts[1] == "" || parts[3] == "" {
		return MutationIdentifier{}, fmt.Errorf("%w: %q: empty field", ErrInvalidIdentifier, s)
	}

	return MutationIdentifier{
		Location: Location{ClassName: parts[0], MethodName: parts[1], Descriptor: parts[2]},
		Index:    index,
		Kind:     parts[3],
	}, nil
}

// splitIDFields splits on unescaped separators and unescapes each field.
func splitIDFields(s string) ([]string, error) {
	var (
		fields  []string
		field   strings.Builder
		escaped bool
	)

	for _, r := range s {
		switch {
		case escaped:
			field.WriteRune(r)
			escaped = false
		case r == idEscape:
			escaped = true
		case string(r) == idSeparator:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}

	if escaped {
		return nil, errors.New("dangling escape")
	}

	return append(fields, field.String()), nil
}

// IsShortID reports whether s looks like the output of ShortID.
func IsShortID(s string) bool {
	if len(s) != shortIDLen {
		return false
	}

	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}

	return true
}

// MutationDetails is everything known about one candidate.
type MutationDetails struct {
	ID          MutationIdentifier
	Filename    string
	Description string
	Line        int
	Block       int
	InFinally   bool
	PassThrough bool
}

// MatchesID reports whether the details describe id.
func (d MutationDetails) MatchesID(id MutationIdentifier) bool {
	return d.ID.Matches(id)
}

// Method returns the method location of the candidate.
func (d MutationDetails) Method() Location {
	return d.ID.Location
}
