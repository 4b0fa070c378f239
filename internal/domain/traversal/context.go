// Package traversal holds the per-unit mutation context and the visitor
// plumbing that drives mutators over a method body.
package traversal

import (
	"log/slog"

	"bytemut.dev/pkg/bytemut/internal/domain/blocks"
	m "bytemut.dev/pkg/bytemut/internal/model"
)

// Context is the mutable state of one unit traversal. It assigns candidate
// identities, records their details and answers whether the candidate being
// visited is the one to rewrite.
//
// A Context belongs to a single goroutine. Parallel workers each need their own.
type Context struct {
	className  string
	sourceFile string

	location m.Location
	inMethod bool
	line     int
	blocks   blocks.Counter

	// next ordinal per mutation kind, cleared by BeginMethod
	indexes map[string]int

	mutations  []m.MutationDetails
	suppressed map[string]int
	mode       Mode
}

// NewContext creates a Context for unit in enumeration mode.
func NewContext(unit m.Unit) *Context {
	return &Context{
		className:  unit.ClassName(),
		sourceFile: unit.SourceFile,
		indexes:    make(map[string]int),
		suppressed: make(map[string]int),
		mode:       Enumerate(),
	}
}

// ClassName returns the dotted name of the unit being traversed.
func (c *Context) ClassName() string {
	return c.className
}

// SourceFile returns the source file name recorded in candidate details.
func (c *Context) SourceFile() string {
	return c.sourceFile
}

// BeginMethod starts a method: it sets the location and clears the per-kind
// ordinals, the line number and the block state.
func (c *Context) BeginMethod(name, descriptor string) {
	c.location = m.Location{ClassName: c.className, MethodName: name, Descriptor: descriptor}
	c.inMethod = true
	c.line = 0
	c.blocks.Reset()
	clear(c.indexes)
}

// EndMethod leaves the current method. Registering a candidate before the
// next BeginMethod is a precondition violation.
func (c *Context) EndMethod() {
	c.inMethod = false
}

// Location returns the location of the current method.
func (c *Context) Location() m.Location {
	return c.location
}

// InMethod reports whether BeginMethod was called without a matching EndMethod.
func (c *Context) InMethod() bool {
	return c.inMethod
}

// RecordLine updates the current source line.
func (c *Context) RecordLine(line int) {
	c.line = line
}

// Line returns the most recently recorded source line.
func (c *Context) Line() int {
	return c.line
}

// EnterBlock starts a new lexical block.
func (c *Context) EnterBlock() {
	c.blocks.EnterBlock()
}

// EnterFinally opens a finally region.
func (c *Context) EnterFinally() {
	c.blocks.EnterFinally()
}

// ExitFinally closes the innermost finally region.
func (c *Context) ExitFinally() {
	c.blocks.ExitFinally()
}

// CurrentBlock returns the current block index.
func (c *Context) CurrentBlock() int {
	return c.blocks.CurrentBlock()
}

// InFinally reports whether the traversal is inside a finally region.
func (c *Context) InFinally() bool {
	return c.blocks.InFinally()
}

// RegisterCandidate assigns the next identifier for kind in the current
// method and records its details unless suppression is active. The
// identifier is returned even when suppressed so callers can still test it
// with IsTarget.
func (c *Context) RegisterCandidate(kind, description string) (m.MutationIdentifier, error) {
	if !c.inMethod {
		return m.MutationIdentifier{}, &PreconditionError{Op: "register " + kind, Class: c.className, Cause: ErrNoMethod}
	}

	index := c.indexes[kind]
	c.indexes[kind] = index + 1

	id := m.MutationIdentifier{Location: c.location, Index: index, Kind: kind}

	if c.Suppressed() {
		slog.Debug("candidate suppressed", "id", id.String(), "line", c.line)
		return id, nil
	}

	c.mutations = append(c.mutations, m.MutationDetails{
		ID:          id,
		Filename:    c.sourceFile,
		Description: description,
		Line:        c.line,
		Block:       c.blocks.CurrentBlock(),
		InFinally:   c.blocks.InFinally(),
		PassThrough: false,
	})

	return id, nil
}

// IsTarget reports whether id is the candidate to rewrite.
func (c *Context) IsTarget(id m.MutationIdentifier) bool {
	return c.mode.Selects(id)
}

// SetMode switches between enumeration and application.
func (c *Context) SetMode(mode Mode) {
	c.mode = mode
}

// Mode returns the current mode.
func (c *Context) Mode() Mode {
	return c.mode
}

// Suppress stops recording candidates until every Suppress has been
// matched by an Unsuppress. Reasons are counted, so nested regions with the
// same reason compose.
func (c *Context) Suppress(reason string) {
	c.suppressed[reason]++
}

// Unsuppress clears one Suppress call for reason. Unknown reasons are ignored.
func (c *Context) Unsuppress(reason string) {
	n, ok := c.suppressed[reason]
	if !ok {
		return
	}

	if n <= 1 {
		delete(c.suppressed, reason)
		return
	}

	c.suppressed[reason] = n - 1
}

// Suppressed reports whether any suppression reason is active.
func (c *Context) Suppressed() bool {
	return len(c.suppressed) > 0
}

// CollectedMutations returns every recorded candidate of the unit in
// discovery order.
func (c *Context) CollectedMutations() []m.MutationDetails {
	out := make([]m.MutationDetails, len(c.mutations))
	copy(out, c.mutations)

	return out
}

// DetailsFor returns the recorded details matching id.
func (c *Context) DetailsFor(id m.MutationIdentifier) []m.MutationDetails {
	var out []m.MutationDetails

	for _, details := range c.mutations {
		if details.MatchesID(id) {
			out = append(out, details)
		}
	}

	return out
}
