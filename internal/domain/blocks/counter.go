// Package blocks tracks lexical block identity and cleanup-region nesting
// while a method body is traversed.
package blocks

// Counter is the block bookkeeping for one method traversal. The zero value
// is ready to use and reports block 0, outside any finally region.
type Counter struct {
	current      int
	finallyDepth int
}

// EnterBlock starts a new block. A block that is re-entered still gets a
// fresh index.
func (c *Counter) EnterBlock() {
	c.current++
}

// EnterFinally opens a finally region.
func (c *Counter) EnterFinally() {
	c.finallyDepth++
}

// ExitFinally closes the innermost finally region. Unbalanced exits are
// ignored.
func (c *Counter) ExitFinally() {
	if c.finallyDepth > 0 {
		c.finallyDepth--
	}
}

// CurrentBlock returns the index of the block being visited.
func (c *Counter) CurrentBlock() int {
	return c.current
}

// InFinally reports whether the traversal is inside at least one finally region.
func (c *Counter) InFinally() bool {
	return c.finallyDepth > 0
}

// FinallyDepth returns the current finally nesting depth.
func (c *Counter) FinallyDepth() int {
	return c.finallyDepth
}

// Reset returns the counter to its zero state for a new method.
func (c *Counter) Reset() {
	*c = Counter{}
}
