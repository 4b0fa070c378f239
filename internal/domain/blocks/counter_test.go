package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter_ZeroValue(t *testing.T) {
	var c Counter

	assert.Equal(t, 0, c.CurrentBlock())
	assert.False(t, c.InFinally())
	assert.Equal(t, 0, c.FinallyDepth())
}

func TestCounter_EnterBlockAlwaysAssignsNewIndex(t *testing.T) {
	var c Counter

	c.EnterBlock()
	assert.Equal(t, 1, c.CurrentBlock())

	c.EnterFinally()
	c.EnterBlock()
	c.ExitFinally()
	c.EnterBlock()

	assert.Equal(t, 3, c.CurrentBlock())
}

func TestCounter_FinallyNesting(t *testing.T) {
	var c Counter

	c.EnterFinally()
	c.EnterFinally()
	assert.True(t, c.InFinally())
	assert.Equal(t, 2, c.FinallyDepth())

	c.ExitFinally()
	assert.True(t, c.InFinally(), "still inside the outer region")

	c.ExitFinally()
	assert.False(t, c.InFinally())
}

func TestCounter_UnbalancedExitIsIgnored(t *testing.T) {
	var c Counter

	c.ExitFinally()
	assert.False(t, c.InFinally())
	assert.Equal(t, 0, c.FinallyDepth())

	c.EnterFinally()
	assert.True(t, c.InFinally())
}

func TestCounter_Reset(t *testing.T) {
	var c Counter

	c.EnterBlock()
	c.EnterBlock()
	c.EnterFinally()
	c.Reset()

	assert.Equal(t, 0, c.CurrentBlock())
	assert.False(t, c.InFinally())
}
