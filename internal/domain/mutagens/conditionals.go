package mutagens

import m "bytemut.dev/pkg/bytemut/internal/model"

const negatedConditional = "negated conditional"

var negateConditionals = mustTableKind(
	"bytemut.mutagens.NegateConditionals",
	"NEGATE_CONDITIONALS",
	Table{
		m.IFEQ:      {m.IFNE, negatedConditional},
		m.IFNE:      {m.IFEQ, negatedConditional},
		m.IFLE:      {m.IFGT, negatedConditional},
		m.IFGE:      {m.IFLT, negatedConditional},
		m.IFGT:      {m.IFLE, negatedConditional},
		m.IFLT:      {m.IFGE, negatedConditional},
		m.IFNULL:    {m.IFNONNULL, negatedConditional},
		m.IFNONNULL: {m.IFNULL, negatedConditional},
		m.IF_ICMPNE: {m.IF_ICMPEQ, negatedConditional},
		m.IF_ICMPEQ: {m.IF_ICMPNE, negatedConditional},
		m.IF_ICMPLE: {m.IF_ICMPGT, negatedConditional},
		m.IF_ICMPGE: {m.IF_ICMPLT, negatedConditional},
		m.IF_ICMPGT: {m.IF_ICMPLE, negatedConditional},
		m.IF_ICMPLT: {m.IF_ICMPGE, negatedConditional},
		m.IF_ACMPEQ: {m.IF_ACMPNE, negatedConditional},
		m.IF_ACMPNE: {m.IF_ACMPEQ, negatedConditional},
	},
)

// NegateConditionals swaps every conditional jump for its negation.
func NegateConditionals() TableKind {
	return negateConditionals
}

const changedBoundary = "changed conditional boundary"

// The table is one-directional: each relational jump moves to the operator
// that differs only on the boundary value.
var conditionalsBoundary = mustTableKind(
	"bytemut.mutagens.ConditionalsBoundary",
	"CONDITIONALS_BOUNDARY",
	Table{
		m.IFLE:      {m.IFLT, changedBoundary},
		m.IFGE:      {m.IFGT, changedBoundary},
		m.IFGT:      {m.IFGE, changedBoundary},
		m.IFLT:      {m.IFLE, changedBoundary},
		m.IF_ICMPLE: {m.IF_ICMPLT, changedBoundary},
		m.IF_ICMPGE: {m.IF_ICMPGT, changedBoundary},
		m.IF_ICMPGT: {m.IF_ICMPGE, changedBoundary},
		m.IF_ICMPLT: {m.IF_ICMPLE, changedBoundary},
	},
)

// ConditionalsBoundary turns < into <= and so on.
func ConditionalsBoundary() TableKind {
	return conditionalsBoundary
}
