// Package mutagens holds the mutation kinds. Each kind is a small immutable
// value wrapping a substitution table and builds a visitor that rewrites
// matching instructions.
package mutagens

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"bytemut.dev/pkg/bytemut/internal/domain/traversal"
	m "bytemut.dev/pkg/bytemut/internal/model"
)

// ErrInvalidTable is returned for substitution tables that cannot describe a
// behavioural change.
var ErrInvalidTable = errors.New("invalid substitution table")

// Factory is a mutation kind.
type Factory interface {
	// KindID is the globally unique, opaque kind identifier.
	KindID() string
	// Name is the human readable kind name.
	Name() string
	// Create wraps next with a visitor that registers and applies this kind.
	Create(ctx *traversal.Context, next traversal.Visitor) traversal.Visitor
}

// Substitution is the replacement for one opcode.
type Substitution struct {
	Replacement m.Opcode
	Description string
}

// Table maps an original opcode to its substitution.
type Table map[m.Opcode]Substitution

// Validate rejects no-op entries and opcodes missing from the instruction set.
func (t Table) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidTable)
	}

	for from, sub := range t {
		if from == sub.Replacement {
			return fmt.Errorf("%w: %s maps to itself", ErrInvalidTable, from)
		}

		if !from.Known() || !sub.Replacement.Known() {
			return fmt.Errorf("%w: unknown opcode in %s -> %s", ErrInvalidTable, from, sub.Replacement)
		}

		if from.IsJump() != sub.Replacement.IsJump() {
			return fmt.Errorf("%w: %s -> %s changes operand shape", ErrInvalidTable, from, sub.Replacement)
		}

		if sub.Description == "" {
			return fmt.Errorf("%w: %s has no description", ErrInvalidTable, from)
		}
	}

	return nil
}

// TableKind is a mutation kind defined entirely by its substitution table.
type TableKind struct {
	id    string
	name  string
	table Table
}

// NewTableKind validates table and returns a kind that owns a copy of it.
func NewTableKind(id, name string, table Table) (TableKind, error) {
	if id == "" || name == "" {
		return TableKind{}, fmt.Errorf("%w: kind needs an id and a name", ErrInvalidTable)
	}

	if err := table.Validate(); err != nil {
		return TableKind{}, fmt.Errorf("%s: %w", name, err)
	}

	return TableKind{id: id, name: name, table: maps.Clone(table)}, nil
}

func mustTableKind(id, name string, table Table) TableKind {
	kind, err := NewTableKind(id, name, table)
	if err != nil {
		panic(err)
	}

	return kind
}

// KindID implements Factory.
func (k TableKind) KindID() string {
	return k.id
}

// Name implements Factory.
func (k TableKind) Name() string {
	return k.name
}

// Lookup returns the substitution for op.
func (k TableKind) Lookup(op m.Opcode) (Substitution, bool) {
	sub, ok := k.table[op]
	return sub, ok
}

// Len returns the number of table entries.
func (k TableKind) Len() int {
	return len(k.table)
}

// Create implements Factory.
func (k TableKind) Create(ctx *traversal.Context, next traversal.Visitor) traversal.Visitor {
	return &tableMutator{
		Forwarder: traversal.Forwarder{Next: next},
		kind:      k,
		ctx:       ctx,
	}
}

// tableMutator registers a candidate for every instruction found in the
// table and emits the replacement when that candidate is the target.
type tableMutator struct {
	traversal.Forwarder
	kind TableKind
	ctx  *traversal.Context
}

func (tm *tableMutator) VisitInsn(insn m.Instruction) error {
	sub, ok := tm.kind.Lookup(insn.Op)
	if !ok || insn.Kind != m.KindInsn {
		return tm.Next.VisitInsn(insn)
	}

	id, err := tm.ctx.RegisterCandidate(tm.kind.id, sub.Description)
	if err != nil {
		return err
	}

	if !tm.ctx.IsTarget(id) {
		return tm.Next.VisitInsn(insn)
	}

	slog.Debug("applying mutation", "id", id.String(), "from", insn.Op.String(), "to", sub.Replacement.String(), "line", tm.ctx.Line())

	return tm.Next.VisitInsn(insn.WithOpcode(sub.Replacement))
}
