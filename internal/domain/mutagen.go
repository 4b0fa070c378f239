// Package domain contains the mutation engine and the workflows built on it.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bytemut.dev/pkg/bytemut/internal/domain/mutagens"
	"bytemut.dev/pkg/bytemut/internal/domain/traversal"
	m "bytemut.dev/pkg/bytemut/internal/model"
)

// ErrMutationNotFound is returned by ApplyMutation when no instruction of the
// unit carries the requested identifier.
var ErrMutationNotFound = errors.New("mutation not found")

// DefaultAvoidAnnotations are the annotations whose classes and methods are
// never mutated.
var DefaultAvoidAnnotations = []string{"Generated", "DoNotMutate"}

// Mutagen finds and applies mutations on processed units.
type Mutagen interface {
	// FindMutations runs an enumeration pass and returns every candidate in
	// discovery order. The unit is not modified.
	FindMutations(ctx context.Context, unit m.Unit) ([]m.MutationDetails, error)
	// ApplyMutation runs an application pass and returns the unit rewritten
	// by the single candidate id. When id matches nothing the returned unit
	// equals the input and the error wraps ErrMutationNotFound.
	ApplyMutation(ctx context.Context, unit m.Unit, id m.MutationIdentifier) (m.Mutant, error)
}

// MutagenOption configures NewMutagen.
type MutagenOption func(*mutagen)

// WithKinds sets the mutation kinds in chain order.
func WithKinds(kinds ...mutagens.Factory) MutagenOption {
	return func(mg *mutagen) {
		mg.kinds = kinds
	}
}

// WithAvoidAnnotations replaces the annotations that suppress mutation.
func WithAvoidAnnotations(names ...string) MutagenOption {
	return func(mg *mutagen) {
		mg.avoid = names
	}
}

type mutagen struct {
	kinds []mutagens.Factory
	avoid []string
}

// NewMutagen creates a Mutagen using the default kinds unless configured otherwise.
func NewMutagen(options ...MutagenOption) Mutagen {
	mg := &mutagen{
		kinds: mutagens.Defaults(),
		avoid: DefaultAvoidAnnotations,
	}

	for _, option := range options {
		option(mg)
	}

	return mg
}

func (mg *mutagen) FindMutations(ctx context.Context, unit m.Unit) ([]m.MutationDetails, error) {
	if err := validateUnit(unit); err != nil {
		return nil, err
	}

	tctx := traversal.NewContext(unit)

	if _, err := mg.traverse(ctx, tctx, unit, mg.kinds, nil); err != nil {
		return nil, err
	}

	found := tctx.CollectedMutations()
	slog.Debug("enumerated unit", "class", unit.ClassName(), "candidates", len(found))

	return found, nil
}

func (mg *mutagen) ApplyMutation(ctx context.Context, unit m.Unit, id m.MutationIdentifier) (m.Mutant, error) {
	if err := validateUnit(unit); err != nil {
		return m.Mutant{}, err
	}

	unchanged := m.Mutant{Unit: unit.Clone()}

	kind, ok := mg.kindByID(id.Kind)
	if !ok {
		return unchanged, fmt.Errorf("%w: %s: kind %q is not enabled", ErrMutationNotFound, id, id.Kind)
	}

	tctx := traversal.NewContext(unit)
	tctx.SetMode(traversal.Apply(id))

	// Only the target kind is chained so ordinals match the enumeration
	// pass without other kinds rewriting the instruction first.
	mutated, err := mg.traverse(ctx, tctx, unit, []mutagens.Factory{kind}, func(loc m.Location) bool {
		return loc == id.Location
	})
	if err != nil {
		return m.Mutant{}, err
	}

	details := tctx.DetailsFor(id)
	if len(details) == 0 {
		return unchanged, fmt.Errorf("%w: %s", ErrMutationNotFound, id)
	}

	slog.Debug("applied mutation", "id", id.String(), "line", details[0].Line)

	return m.Mutant{Details: details[0], Unit: mutated}, nil
}

func (mg *mutagen) kindByID(id string) (mutagens.Factory, bool) {
	for _, kind := range mg.kinds {
		if kind.KindID() == id {
			return kind, true
		}
	}

	return nil, false
}

// traverse walks every method of unit through the mutator chain and returns
// a copy of unit carrying the emitted code. Methods rejected by only are
// skipped but still begin and end on the context.
func (mg *mutagen) traverse(
	ctx context.Context,
	tctx *traversal.Context,
	unit m.Unit,
	kinds []mutagens.Factory,
	only func(m.Location) bool,
) (m.Unit, error) {
	out := unit.Clone()
	classReasons := mg.classSuppression(unit)

	for i, method := range unit.Methods {
		if err := ctx.Err(); err != nil {
			return m.Unit{}, err
		}

		tctx.BeginMethod(method.Name, method.Descriptor)

		if only != nil && !only(tctx.Location()) {
			tctx.EndMethod()
			continue
		}

		reasons := append(append([]string(nil), classReasons...), mg.methodSuppression(method)...)
		for _, reason := range reasons {
			tctx.Suppress(reason)
		}

		rec := traversal.NewRecorder()
		if err := traversal.Walk(method.Code, newMutatorChain(tctx, kinds, rec)); err != nil {
			slog.Error("failed to traverse method", "class", unit.ClassName(), "method", method.Name, "error", err)
			return m.Unit{}, fmt.Errorf("%s: %w", tctx.Location(), err)
		}

		for _, reason := range reasons {
			tctx.Unsuppress(reason)
		}

		tctx.EndMethod()

		out.Methods[i].Code = rec.Code()
	}

	return out, nil
}

func validateUnit(unit m.Unit) error {
	if unit.Name == "" {
		return errors.New("unit has no class name")
	}

	return unit.CheckMethods()
}
