package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bytemut.dev/pkg/bytemut/internal/adapter"
	"bytemut.dev/pkg/bytemut/internal/controller"
	"bytemut.dev/pkg/bytemut/internal/domain/mutagens"
	m "bytemut.dev/pkg/bytemut/internal/model"
)

// ErrMutantsFailed is returned by Run when at least one mutant could not be written.
var ErrMutantsFailed = errors.New("mutants failed")

// MutagenArgs selects how units are mutated.
type MutagenArgs struct {
	// Mutators names the enabled kinds; empty selects the defaults.
	Mutators []string
	// AvoidAnnotations suppresses classes and methods carrying these annotations.
	AvoidAnnotations []string
}

// EstimateArgs contains the arguments for enumerating candidates.
type EstimateArgs struct {
	MutagenArgs
	Paths         []m.Path
	Exclude       []string
	Threads       int
	MaxCandidates int
}

// RunArgs contains the arguments for materializing mutants.
type RunArgs struct {
	EstimateArgs
	Reports         m.Path
	ShardIndex      int
	TotalShardCount int
}

// ApplyArgs selects one candidate of one unit to materialize.
type ApplyArgs struct {
	MutagenArgs
	Unit    m.Path
	ID      string
	Reports m.Path
}

// DiffArgs selects one candidate of one unit to diff.
type DiffArgs struct {
	MutagenArgs
	Unit m.Path
	ID   string
}

// ViewArgs contains the arguments for viewing reports.
type ViewArgs struct {
	Reports m.Path
}

// MergeArgs contains the arguments for merging sharded reports.
type MergeArgs struct {
	Reports m.Path
}

// Workflow is the set of operations exposed by the command line.
type Workflow interface {
	Estimate(ctx context.Context, args EstimateArgs) error
	Run(ctx context.Context, args RunArgs) error
	Apply(ctx context.Context, args ApplyArgs) error
	Diff(ctx context.Context, args DiffArgs) error
	View(ctx context.Context, args ViewArgs) error
	Merge(ctx context.Context, args MergeArgs) error
}

type workflow struct {
	adapter.ReportStore
	adapter.SourceFSAdapter
	controller.UI
	units adapter.UnitFileAdapter
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	units adapter.UnitFileAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		units:           units,
	}
}

// newMutagen builds the mutagen for enumeration with the selected kinds.
func newMutagen(args MutagenArgs) (Mutagen, error) {
	kinds, err := mutagens.ByName(args.Mutators...)
	if err != nil {
		return nil, err
	}

	return NewMutagen(WithKinds(kinds...), WithAvoidAnnotations(args.AvoidAnnotations...)), nil
}

// newResolvingMutagen builds a mutagen over every kind. Ordinals are counted
// per kind, so identifiers agree with any enumeration over a subset.
func newResolvingMutagen(args MutagenArgs) Mutagen {
	return NewMutagen(WithKinds(mutagens.All()...), WithAvoidAnnotations(args.AvoidAnnotations...))
}

func (w *workflow) Apply(ctx context.Context, args ApplyArgs) error {
	orchestrator := NewOrchestrator(w.SourceFSAdapter, w.units, newResolvingMutagen(args.MutagenArgs))

	unit, err := orchestrator.LoadUnit(ctx, args.Unit)
	if err != nil {
		return err
	}

	id, err := orchestrator.Resolve(ctx, unit, args.ID)
	if err != nil {
		slog.Error("Failed to resolve mutation id", "id", args.ID, "error", err)
		return fmt.Errorf("resolve %s: %w", args.ID, err)
	}

	report := orchestrator.Materialize(ctx, m.Candidate{
		Origin:  args.Unit,
		Details: m.MutationDetails{ID: id},
	}, args.Reports)

	w.DisplayMutant(ctx, report)

	if report.Status != m.Written {
		return fmt.Errorf("apply %s: %s", id, report.Err)
	}

	return nil
}

func (w *workflow) Diff(ctx context.Context, args DiffArgs) error {
	orchestrator := NewOrchestrator(w.SourceFSAdapter, w.units, newResolvingMutagen(args.MutagenArgs))

	unit, err := orchestrator.LoadUnit(ctx, args.Unit)
	if err != nil {
		return err
	}

	id, err := orchestrator.Resolve(ctx, unit, args.ID)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", args.ID, err)
	}

	details, diff, err := orchestrator.Diff(ctx, unit, id)
	if err != nil {
		slog.Error("Failed to diff mutant", "id", id.String(), "error", err)
		return fmt.Errorf("diff %s: %w", id, err)
	}

	w.DisplayDiff(ctx, details, diff)

	return nil
}
