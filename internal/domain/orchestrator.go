package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"bytemut.dev/pkg/bytemut/internal/adapter"
	m "bytemut.dev/pkg/bytemut/internal/model"
)

// MutantFileSuffix marks files holding a mutant unit. It never matches
// adapter.UnitFileSuffix so mutants are not rediscovered as units.
const MutantFileSuffix = ".mutant.yaml"

// MutantsDirName is the directory under a reports directory holding mutants.
const MutantsDirName = "mutants"

// ErrAmbiguousID is returned when a short id matches more than one candidate.
var ErrAmbiguousID = errors.New("ambiguous mutation id")

// Orchestrator loads units, resolves identifiers and materializes mutants.
type Orchestrator interface {
	LoadUnit(ctx context.Context, path m.Path) (m.Unit, error)
	// Resolve turns a full identifier or a short id into an identifier of unit.
	Resolve(ctx context.Context, unit m.Unit, id string) (m.MutationIdentifier, error)
	// Materialize applies one candidate to its unit and writes the mutant
	// under outDir. Problems with the candidate are reported in the returned
	// Report rather than as an error.
	Materialize(ctx context.Context, candidate m.Candidate, outDir m.Path) m.Report
	// Diff renders a unified diff between unit and the mutant for id.
	Diff(ctx context.Context, unit m.Unit, id m.MutationIdentifier) (m.MutationDetails, string, error)
}

type orchestrator struct {
	fsAdapter adapter.SourceFSAdapter
	units     adapter.UnitFileAdapter
	mutagen   Mutagen
}

// NewOrchestrator constructs an Orchestrator backed by the provided adapters.
func NewOrchestrator(fsAdapter adapter.SourceFSAdapter, units adapter.UnitFileAdapter, mutagen Mutagen) Orchestrator {
	return &orchestrator{
		fsAdapter: fsAdapter,
		units:     units,
		mutagen:   mutagen,
	}
}

func (o *orchestrator) LoadUnit(ctx context.Context, path m.Path) (m.Unit, error) {
	content, err := o.fsAdapter.ReadFile(ctx, path)
	if err != nil {
		slog.Error("Failed to read unit", "path", path, "error", err)
		return m.Unit{}, fmt.Errorf("read unit %s: %w", path, err)
	}

	return o.units.Decode(path, content)
}

func (o *orchestrator) Resolve(ctx context.Context, unit m.Unit, id string) (m.MutationIdentifier, error) {
	id = strings.TrimSpace(id)

	if !m.IsShortID(id) {
		return m.ParseMutationIdentifier(id)
	}

	found, err := o.mutagen.FindMutations(ctx, unit)
	if err != nil {
		return m.MutationIdentifier{}, err
	}

	var matches []m.MutationIdentifier

	for _, details := range found {
		if details.ID.ShortID() == id {
			matches = append(matches, details.ID)
		}
	}

	switch len(matches) {
	case 0:
		return m.MutationIdentifier{}, fmt.Errorf("%w: %s in %s", ErrMutationNotFound, id, unit.ClassName())
	case 1:
		return matches[0], nil
	default:
		return m.MutationIdentifier{}, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
	}
}

func (o *orchestrator) Materialize(ctx context.Context, candidate m.Candidate, outDir m.Path) m.Report {
	report := m.Report{Candidate: candidate, Status: m.Failed}

	if ctx.Err() != nil {
		report.Status = m.Skipped
		return report
	}

	unit, err := o.LoadUnit(ctx, candidate.Origin)
	if err != nil {
		report.Err = err.Error()
		return report
	}

	mutant, err := o.mutagen.ApplyMutation(ctx, unit, candidate.Details.ID)
	if err != nil {
		slog.Warn("Failed to apply mutation", "id", candidate.Details.ID.String(), "error", err)
		report.Err = err.Error()

		return report
	}

	report.Candidate.Details = mutant.Details

	content, err := o.units.Encode(mutant.Unit)
	if err != nil {
		report.Err = err.Error()
		return report
	}

	output := o.fsAdapter.JoinPath(ctx, string(outDir), MutantsDirName, mutant.Details.ID.ShortID()+MutantFileSuffix)
	if err := o.fsAdapter.WriteFile(ctx, output, content, 0o600); err != nil {
		slog.Error("Failed to write mutant", "path", output, "error", err)
		report.Err = fmt.Sprintf("write mutant: %v", err)

		return report
	}

	report.Status = m.Written
	report.Output = output

	return report
}

func (o *orchestrator) Diff(ctx context.Context, unit m.Unit, id m.MutationIdentifier) (m.MutationDetails, string, error) {
	mutant, err := o.mutagen.ApplyMutation(ctx, unit, id)
	if err != nil {
		return m.MutationDetails{}, "", err
	}

	original, err := o.units.Encode(unit)
	if err != nil {
		return m.MutationDetails{}, "", err
	}

	mutated, err := o.units.Encode(mutant.Unit)
	if err != nil {
		return m.MutationDetails{}, "", err
	}

	name := string(unit.Origin)
	if name == "" {
		name = unit.ClassName()
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(mutated)),
		FromFile: name,
		ToFile:   name + " (" + mutant.Details.ID.ShortID() + ")",
		Context:  3,
	})
	if err != nil {
		return m.MutationDetails{}, "", fmt.Errorf("diff %s: %w", id, err)
	}

	return mutant.Details, diff, nil
}
