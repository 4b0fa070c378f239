package domain_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bytemut.dev/pkg/bytemut/internal/adapter"
	"bytemut.dev/pkg/bytemut/internal/domain"
	"bytemut.dev/pkg/bytemut/internal/domain/mutagens"
	m "bytemut.dev/pkg/bytemut/internal/model"
)

const examplesDir = "../../examples"

func examplesUnit(name string) m.Path {
	return m.Path(filepath.Join(examplesDir, name))
}

func TestExamples_CandidatesPerUnit(t *testing.T) {
	ctx := context.Background()
	units := adapter.NewLocalUnitFileAdapter()
	orchestrator := domain.NewOrchestrator(adapter.NewLocalSourceFSAdapter(), units, domain.NewMutagen())

	tests := []struct {
		unit string
		want int
	}{
		// deposit: IFGT twice and IADD; isOverdrawn: IFGE twice
		{"banking/Account.unit.yaml", 5},
		// IF_ICMPLT twice and IADD inside finally; the assertion is suppressed
		{"control/Retry.unit.yaml", 3},
		{"generated/Builder.unit.yaml", 0},
		// DNEG needs INVERT_NEGS
		{"geometry/Shapes.unit.yaml", 3},
	}

	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			unit, err := orchestrator.LoadUnit(ctx, examplesUnit(tt.unit))
			require.NoError(t, err)

			found, err := domain.NewMutagen().FindMutations(ctx, unit)
			require.NoError(t, err)
			assert.Len(t, found, tt.want)
		})
	}
}

func TestExamples_RecursiveEnumeration(t *testing.T) {
	streamer := domain.NewMutationStreamer(adapter.NewLocalSourceFSAdapter(), adapter.NewLocalUnitFileAdapter(), domain.NewMutagen())

	spill, err := streamer.Get(context.Background(), []m.Path{m.Path(examplesDir + "/...")}, nil, 4, 0)
	require.NoError(t, err)

	candidates := drainSpill(t, spill)
	require.Len(t, candidates, 11)

	assert.Equal(t, examplesUnit("banking/Account.unit.yaml"), candidates[0].Origin)
	assert.Equal(t, examplesUnit("geometry/Shapes.unit.yaml"), candidates[len(candidates)-1].Origin)
}

func TestExamples_FinallyAndSuppression(t *testing.T) {
	ctx := context.Background()

	unit, err := adapter.NewLocalUnitFileAdapter().Decode("Retry.unit.yaml", mustRead(t, examplesUnit("control/Retry.unit.yaml")))
	require.NoError(t, err)

	found, err := domain.NewMutagen().FindMutations(ctx, unit)
	require.NoError(t, err)
	require.Len(t, found, 3)

	assert.False(t, found[0].InFinally)
	assert.Equal(t, 30, found[0].Line)

	assert.True(t, found[2].InFinally)
	assert.Equal(t, 33, found[2].Line)
	assert.Equal(t, mutagens.Math().KindID(), found[2].ID.Kind)
}

func TestExamples_InvertNegs(t *testing.T) {
	ctx := context.Background()

	unit, err := adapter.NewLocalUnitFileAdapter().Decode("Shapes.unit.yaml", mustRead(t, examplesUnit("geometry/Shapes.unit.yaml")))
	require.NoError(t, err)

	found, err := domain.NewMutagen(domain.WithKinds(mutagens.InvertNegs())).FindMutations(ctx, unit)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "mirror", found[0].ID.Location.MethodName)

	mutant, err := domain.NewMutagen(domain.WithKinds(mutagens.All()...)).ApplyMutation(ctx, unit, found[0].ID)
	require.NoError(t, err)
	assert.Equal(t, m.Insn(m.NOP), mutant.Unit.Methods[3].Code[2])
}
