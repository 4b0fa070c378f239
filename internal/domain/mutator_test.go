package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bytemut.dev/pkg/bytemut/internal/domain/mutagens"
	"bytemut.dev/pkg/bytemut/internal/domain/traversal"
	m "bytemut.dev/pkg/bytemut/internal/model"
)

func TestIsSynthetic(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"lambda$main$0", true},
		{"access$$000", true},
		{"run", false},
		{"<init>", false},
		{"compute$lambda", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSynthetic(tt.name))
		})
	}
}

func TestAvoidedAnnotations(t *testing.T) {
	reasons := avoidedAnnotations(
		[]string{"@javax.annotation.Generated", "Override"},
		[]string{"Generated", "DoNotMutate"},
	)
	assert.Equal(t, []string{"annotation:Generated"}, reasons)

	assert.Empty(t, avoidedAnnotations([]string{"Generated"}, nil))
}

func TestMutagen_MethodSuppression(t *testing.T) {
	mg := NewMutagen().(*mutagen)

	reasons := mg.methodSuppression(m.Method{Name: "lambda$run$1", Annotations: []string{"DoNotMutate"}})
	assert.Equal(t, []string{"annotation:DoNotMutate", "synthetic"}, reasons)

	assert.Empty(t, mg.methodSuppression(m.Method{Name: "run"}))
	assert.Equal(t, []string{"annotation:Generated"}, mg.classSuppression(m.Unit{Annotations: []string{"Generated"}}))
}

func TestNewMutatorChain_Order(t *testing.T) {
	unit := m.Unit{Name: "com/example/Chain", Methods: []m.Method{{Name: "f", Descriptor: "()V"}}}
	tctx := traversal.NewContext(unit)
	tctx.BeginMethod("f", "()V")

	rec := traversal.NewRecorder()
	chain := newMutatorChain(tctx, []mutagens.Factory{mutagens.NegateConditionals(), mutagens.ConditionalsBoundary()}, rec)

	require.NoError(t, traversal.Walk([]m.Instruction{m.Line(3), m.Jump(m.IFLE, "L0")}, chain))

	found := tctx.CollectedMutations()
	require.Len(t, found, 2)
	assert.Equal(t, mutagens.NegateConditionals().KindID(), found[0].ID.Kind)
	assert.Equal(t, mutagens.ConditionalsBoundary().KindID(), found[1].ID.Kind)
	assert.Equal(t, 3, found[1].Line)

	assert.Equal(t, []m.Instruction{m.Line(3), m.Jump(m.IFLE, "L0")}, rec.Code())
}
