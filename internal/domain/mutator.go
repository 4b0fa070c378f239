package domain

import (
	"strings"

	"bytemut.dev/pkg/bytemut/internal/domain/mutagens"
	"bytemut.dev/pkg/bytemut/internal/domain/traversal"
	m "bytemut.dev/pkg/bytemut/internal/model"
)

const (
	annotationReasonPrefix = "annotation:"
	syntheticReason        = "synthetic"
)

// newMutatorChain builds Tracker -> kinds[0] -> ... -> kinds[n-1] -> terminal.
// The tracker sits in front so every mutator sees an up to date context.
func newMutatorChain(tctx *traversal.Context, kinds []mutagens.Factory, terminal traversal.Visitor) traversal.Visitor {
	next := terminal
	for i := len(kinds) - 1; i >= 0; i-- {
		next = kinds[i].Create(tctx, next)
	}

	return traversal.NewTracker(tctx, next)
}

// classSuppression returns the reasons that apply to the whole unit.
func (mg *mutagen) classSuppression(unit m.Unit) []string {
	return avoidedAnnotations(unit.Annotations, mg.avoid)
}

// methodSuppression returns the reasons that apply to one method body.
func (mg *mutagen) methodSuppression(method m.Method) []string {
	reasons := avoidedAnnotations(method.Annotations, mg.avoid)

	if isSynthetic(method.Name) {
		reasons = append(reasons, syntheticReason)
	}

	return reasons
}

func avoidedAnnotations(annotations, avoid []string) []string {
	var reasons []string

	for _, name := range avoid {
		if m.HasAnnotation(annotations, name) {
			reasons = append(reasons, annotationReasonPrefix+name)
		}
	}

	return reasons
}

// isSynthetic matches compiler generated lambda bodies and bridge helpers.
func isSynthetic(name string) bool {
	return strings.HasPrefix(name, "lambda$") || strings.Contains(name, "$$")
}
