package mutagens

import (
	"fmt"
	"strings"
)

// All returns every built-in kind in a fixed order.
func All() []Factory {
	return []Factory{
		NegateConditionals(),
		ConditionalsBoundary(),
		Math(),
		InvertNegs(),
	}
}

// Defaults returns the kinds enabled when nothing is configured.
func Defaults() []Factory {
	return []Factory{
		NegateConditionals(),
		ConditionalsBoundary(),
		Math(),
	}
}

// ByName resolves kind names (case-insensitive, as printed by Name) or kind
// IDs. An empty selection yields Defaults.
func ByName(names ...string) ([]Factory, error) {
	if len(names) == 0 {
		return Defaults(), nil
	}

	selected := make([]Factory, 0, len(names))
	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		factory, ok := lookup(name)
		if !ok {
			return nil, fmt.Errorf("unsupported mutation kind: %s", name)
		}

		if _, dup := seen[factory.KindID()]; dup {
			continue
		}

		seen[factory.KindID()] = struct{}{}
		selected = append(selected, factory)
	}

	return selected, nil
}

// ByKindID returns the kind whose KindID is id.
func ByKindID(id string) (Factory, bool) {
	for _, factory := range All() {
		if factory.KindID() == id {
			return factory, true
		}
	}

	return nil, false
}

func lookup(name string) (Factory, bool) {
	name = strings.TrimSpace(name)

	for _, factory := range All() {
		if strings.EqualFold(factory.Name(), name) || factory.KindID() == name {
			return factory, true
		}
	}

	return nil, false
}
