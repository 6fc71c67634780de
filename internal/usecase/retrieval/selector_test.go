package retrieval

import (
	"testing"

	"github.com/kermartin/jurisearch/internal/domain"
)

func newTestSelector(graphEnabled bool) (*Selector, *Simple, *Graph, *Hybrid) {
	simple := NewSimple(&mockRecordStore{}, nil, defaultParams())
	graph := NewGraph(&mockGraphStore{}, &mockRecordStore{}, nil, defaultParams())
	hybrid := NewHybrid(graph, simple)
	sel := NewSelector(SelectorConfig{Default: domain.ProviderSimple, GraphEnabled: graphEnabled}, simple, graph, hybrid)
	return sel, simple, graph, hybrid
}

func TestSelectorResolve_OverrideWins(t *testing.T) {
	sel, _, graph, hybrid := newTestSelector(true)

	strategy, used := sel.Resolve("graph")
	if used != domain.ProviderGraph {
		t.Errorf("used = %q, want graph", used)
	}
	if strategy != Strategy(graph) {
		t.Error("graph override did not resolve to the graph strategy")
	}

	strategy, used = sel.Resolve("hybrid")
	if used != domain.ProviderHybrid || strategy != Strategy(hybrid) {
		t.Errorf("hybrid override resolved to %q", used)
	}
}

func TestSelectorResolve_UnknownFallsBackToDefault(t *testing.T) {
	sel, simple, _, _ := newTestSelector(true)

	for _, override := range []string{"", "ensemble", "SIMPLE"} {
		strategy, used := sel.Resolve(override)
		if used != domain.ProviderSimple {
			t.Errorf("override %q: used = %q, want default simple", override, used)
		}
		if strategy != Strategy(simple) {
			t.Errorf("override %q did not resolve to the simple strategy", override)
		}
	}
}

func TestSelectorResolve_GraphDisabledDowngrades(t *testing.T) {
	sel, simple, _, _ := newTestSelector(false)

	for _, override := range []string{"graph", "hybrid"} {
		strategy, used := sel.Resolve(override)
		if string(used) != override {
			t.Errorf("requested provider name must be kept, got %q for %q", used, override)
		}
		if strategy != Strategy(simple) {
			t.Errorf("override %q should be served by the simple strategy when the graph is disabled", override)
		}
	}
}
