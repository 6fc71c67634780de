package retrieval

import (
	"context"
	"reflect"
	"testing"

	"github.com/kermartin/jurisearch/internal/domain"
)

func TestHybridSearch_GraphWinsWhenItHasItems(t *testing.T) {
	graph := NewGraph(&mockGraphStore{candidates: graphFixture()}, &mockRecordStore{}, nil, defaultParams())
	simple := NewSimple(&mockRecordStore{records: homicideFixture()}, nil, defaultParams())
	hybrid := NewHybrid(graph, simple)

	out := hybrid.Search(context.Background(), "", domain.Filters{}, 2)
	if out.Provider != domain.ProviderGraph {
		t.Errorf("provider = %q, want graph", out.Provider)
	}
	if len(out.Items) != 2 || out.Items[0].ID != "10" {
		t.Errorf("expected graph items to be returned unchanged")
	}
}

func TestHybridSearch_FallsBackWhenGraphUnavailable(t *testing.T) {
	graph := NewGraph(&mockGraphStore{err: domain.ErrGraphUnavailable}, &mockRecordStore{}, nil, defaultParams())
	store := &mockRecordStore{records: homicideFixture()}
	simple := NewSimple(store, nil, defaultParams())
	hybrid := NewHybrid(graph, simple)

	query, f, topK := "homicídio qualificado", domain.Filters{Topic: "homicidio"}, 3

	got := hybrid.Search(context.Background(), query, f, topK)
	want := simple.Search(context.Background(), query, f, topK)

	if got.Provider != domain.ProviderSimple {
		t.Errorf("effective provider = %q, want simple after fallback", got.Provider)
	}
	if !reflect.DeepEqual(got.Items, want.Items) {
		t.Error("fallback output differs from a direct simple search")
	}
}

func TestHybridSearch_FallsBackWhenGraphEmpty(t *testing.T) {
	graph := NewGraph(&mockGraphStore{}, &mockRecordStore{}, nil, defaultParams())
	simple := NewSimple(&mockRecordStore{records: homicideFixture()}, nil, defaultParams())
	hybrid := NewHybrid(graph, simple)

	out := hybrid.Search(context.Background(), "homicídio", domain.Filters{}, 3)
	if out.Provider != domain.ProviderSimple {
		t.Errorf("provider = %q, want simple", out.Provider)
	}
	if len(out.Items) == 0 {
		t.Error("expected simple results after empty graph outcome")
	}
}

func TestHybridSearch_SingleLevelFallback(t *testing.T) {
	graph := NewGraph(&mockGraphStore{err: domain.ErrGraphUnavailable}, &mockRecordStore{}, nil, defaultParams())
	simple := NewSimple(&mockRecordStore{records: nil}, nil, defaultParams())
	hybrid := NewHybrid(graph, simple)

	out := hybrid.Search(context.Background(), "homicídio", domain.Filters{}, 3)
	if len(out.Items) != 0 {
		t.Errorf("expected empty final outcome, got %d items", len(out.Items))
	}
	if out.Provider != domain.ProviderSimple {
		t.Errorf("provider = %q, want simple", out.Provider)
	}
}

func TestHybridSuggestions_GraphFirst(t *testing.T) {
	graph := NewGraph(&mockGraphStore{candidates: graphFixture()}, &mockRecordStore{}, nil, defaultParams())
	simple := NewSimple(&mockRecordStore{records: homicideFixture()}, nil, defaultParams())
	hybrid := NewHybrid(graph, simple)

	out := hybrid.Suggestions(context.Background(), domain.Filters{}, 2)
	if out.Provider != domain.ProviderGraph {
		t.Errorf("provider = %q, want graph", out.Provider)
	}
}
