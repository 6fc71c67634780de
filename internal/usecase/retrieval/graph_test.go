package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/kermartin/jurisearch/internal/domain"
)

func graphFixture() []domain.GraphCandidate {
	yes := true
	return []domain.GraphCandidate{
		{ID: "10", Title: "Homicídio qualificado e dosimetria", Court: "STJ", Date: "2021-03-10", Topic: "homicidio", Binding: &yes},
		{ID: "11", Title: "Homicídio privilegiado", Court: "STJ", Date: "2019-07-02", Topic: "homicidio"},
		{ID: "12", Title: "Roubo majorado", Court: "TJSP", Date: "2020-05-20", Topic: "roubo"},
	}
}

func TestGraphSearch_LimitFloor(t *testing.T) {
	store := &mockGraphStore{candidates: graphFixture()}
	svc := NewGraph(store, &mockRecordStore{}, nil, defaultParams())

	svc.Search(context.Background(), "", domain.Filters{}, 3)
	if store.lastLimit != 20 {
		t.Errorf("limit = %d, want floor of 20", store.lastLimit)
	}

	svc.Search(context.Background(), "", domain.Filters{}, 10)
	if store.lastLimit != 30 {
		t.Errorf("limit = %d, want topK*3", store.lastLimit)
	}
}

func TestGraphSearch_EmptyQueryKeepsGraphOrder(t *testing.T) {
	store := &mockGraphStore{candidates: graphFixture()}
	svc := NewGraph(store, &mockRecordStore{}, nil, defaultParams())

	out := svc.Search(context.Background(), "", domain.Filters{}, 2)
	if out.Provider != domain.ProviderGraph {
		t.Errorf("provider = %q, want graph", out.Provider)
	}
	if len(out.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out.Items))
	}
	if out.Items[0].ID != "10" || out.Items[1].ID != "11" {
		t.Errorf("graph ordering not preserved: got [%s, %s]", out.Items[0].ID, out.Items[1].ID)
	}
}

func TestGraphSearch_TitleRerankWithoutEmbedder(t *testing.T) {
	store := &mockGraphStore{candidates: graphFixture()}
	svc := NewGraph(store, &mockRecordStore{}, nil, defaultParams())

	out := svc.Search(context.Background(), "roubo", domain.Filters{}, 3)
	if len(out.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(out.Items))
	}
	if out.Items[0].ID != "12" {
		t.Errorf("title term rerank should promote the matching candidate, got %s first", out.Items[0].ID)
	}
	for _, it := range out.Items {
		if it.Score != nil {
			t.Errorf("graph items must not carry scores, %s does", it.ID)
		}
	}
}

func TestGraphSearch_CosineRerankThroughRecordJoin(t *testing.T) {
	aligned := record(11, "Homicídio privilegiado", "homicidio", date(2019, 7, 2))
	aligned.Embedding = &domain.PrecedentEmbedding{Vector: []float32{1, 0}, Dim: 2}
	other := record(10, "Homicídio qualificado e dosimetria", "homicidio", date(2021, 3, 10))
	other.Embedding = &domain.PrecedentEmbedding{Vector: []float32{0, 1}, Dim: 2}

	records := &mockRecordStore{records: []domain.PrecedentRecord{aligned, other}}
	store := &mockGraphStore{candidates: graphFixture()}
	embed := &mockEmbedder{vec: []float32{1, 0}}
	svc := NewGraph(store, records, embed, defaultParams())

	out := svc.Search(context.Background(), "homicídio", domain.Filters{}, 3)
	if !records.byTitlesCalled {
		t.Fatal("record join not attempted")
	}
	if out.Items[0].ID != "11" {
		t.Errorf("cosine rerank should favor the aligned record, got %s first", out.Items[0].ID)
	}
}

func TestGraphSearch_JoinFailureFallsBackToTitleTerms(t *testing.T) {
	records := &mockRecordStore{byTitlesErr: errors.New("connection refused")}
	store := &mockGraphStore{candidates: graphFixture()}
	embed := &mockEmbedder{vec: []float32{1, 0}}
	svc := NewGraph(store, records, embed, defaultParams())

	out := svc.Search(context.Background(), "roubo", domain.Filters{}, 3)
	if len(out.Items) != 3 {
		t.Fatalf("join failure must not fail the request, got %d items", len(out.Items))
	}
	if out.Items[0].ID != "12" {
		t.Errorf("expected title-term fallback ranking, got %s first", out.Items[0].ID)
	}
}

func TestGraphSearch_StoreFailureDegradesEmpty(t *testing.T) {
	store := &mockGraphStore{err: domain.ErrGraphUnavailable}
	svc := NewGraph(store, &mockRecordStore{}, nil, defaultParams())

	out := svc.Search(context.Background(), "homicídio", domain.Filters{}, 3)
	if len(out.Items) != 0 {
		t.Errorf("expected empty outcome, got %d items", len(out.Items))
	}
	if out.Provider != domain.ProviderGraph {
		t.Errorf("provider = %q, want graph", out.Provider)
	}
}

func TestGraphSuggestions_DelegatesToBrowse(t *testing.T) {
	store := &mockGraphStore{candidates: graphFixture()}
	svc := NewGraph(store, &mockRecordStore{}, nil, defaultParams())

	out := svc.Suggestions(context.Background(), domain.Filters{}, 2)
	if len(out.Items) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(out.Items))
	}
	if out.Items[0].ID != "10" {
		t.Errorf("suggestions should keep graph ordering, got %s first", out.Items[0].ID)
	}
}
