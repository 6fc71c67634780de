package graph

import (
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/kermartin/jurisearch/internal/domain"
)

func TestQueryParams_BindingNormalization(t *testing.T) {
	p := queryParams(domain.Filters{Binding: "sim"}, 20)
	if p["binding"] != "true" {
		t.Errorf("binding param = %v, want true", p["binding"])
	}

	p = queryParams(domain.Filters{Binding: "não"}, 20)
	if p["binding"] != "false" {
		t.Errorf("binding param = %v, want false", p["binding"])
	}

	p = queryParams(domain.Filters{Binding: "whatever"}, 20)
	if p["binding"] != "" {
		t.Errorf("unparseable binding must stay empty, got %v", p["binding"])
	}
	if p["limit"] != 20 {
		t.Errorf("limit = %v", p["limit"])
	}
}

func TestCandidateFromRecord(t *testing.T) {
	binding := true
	rec := &neo4j.Record{
		Keys: []string{"p", "t"},
		Values: []any{
			neo4j.Node{Props: map[string]any{
				"id":      "J_7",
				"title":   "HC 7",
				"court":   "STF",
				"date":    "2021-03-02",
				"link":    "https://example.org/hc7",
				"binding": binding,
			}},
			neo4j.Node{Props: map[string]any{"name": "homicidio"}},
		},
	}

	c := candidateFromRecord(rec)
	if c.ID != "J_7" || c.Title != "HC 7" || c.Court != "STF" {
		t.Errorf("unexpected candidate: %+v", c)
	}
	if c.Topic != "homicidio" {
		t.Errorf("topic = %q", c.Topic)
	}
	if c.Binding == nil || !*c.Binding {
		t.Error("binding should be true")
	}
}

func TestCandidateFromRecord_MissingNodes(t *testing.T) {
	rec := &neo4j.Record{Keys: []string{"p", "t"}, Values: []any{nil, nil}}
	c := candidateFromRecord(rec)
	if c.ID != "" || c.Binding != nil {
		t.Errorf("empty record should map to zero candidate: %+v", c)
	}
}
