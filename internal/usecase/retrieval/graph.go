package retrieval

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/kermartin/jurisearch/internal/domain"
	"github.com/kermartin/jurisearch/internal/domain/scoring"
	"github.com/kermartin/jurisearch/internal/logger"
)

// Graph is the traversal strategy: structural filtering and ordering in the
// graph store, then a best-effort semantic rerank through the relational
// embeddings.
type Graph struct {
	graph    GraphStore
	records  RecordStore
	embedder Embedder
	params   scoring.Params
}

// NewGraph creates the graph strategy. embedder may be nil.
func NewGraph(graph GraphStore, records RecordStore, embedder Embedder, params scoring.Params) *Graph {
	return &Graph{graph: graph, records: records, embedder: embedder, params: params}
}

// Search fetches a preliminary structurally-ordered candidate set and
// reranks it for non-empty queries. An unreachable graph store yields an
// empty outcome, which is what lets the hybrid orchestrator fall back.
func (g *Graph) Search(ctx context.Context, query string, f domain.Filters, topK int) Outcome {
	limit := topK * 3
	if limit < 20 {
		limit = 20
	}

	candidates, err := g.graph.MatchPrecedents(ctx, f, limit)
	if err != nil {
		logger.FromContext(ctx).Warn("graph store unavailable", zap.Error(err))
		return Outcome{Provider: domain.ProviderGraph}
	}

	prelim := make([]domain.ResultItem, len(candidates))
	for i := range candidates {
		prelim[i] = domain.ItemFromGraph(&candidates[i])
	}

	terms := scoring.Terms(query)
	if len(terms) == 0 {
		if len(prelim) > topK {
			prelim = prelim[:topK]
		}
		return Outcome{Items: prelim, Provider: domain.ProviderGraph}
	}

	queryVec := g.embedQuery(ctx, query)
	byTitleCourt := g.mapToRecords(ctx, prelim)

	type scored struct {
		item  domain.ResultItem
		score float64
	}
	ranked := make([]scored, len(prelim))
	for i, it := range prelim {
		sc := g.params.TitleOnly(it.Title, terms)
		if queryVec != nil {
			if rec, ok := byTitleCourt[joinKey(it.Title, deref(it.Court))]; ok && rec.HasVector(len(queryVec)) {
				sc = scoring.Cosine(queryVec, rec.Embedding.Vector)
			}
		}
		ranked[i] = scored{item: it, score: sc}
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	items := make([]domain.ResultItem, len(ranked))
	for i, r := range ranked {
		items[i] = r.item
	}
	return Outcome{Items: items, Provider: domain.ProviderGraph}
}

// Suggestions is Search without a query: structural ordering only.
func (g *Graph) Suggestions(ctx context.Context, f domain.Filters, topK int) Outcome {
	return g.Search(ctx, "", f, topK)
}

func (g *Graph) embedQuery(ctx context.Context, query string) []float32 {
	if g.embedder == nil {
		return nil
	}
	vec, err := g.embedder.Embed(ctx, strings.ToLower(strings.TrimSpace(query)))
	if err != nil {
		logger.FromContext(ctx).Warn("query embedding failed, reranking by title terms", zap.Error(err))
		return nil
	}
	return vec
}

// mapToRecords reattaches graph candidates to relational records by exact
// title+court. A best-effort join, not a foreign key: on title collisions
// the first record wins.
func (g *Graph) mapToRecords(ctx context.Context, items []domain.ResultItem) map[string]*domain.PrecedentRecord {
	titles := make([]string, 0, len(items))
	for _, it := range items {
		if it.Title != "" {
			titles = append(titles, it.Title)
		}
	}
	if len(titles) == 0 {
		return nil
	}

	records, err := g.records.FetchByTitles(ctx, titles)
	if err != nil {
		logger.FromContext(ctx).Warn("record join for rerank failed", zap.Error(err))
		return nil
	}

	m := make(map[string]*domain.PrecedentRecord, len(records))
	for i := range records {
		key := joinKey(records[i].Title, records[i].Court)
		if _, exists := m[key]; !exists {
			m[key] = &records[i]
		}
	}
	return m
}

func joinKey(title, court string) string {
	return title + "|" + court
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
