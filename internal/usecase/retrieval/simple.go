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

// Simple is the relational strategy: filter in the record store, score with
// cosine similarity when embeddings exist, lexical term frequency otherwise.
type Simple struct {
	records  RecordStore
	embedder Embedder
	params   scoring.Params
}

// NewSimple creates the simple strategy. embedder may be nil.
func NewSimple(records RecordStore, embedder Embedder, params scoring.Params) *Simple {
	return &Simple{records: records, embedder: embedder, params: params}
}

// Search ranks filtered candidates. An empty query is browse mode: date
// ordering, no scores.
func (s *Simple) Search(ctx context.Context, query string, f domain.Filters, topK int) Outcome {
	candidates, err := s.records.FetchCandidates(ctx, f)
	if err != nil {
		logger.FromContext(ctx).Warn("record store unavailable", zap.Error(err))
		return Outcome{Provider: domain.ProviderSimple}
	}

	terms := scoring.Terms(query)
	if len(terms) == 0 {
		sortByDate(candidates)
		return Outcome{Items: toItems(head(candidates, topK)), Provider: domain.ProviderSimple}
	}

	queryVec := s.embedQuery(ctx, query)

	type scored struct {
		rec   *domain.PrecedentRecord
		score float64
	}
	ranked := make([]scored, len(candidates))
	for i := range candidates {
		rec := &candidates[i]
		var sc float64
		if queryVec != nil && rec.HasVector(len(queryVec)) {
			sc = s.params.SimilarityBoosts(
				scoring.Cosine(queryVec, rec.Embedding.Vector),
				rec.JudgmentDate, rec.Binding,
			)
		} else {
			sc = s.params.Lexical(rec, terms)
		}
		ranked[i] = scored{rec: rec, score: sc}
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	items := make([]domain.ResultItem, len(ranked))
	for i, r := range ranked {
		items[i] = domain.ItemFromRecord(r.rec).WithScore(r.score)
	}
	return Outcome{Items: items, Provider: domain.ProviderSimple}
}

// Suggestions is the pure browse path: filters, date ordering, no scoring.
func (s *Simple) Suggestions(ctx context.Context, f domain.Filters, topK int) Outcome {
	records, err := s.records.FetchSuggestions(ctx, f, topK)
	if err != nil {
		logger.FromContext(ctx).Warn("record store unavailable", zap.Error(err))
		return Outcome{Provider: domain.ProviderSimple}
	}
	sortByDate(records)
	return Outcome{Items: toItems(head(records, topK)), Provider: domain.ProviderSimple}
}

// embedQuery vectorizes the query best-effort; any failure means lexical
// scoring for every candidate.
func (s *Simple) embedQuery(ctx context.Context, query string) []float32 {
	if s.embedder == nil {
		return nil
	}
	vec, err := s.embedder.Embed(ctx, strings.ToLower(strings.TrimSpace(query)))
	if err != nil {
		logger.FromContext(ctx).Warn("query embedding failed, using lexical scoring", zap.Error(err))
		return nil
	}
	return vec
}

// sortByDate orders newest first, breaking ties by id descending. Records
// without a date sink to the end.
func sortByDate(records []domain.PrecedentRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		di, dj := records[i].JudgmentDate, records[j].JudgmentDate
		switch {
		case di == nil && dj == nil:
			return records[i].ID > records[j].ID
		case di == nil:
			return false
		case dj == nil:
			return true
		case di.Equal(*dj):
			return records[i].ID > records[j].ID
		default:
			return di.After(*dj)
		}
	})
}

func head(records []domain.PrecedentRecord, n int) []domain.PrecedentRecord {
	if len(records) > n {
		return records[:n]
	}
	return records
}

func toItems(records []domain.PrecedentRecord) []domain.ResultItem {
	items := make([]domain.ResultItem, len(records))
	for i := range records {
		items[i] = domain.ItemFromRecord(&records[i])
	}
	return items
}
