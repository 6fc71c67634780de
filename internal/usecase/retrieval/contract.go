package retrieval

import (
	"context"

	"github.com/kermartin/jurisearch/internal/domain"
)

// RecordStore is the relational adapter contract. Errors are treated as
// "store unavailable" by strategies, which degrade instead of failing.
type RecordStore interface {
	FetchCandidates(ctx context.Context, f domain.Filters) ([]domain.PrecedentRecord, error)
	FetchSuggestions(ctx context.Context, f domain.Filters, topK int) ([]domain.PrecedentRecord, error)
	FetchByTitles(ctx context.Context, titles []string) ([]domain.PrecedentRecord, error)
}

// GraphStore is the graph adapter contract.
type GraphStore interface {
	MatchPrecedents(ctx context.Context, f domain.Filters, limit int) ([]domain.GraphCandidate, error)
}

// Embedder vectorizes query text. A nil Embedder means no provider is
// configured and scoring stays lexical.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Outcome carries ranked items together with the provider that actually
// produced them, which the hybrid orchestrator may change on fallback.
type Outcome struct {
	Items    []domain.ResultItem
	Provider domain.Provider
}

// Strategy is one retrieval provider. Strategies never fail: every backing-
// store problem is absorbed into an empty Outcome, which is what licenses
// the hybrid fallback. Request validation happens in Service before any
// strategy runs.
type Strategy interface {
	Search(ctx context.Context, query string, f domain.Filters, topK int) Outcome
	Suggestions(ctx context.Context, f domain.Filters, topK int) Outcome
}
