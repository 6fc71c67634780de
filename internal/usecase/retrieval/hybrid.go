package retrieval

import (
	"context"

	"github.com/kermartin/jurisearch/internal/domain"
	"github.com/kermartin/jurisearch/internal/logger"
	"github.com/kermartin/jurisearch/internal/metrics"
)

// Hybrid tries the graph strategy first and falls back to the simple
// strategy when the graph produced nothing. The fallback is single-level:
// an empty simple outcome is the final answer.
type Hybrid struct {
	graph  Strategy
	simple Strategy
}

// NewHybrid creates the hybrid orchestrator.
func NewHybrid(graph, simple Strategy) *Hybrid {
	return &Hybrid{graph: graph, simple: simple}
}

// Search returns the graph outcome when it has items, otherwise the simple
// outcome. The returned Provider names the strategy that actually produced
// the items, not "hybrid".
func (h *Hybrid) Search(ctx context.Context, query string, f domain.Filters, topK int) Outcome {
	out := h.graph.Search(ctx, query, f, topK)
	if len(out.Items) > 0 {
		return out
	}
	metrics.RetrievalFallbackTotal.Inc()
	logger.FromContext(ctx).Info("graph returned no items, falling back to simple")
	return h.simple.Search(ctx, query, f, topK)
}

// Suggestions follows the same graph-then-simple order as Search.
func (h *Hybrid) Suggestions(ctx context.Context, f domain.Filters, topK int) Outcome {
	out := h.graph.Suggestions(ctx, f, topK)
	if len(out.Items) > 0 {
		return out
	}
	metrics.RetrievalFallbackTotal.Inc()
	logger.FromContext(ctx).Info("graph returned no items, falling back to simple")
	return h.simple.Suggestions(ctx, f, topK)
}
