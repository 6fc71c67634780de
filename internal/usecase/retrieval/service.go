package retrieval

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kermartin/jurisearch/internal/domain"
	"github.com/kermartin/jurisearch/internal/metrics"
)

// Request is one retrieval request after transport decoding. TopK must be
// positive; the transport layer applies its default before calling in.
type Request struct {
	Query    string
	Filters  domain.Filters
	TopK     int
	Provider string
}

// Service validates requests, resolves the strategy and wraps outcomes in
// the response envelope. It is the only place retrieval errors can surface.
type Service struct {
	selector *Selector
	logger   *zap.Logger
}

// NewService creates the retrieval service.
func NewService(selector *Selector, log *zap.Logger) *Service {
	return &Service{selector: selector, logger: log}
}

// Search runs a retrieval request end to end. The only possible error is
// ErrInvalidTopK; backing-store failures come back as an empty item list.
func (s *Service) Search(ctx context.Context, req Request) (domain.Response, error) {
	if req.TopK <= 0 {
		return domain.Response{}, domain.ErrInvalidTopK
	}

	strategy, used := s.selector.Resolve(req.Provider)

	start := time.Now()
	out := strategy.Search(ctx, req.Query, req.Filters, req.TopK)
	latency := time.Since(start)

	metrics.RetrievalRequestsTotal.WithLabelValues(string(out.Provider), "search").Inc()
	metrics.RetrievalDuration.WithLabelValues(string(out.Provider)).Observe(latency.Seconds())

	s.logger.Info("retrieval search",
		zap.String("provider_used", string(used)),
		zap.String("provider_effective", string(out.Provider)),
		zap.Int("count", len(out.Items)),
		zap.Duration("latency", latency),
	)
	return BuildResponse(out.Items, used, out.Provider, latency, req.Filters.Echo()), nil
}

// Suggestions returns filter-driven recommendations without a query.
func (s *Service) Suggestions(ctx context.Context, req Request) (domain.Response, error) {
	if req.TopK <= 0 {
		return domain.Response{}, domain.ErrInvalidTopK
	}

	strategy, used := s.selector.Resolve(req.Provider)

	start := time.Now()
	out := strategy.Suggestions(ctx, req.Filters, req.TopK)
	latency := time.Since(start)

	metrics.RetrievalRequestsTotal.WithLabelValues(string(out.Provider), "suggestions").Inc()
	metrics.RetrievalDuration.WithLabelValues(string(out.Provider)).Observe(latency.Seconds())

	s.logger.Info("retrieval suggestions",
		zap.String("provider_used", string(used)),
		zap.String("provider_effective", string(out.Provider)),
		zap.Int("count", len(out.Items)),
		zap.Duration("latency", latency),
	)
	return BuildResponse(out.Items, used, out.Provider, latency, req.Filters.Echo()), nil
}
