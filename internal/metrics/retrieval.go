package metrics

import "github.com/prometheus/client_golang/prometheus"

// Embedding and retrieval Prometheus metrics.
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jurisearch",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jurisearch",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jurisearch",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	RetrievalRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jurisearch",
			Name:      "retrieval_requests_total",
			Help:      "Total retrieval requests by effective provider",
		},
		[]string{"provider", "operation"}, // operation: "search" / "suggestions"
	)

	RetrievalFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "jurisearch",
			Name:      "retrieval_fallback_total",
			Help:      "Hybrid requests that fell back to the simple provider",
		},
	)

	RetrievalDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jurisearch",
			Name:      "retrieval_duration_seconds",
			Help:      "Retrieval request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"provider"},
	)
)

var retrievalMetricsRegistered bool

// RegisterRetrievalMetrics registers the retrieval and embedding metrics.
// Must be called once from main.
func RegisterRetrievalMetrics() {
	if retrievalMetricsRegistered {
		return
	}
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(EmbeddingCacheTotal)
	prometheus.MustRegister(RetrievalRequestsTotal)
	prometheus.MustRegister(RetrievalFallbackTotal)
	prometheus.MustRegister(RetrievalDuration)
	retrievalMetricsRegistered = true
}
