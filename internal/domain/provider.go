package domain

// Provider names a retrieval strategy.
type Provider string

const (
	// ProviderSimple is the relational filter + cosine/lexical ranking path.
	ProviderSimple Provider = "simple"
	// ProviderGraph is the graph traversal + embedding rerank path.
	ProviderGraph Provider = "graph"
	// ProviderHybrid is graph-first with a single-level fallback to simple.
	ProviderHybrid Provider = "hybrid"
)

// ParseProvider resolves a provider name. ok is false for unknown names and
// the empty string.
func ParseProvider(s string) (Provider, bool) {
	switch Provider(s) {
	case ProviderSimple, ProviderGraph, ProviderHybrid:
		return Provider(s), true
	}
	return "", false
}

// Response is the outward response of a retrieval request.
type Response struct {
	Items             []ResultItem      `json:"items"`
	ProviderUsed      string            `json:"provider_used"`
	ProviderEffective string            `json:"provider_effective"`
	TraceID           string            `json:"trace_id"`
	Count             int               `json:"count"`
	LatencyMS         int64             `json:"latency_ms"`
	Filters           map[string]string `json:"filters"`
}
