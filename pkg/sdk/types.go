package sdk

// ResultItem is one ranked precedent in a search or suggestions response.
// Field order mirrors the wire format. Score is nil when no ranking was
// computed (browse mode and graph-sourced items).
type ResultItem struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Court           *string  `json:"court"`
	Date            *string  `json:"date"`
	Topics          []string `json:"topics"`
	Theses          []string `json:"theses"`
	Risks           []string `json:"risks"`
	Citations       []string `json:"citations"`
	Link            *string  `json:"link"`
	Binding         *bool    `json:"binding"`
	CitedProvisions []string `json:"cited_provisions"`
	Score           *float64 `json:"score"`
}

// Response is the envelope of the search and suggestions endpoints.
// ProviderEffective names the strategy that actually produced the items,
// which differs from ProviderUsed when a hybrid request falls back.
type Response struct {
	Items             []ResultItem      `json:"items"`
	ProviderUsed      string            `json:"provider_used"`
	ProviderEffective string            `json:"provider_effective"`
	TraceID           string            `json:"trace_id"`
	Count             int               `json:"count"`
	LatencyMS         int64             `json:"latency_ms"`
	Filters           map[string]string `json:"filters"`
}

// HealthReport is the health endpoint payload. Components that are not
// configured on the server do not appear in Checks.
type HealthReport struct {
	Status          string            `json:"status"`
	Checks          map[string]string `json:"checks"`
	DefaultProvider string            `json:"default_provider"`
}
