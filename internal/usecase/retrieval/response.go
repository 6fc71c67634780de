package retrieval

import (
	"time"

	"github.com/google/uuid"

	"github.com/kermartin/jurisearch/internal/domain"
)

// BuildResponse assembles the outward response envelope. Items is never nil
// so that clients always see a JSON array, and every response carries a
// fresh trace id.
func BuildResponse(items []domain.ResultItem, used, effective domain.Provider, latency time.Duration, filters map[string]string) domain.Response {
	if items == nil {
		items = []domain.ResultItem{}
	}
	if filters == nil {
		filters = map[string]string{}
	}
	return domain.Response{
		Items:             items,
		ProviderUsed:      string(used),
		ProviderEffective: string(effective),
		TraceID:           uuid.NewString(),
		Count:             len(items),
		LatencyMS:         latency.Milliseconds(),
		Filters:           filters,
	}
}
