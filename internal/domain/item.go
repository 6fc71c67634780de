package domain

import (
	"strconv"
	"time"
)

// ResultItem is the only shape that crosses the retrieval boundary. Field
// order is stable and raw vectors never leak into it. Score is nil when no
// ranking was computed (browse mode).
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

// ItemFromRecord maps a record-store row to the outward item shape.
func ItemFromRecord(r *PrecedentRecord) ResultItem {
	it := ResultItem{
		ID:              strconv.FormatInt(r.ID, 10),
		Title:           r.Title,
		Court:           optString(r.Court),
		Link:            optString(r.Link),
		CitedProvisions: r.CitedProvisions,
	}
	if r.JudgmentDate != nil {
		it.Date = optString(r.JudgmentDate.Format(time.DateOnly))
	}
	if r.Topic != "" {
		it.Topics = []string{r.Topic}
	}
	binding := r.Binding
	it.Binding = &binding
	return it
}

// ItemFromGraph maps a graph candidate to the outward item shape.
func ItemFromGraph(c *GraphCandidate) ResultItem {
	return ResultItem{
		ID:      c.ID,
		Title:   c.Title,
		Court:   optString(c.Court),
		Date:    optString(c.Date),
		Topics:  optStrings(c.Topic),
		Link:    optString(c.Link),
		Binding: c.Binding,
	}
}

// WithScore returns a copy of the item with the relevance score attached.
func (it ResultItem) WithScore(score float64) ResultItem {
	it.Score = &score
	return it
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optStrings(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
