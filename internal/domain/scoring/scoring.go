// Package scoring holds the term-frequency and vector-similarity scoring
// used by the retrieval strategies.
package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/kermartin/jurisearch/internal/domain"
)

// Params carries the scoring weights. The defaults come from the tuning of
// the production corpus; they are parameters, not invariants.
type Params struct {
	TitleWeight     float64
	AbstractWeight  float64
	ReasoningWeight float64
	// TitleOnlyWeight scores graph candidates, where only the title is
	// available locally.
	TitleOnlyWeight float64

	// Lexical recency bonus: RecencyPerYear per year past BaseYear, capped
	// at RecencyCap.
	RecencyPerYear float64
	RecencyCap     float64

	// Cosine-path boosts.
	CosineRecencyPerYear float64
	CosineRecencyCap     float64
	BindingBoost         float64

	BaseYear int
}

// DefaultParams returns the production weights.
func DefaultParams() Params {
	return Params{
		TitleWeight:          3.0,
		AbstractWeight:       1.5,
		ReasoningWeight:      1.0,
		TitleOnlyWeight:      2.0,
		RecencyPerYear:       0.01,
		RecencyCap:           0.5,
		CosineRecencyPerYear: 0.001,
		CosineRecencyCap:     0.05,
		BindingBoost:         0.02,
		BaseYear:             2000,
	}
}

// Terms normalizes a query into lower-cased terms. An empty or whitespace
// query yields no terms.
func Terms(query string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(query)))
}

// Lexical computes the term-frequency score of a record: weighted term
// occurrences in title, abstract and reasoning, plus the recency bonus.
// With no terms the score is 0 and callers should order by date instead.
func (p Params) Lexical(r *domain.PrecedentRecord, terms []string) float64 {
	score := p.TitleWeight * termCount(r.Title, terms)
	score += p.AbstractWeight * termCount(r.Abstract, terms)
	score += p.ReasoningWeight * termCount(r.Reasoning, terms)
	score += p.recencyBonus(r.JudgmentDate, p.RecencyPerYear, p.RecencyCap)
	return score
}

// TitleOnly scores a candidate by title term frequency alone. Used for graph
// candidates whose full text is not available.
func (p Params) TitleOnly(title string, terms []string) float64 {
	return p.TitleOnlyWeight * termCount(title, terms)
}

// SimilarityBoosts augments a cosine similarity with the recency and
// bindingness bonuses of the vector path.
func (p Params) SimilarityBoosts(sim float64, date *time.Time, binding bool) float64 {
	sim += p.recencyBonus(date, p.CosineRecencyPerYear, p.CosineRecencyCap)
	if binding {
		sim += p.BindingBoost
	}
	return sim
}

func (p Params) recencyBonus(date *time.Time, perYear, cap float64) float64 {
	if date == nil {
		return 0
	}
	bonus := perYear * float64(date.Year()-p.BaseYear)
	if bonus < 0 {
		return 0
	}
	if bonus > cap {
		return cap
	}
	return bonus
}

func termCount(text string, terms []string) float64 {
	if len(terms) == 0 || text == "" {
		return 0
	}
	text = strings.ToLower(text)
	total := 0
	for _, t := range terms {
		total += strings.Count(text, t)
	}
	return float64(total)
}

// Cosine returns the cosine similarity of two vectors. Mismatched lengths
// and zero vectors yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
