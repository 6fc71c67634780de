package retrieval

import (
	"context"
	"time"

	"github.com/kermartin/jurisearch/internal/domain"
	"github.com/kermartin/jurisearch/internal/domain/scoring"
)

// --- Mocks ---

type mockRecordStore struct {
	records     []domain.PrecedentRecord
	fetchErr    error
	byTitlesErr error

	fetchCalled       bool
	suggestionsCalled bool
	byTitlesCalled    bool
}

// FetchCandidates applies the same conjunctive predicates the SQL layer
// does, via the in-process Filters.Matches.
func (m *mockRecordStore) FetchCandidates(_ context.Context, f domain.Filters) ([]domain.PrecedentRecord, error) {
	m.fetchCalled = true
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	var out []domain.PrecedentRecord
	for _, r := range m.records {
		if f.Matches(&r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRecordStore) FetchSuggestions(ctx context.Context, f domain.Filters, topK int) ([]domain.PrecedentRecord, error) {
	m.suggestionsCalled = true
	records, err := m.FetchCandidates(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(records) > topK {
		records = records[:topK]
	}
	return records, nil
}

func (m *mockRecordStore) FetchByTitles(_ context.Context, titles []string) ([]domain.PrecedentRecord, error) {
	m.byTitlesCalled = true
	if m.byTitlesErr != nil {
		return nil, m.byTitlesErr
	}
	want := make(map[string]bool, len(titles))
	for _, t := range titles {
		want[t] = true
	}
	var out []domain.PrecedentRecord
	for _, r := range m.records {
		if want[r.Title] {
			out = append(out, r)
		}
	}
	return out, nil
}

type mockGraphStore struct {
	candidates []domain.GraphCandidate
	err        error
	called     bool
	lastLimit  int
}

func (m *mockGraphStore) MatchPrecedents(_ context.Context, _ domain.Filters, limit int) ([]domain.GraphCandidate, error) {
	m.called = true
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	if len(m.candidates) > limit {
		return m.candidates[:limit], nil
	}
	return m.candidates, nil
}

type mockEmbedder struct {
	vec    []float32
	err    error
	called bool
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	m.called = true
	if m.err != nil {
		return nil, m.err
	}
	return m.vec, nil
}

// --- Fixtures ---

func date(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func record(id int64, title, topic string, when *time.Time) domain.PrecedentRecord {
	return domain.PrecedentRecord{
		ID:           id,
		Title:        title,
		Court:        "STJ",
		Topic:        topic,
		JudgmentDate: when,
	}
}

// homicideFixture holds five records of which exactly two carry the
// homicide topic.
func homicideFixture() []domain.PrecedentRecord {
	return []domain.PrecedentRecord{
		record(1, "Homicídio qualificado e dosimetria", "homicidio", date(2021, 3, 10)),
		record(2, "Homicídio privilegiado", "homicidio", date(2019, 7, 2)),
		record(3, "Tráfico de drogas e prova ilícita", "trafico", date(2022, 1, 15)),
		record(4, "Roubo majorado", "roubo", date(2020, 5, 20)),
		record(5, "Furto qualificado", "furto", date(2018, 11, 30)),
	}
}

func defaultParams() scoring.Params {
	return scoring.DefaultParams()
}
