// Package precedent is the Postgres record store adapter. It is a pure read
// path for retrieval; the only write is the embedding upsert used by the
// offline indexer.
package precedent

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kermartin/jurisearch/internal/domain"
)

// Repo reads precedent records and their embeddings.
type Repo struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
	candidateCap int
}

// New creates a record store adapter over a bounded connection pool.
func New(pool *pgxpool.Pool, queryTimeout time.Duration, candidateCap int) *Repo {
	if candidateCap <= 0 {
		candidateCap = 300
	}
	return &Repo{pool: pool, queryTimeout: queryTimeout, candidateCap: candidateCap}
}

// Ping checks store connectivity.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping record store: %w", err)
	}
	return nil
}

// FetchCandidates returns filtered records with embeddings joined, newest
// first, bounded to the candidate cap.
func (r *Repo) FetchCandidates(ctx context.Context, f domain.Filters) ([]domain.PrecedentRecord, error) {
	preds, args := buildPredicates(f)
	args = append(args, r.candidateCap)
	query := fmt.Sprintf("SELECT %s\n%s\n%s\n%s\nLIMIT $%d",
		recordColumns, fromClause, whereClause(preds), dateOrder, len(args))
	return r.fetch(ctx, query, args)
}

// FetchSuggestions returns filtered records ordered by judgment date then id
// descending, bounded to topK. A pure browse path, no scoring.
func (r *Repo) FetchSuggestions(ctx context.Context, f domain.Filters, topK int) ([]domain.PrecedentRecord, error) {
	preds, args := buildPredicates(f)
	args = append(args, topK)
	query := fmt.Sprintf("SELECT %s\n%s\n%s\n%s\nLIMIT $%d",
		recordColumns, fromClause, whereClause(preds), dateOrder, len(args))
	return r.fetch(ctx, query, args)
}

// FetchByTitles returns records whose title matches exactly, embeddings
// joined. Backs the graph strategy's title+court rerank join.
func (r *Repo) FetchByTitles(ctx context.Context, titles []string) ([]domain.PrecedentRecord, error) {
	if len(titles) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT %s\n%s\nWHERE p.title = ANY($1)", recordColumns, fromClause)
	return r.fetch(ctx, query, []any{titles})
}

func (r *Repo) fetch(ctx context.Context, query string, args []any) ([]domain.PrecedentRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query precedents: %w", err)
	}
	defer rows.Close()

	var records []domain.PrecedentRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan precedent: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate precedents: %w", err)
	}
	return records, nil
}

func scanRecord(rows pgx.Rows) (domain.PrecedentRecord, error) {
	var rec domain.PrecedentRecord
	var vector []float32
	var dim *int

	err := rows.Scan(
		&rec.ID, &rec.Title, &rec.Court, &rec.JudgmentDate,
		&rec.Abstract, &rec.Reasoning,
		&rec.StrategicNotes, &rec.DefenseTheses,
		&rec.Topic, &rec.Link, &rec.Binding,
		&rec.CitedProvisions, &rec.Phase, &rec.Block,
		&vector, &dim,
	)
	if err != nil {
		return domain.PrecedentRecord{}, err
	}

	if len(vector) > 0 {
		emb := &domain.PrecedentEmbedding{Vector: vector, Dim: len(vector)}
		if dim != nil {
			emb.Dim = *dim
		}
		rec.Embedding = emb
	}
	return rec, nil
}
