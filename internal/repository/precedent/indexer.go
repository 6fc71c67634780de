package precedent

import (
	"context"
	"fmt"

	"github.com/kermartin/jurisearch/internal/domain"
)

// FetchIndexBatch pages through records for the offline embedding indexer.
// With onlyMissing, records that already have an embedding row are skipped.
func (r *Repo) FetchIndexBatch(ctx context.Context, offset, limit int, onlyMissing bool) ([]domain.PrecedentRecord, error) {
	where := ""
	if onlyMissing {
		where = "WHERE e.precedent_id IS NULL"
	}
	query := fmt.Sprintf("SELECT %s\n%s\n%s\nORDER BY p.id\nLIMIT $1 OFFSET $2",
		recordColumns, fromClause, where)
	return r.fetch(ctx, query, []any{limit, offset})
}

// UpsertEmbedding writes a record's embedding vector, replacing any prior
// one. Used only by the indexer; the retrieval path never writes.
func (r *Repo) UpsertEmbedding(ctx context.Context, precedentID int64, vector []float32) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO precedent_embeddings (precedent_id, vector, dim, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (precedent_id)
		DO UPDATE SET vector = EXCLUDED.vector, dim = EXCLUDED.dim, updated_at = now()`,
		precedentID, vector, len(vector),
	)
	if err != nil {
		return fmt.Errorf("upsert embedding for precedent %d: %w", precedentID, err)
	}
	return nil
}

// CountRecords returns the total record count, used for indexer progress.
func (r *Repo) CountRecords(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	var n int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM precedents").Scan(&n); err != nil {
		return 0, fmt.Errorf("count precedents: %w", err)
	}
	return n, nil
}
