package domain

import "time"

// PrecedentRecord is a single jurisprudence entry as stored in the record
// store. Records are written by the ingestion pipeline and are read-only for
// the retrieval path.
type PrecedentRecord struct {
	ID              int64
	Title           string
	Court           string
	JudgmentDate    *time.Time
	Abstract        string
	Reasoning       string
	StrategicNotes  string
	DefenseTheses   string
	Topic           string
	Link            string
	Binding         bool
	CitedProvisions []string
	Phase           string
	Block           *int

	// Embedding is the precomputed vector for this record, nil when the
	// offline indexer has not processed it yet.
	Embedding *PrecedentEmbedding
}

// PrecedentEmbedding is a precomputed dense vector for a record, produced by
// the offline indexing job.
type PrecedentEmbedding struct {
	Vector []float32
	Dim    int
}

// HasVector reports whether the record carries a usable embedding of the
// given dimensionality. A stored vector whose length does not match the
// current model output is treated as absent.
func (r *PrecedentRecord) HasVector(dim int) bool {
	return r.Embedding != nil && len(r.Embedding.Vector) > 0 && len(r.Embedding.Vector) == dim
}

// GraphCandidate is a precedent node returned by the graph store. It carries
// only the properties present in the graph schema; the full text lives in the
// record store.
type GraphCandidate struct {
	ID      string
	Title   string
	Court   string
	Date    string
	Topic   string
	Link    string
	Binding *bool
}
