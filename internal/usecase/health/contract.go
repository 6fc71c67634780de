package health

import "context"

// DBPinger checks relational store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// GraphPinger checks graph store availability.
type GraphPinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}
