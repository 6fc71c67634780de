package domain

import "errors"

var (
	// ErrInvalidTopK signals a structurally invalid result limit. It is the
	// only retrieval error surfaced to callers; backing-store failures
	// degrade to empty results instead.
	ErrInvalidTopK = errors.New("topk must be positive")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrGraphUnavailable signals that the graph store could not be reached.
	ErrGraphUnavailable = errors.New("graph store unavailable")
)
