package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure. The retrieval API stays up in
	// this state; strategies degrade on their own.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results. Components that are not
// configured do not appear in Checks.
type Report struct {
	Status          Status                 `json:"status"`
	Checks          map[string]CheckResult `json:"checks"`
	DefaultProvider string                 `json:"default_provider"`
}

// Service coordinates health checks across the retrieval backends.
type Service struct {
	db              DBPinger
	graph           GraphPinger
	embedding       EmbeddingChecker
	defaultProvider string
}

// New creates a Service. graph and embedding can be nil when the
// corresponding backend is not configured.
func New(db DBPinger, graph GraphPinger, embedding EmbeddingChecker, defaultProvider string) *Service {
	return &Service{db: db, graph: graph, embedding: embedding, defaultProvider: defaultProvider}
}

// Check runs health checks against all configured components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	if s.graph != nil {
		if err := s.graph.Ping(ctx); err != nil {
			checks["graph"] = CheckError
		} else {
			checks["graph"] = CheckOK
		}
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
		} else {
			checks["embedding"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks, DefaultProvider: s.defaultProvider}
}
