// Package graph is the Neo4j graph store adapter. It issues a single
// parameterized traversal over precedent nodes and their topic/phase/block/
// provision/thesis neighbors.
package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/kermartin/jurisearch/internal/domain"
)

// Config holds connection parameters for the graph store.
type Config struct {
	URI      string
	Username string
	Password string
	Database string
	Timeout  time.Duration
}

// Store runs traversal queries against Neo4j.
type Store struct {
	driver   neo4j.DriverWithContext
	database string
	timeout  time.Duration
}

// NewStore creates the graph adapter. Connectivity is not verified here;
// an unreachable store surfaces per-query and strategies degrade.
func NewStore(cfg Config) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("create graph driver: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Store{driver: driver, database: cfg.Database, timeout: timeout}, nil
}

// Ping verifies graph connectivity. Used by the health check only.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrGraphUnavailable, err)
	}
	return nil
}

// Close shuts down the driver.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx) //nolint:wrapcheck
}

// matchQuery filters precedent nodes by their related topic, phase, block,
// provision and thesis nodes, ordered by bindingness then date. Empty
// parameters impose no constraint, mirroring the relational filter
// semantics.
const matchQuery = `
MATCH (p:Precedent)
OPTIONAL MATCH (p)-[:HAS_TOPIC]->(t:Topic)
OPTIONAL MATCH (p)-[:APPLIES_TO]->(f:Phase)
OPTIONAL MATCH (p)-[:APPLIES_TO]->(b:Block)
OPTIONAL MATCH (p)-[:CITES]->(d:Provision)
OPTIONAL MATCH (p)-[:SUPPORTS]->(s:Thesis)
WHERE ($topic = '' OR toLower(t.name) CONTAINS toLower($topic))
  AND ($court = '' OR toLower(p.court) CONTAINS toLower($court))
  AND ($phase = '' OR toLower(f.name) CONTAINS toLower($phase))
  AND ($block = '' OR toString(b.number) = $block OR toLower(b.title) CONTAINS toLower($block))
  AND (
    $binding = '' OR ($binding = 'true' AND p.binding = true)
    OR ($binding = 'false' AND (p.binding = false OR p.binding IS NULL))
  )
  AND ($provision = '' OR toLower(d.name) CONTAINS toLower($provision))
  AND ($thesis = '' OR toLower(s.name) CONTAINS toLower($thesis))
RETURN p AS p, t AS t
ORDER BY p.binding DESC, p.date DESC
LIMIT $limit`

// MatchPrecedents runs the traversal and maps nodes to candidates. The
// caller owns the preliminary limit (max(topK*3, 20) for the graph
// strategy).
func (s *Store) MatchPrecedents(ctx context.Context, f domain.Filters, limit int) ([]domain.GraphCandidate, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	rows, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, matchQuery, queryParams(f, limit))
		if err != nil {
			return nil, err
		}
		return result.Collect(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGraphUnavailable, err)
	}

	records, ok := rows.([]*neo4j.Record)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result shape %T", domain.ErrGraphUnavailable, rows)
	}

	candidates := make([]domain.GraphCandidate, 0, len(records))
	for _, rec := range records {
		candidates = append(candidates, candidateFromRecord(rec))
	}
	return candidates, nil
}

func queryParams(f domain.Filters, limit int) map[string]any {
	binding := ""
	if v, ok := f.BindingValue(); ok {
		binding = "false"
		if v {
			binding = "true"
		}
	}
	return map[string]any{
		"topic":     f.Topic,
		"court":     f.Court,
		"phase":     f.Phase,
		"block":     f.Block,
		"binding":   binding,
		"provision": f.Provision,
		"thesis":    f.Thesis,
		"limit":     limit,
	}
}

func candidateFromRecord(rec *neo4j.Record) domain.GraphCandidate {
	var c domain.GraphCandidate
	if v, ok := rec.Get("p"); ok {
		if node, ok := v.(neo4j.Node); ok {
			c.ID = stringProp(node, "id")
			c.Title = stringProp(node, "title")
			c.Court = stringProp(node, "court")
			c.Date = stringProp(node, "date")
			c.Link = stringProp(node, "link")
			if b, ok := node.Props["binding"].(bool); ok {
				c.Binding = &b
			}
		}
	}
	if v, ok := rec.Get("t"); ok {
		if node, ok := v.(neo4j.Node); ok {
			c.Topic = stringProp(node, "name")
		}
	}
	return c
}

func stringProp(node neo4j.Node, key string) string {
	if s, ok := node.Props[key].(string); ok {
		return s
	}
	return ""
}
