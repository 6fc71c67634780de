package retrieval

import "github.com/kermartin/jurisearch/internal/domain"

// SelectorConfig controls provider resolution.
type SelectorConfig struct {
	// Default is used when a request carries no override or an unknown one.
	Default domain.Provider
	// GraphEnabled gates the graph and hybrid providers; when false both
	// downgrade to simple.
	GraphEnabled bool
}

// Selector maps provider names to strategies.
type Selector struct {
	cfg        SelectorConfig
	strategies map[domain.Provider]Strategy
}

// NewSelector builds a selector over the registered strategies. Every
// provider named by cfg must have a strategy.
func NewSelector(cfg SelectorConfig, simple, graph, hybrid Strategy) *Selector {
	return &Selector{
		cfg: cfg,
		strategies: map[domain.Provider]Strategy{
			domain.ProviderSimple: simple,
			domain.ProviderGraph:  graph,
			domain.ProviderHybrid: hybrid,
		},
	}
}

// Resolve picks the strategy for a request. A valid override wins; anything
// else, including the empty string, resolves to the configured default.
// When the graph store is disabled, graph and hybrid requests are served by
// the simple strategy but keep their requested provider name.
func (s *Selector) Resolve(override string) (Strategy, domain.Provider) {
	provider := s.cfg.Default
	if p, ok := domain.ParseProvider(override); ok {
		provider = p
	}

	effective := provider
	if !s.cfg.GraphEnabled && (effective == domain.ProviderGraph || effective == domain.ProviderHybrid) {
		effective = domain.ProviderSimple
	}
	return s.strategies[effective], provider
}
