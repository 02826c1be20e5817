package config

import (
	"context"

	"github.com/trebuchet-org/txprep/internal/config"
	domainconfig "github.com/trebuchet-org/txprep/internal/domain/config"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

// ChainResolverAdapter adapts the config.ChainRegistry to the usecase.ChainResolver interface
type ChainResolverAdapter struct {
	registry *config.ChainRegistry
}

// NewChainResolverAdapter creates a new adapter over the runtime chain registry
func NewChainResolverAdapter(cfg *domainconfig.RuntimeConfig) *ChainResolverAdapter {
	return &ChainResolverAdapter{
		registry: config.NewChainRegistry(cfg.Chains),
	}
}

// GetChains returns all configured chain names
func (a *ChainResolverAdapter) GetChains(ctx context.Context) []string {
	return a.registry.Names()
}

// ResolveChain resolves a chain name or decimal chain id to its configuration
func (a *ChainResolverAdapter) ResolveChain(ctx context.Context, name string) (*domainconfig.Chain, error) {
	return a.registry.Resolve(name)
}

// Ensure the adapter implements the interface
var _ usecase.ChainResolver = (*ChainResolverAdapter)(nil)
