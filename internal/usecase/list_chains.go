package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/txprep/internal/domain"
)

// ListChainsParams contains parameters for listing chains
type ListChainsParams struct {
	// Probe asks each endpoint for its chain id
	Probe bool
}

// ListChainsResult contains the result of listing chains
type ListChainsResult struct {
	Chains []ChainStatus
}

// ChainStatus represents the status of a chain
type ChainStatus struct {
	Name          string
	ChainID       uint64
	RemoteChainID uint64
	RPCURL        string
	Error         error
}

// ListChains is a use case for listing configured chains
type ListChains struct {
	resolver ChainResolver
	prober   ChainProber
}

// NewListChains creates a new ListChains use case
func NewListChains(resolver ChainResolver, prober ChainProber) *ListChains {
	return &ListChains{
		resolver: resolver,
		prober:   prober,
	}
}

// Run executes the use case
func (uc *ListChains) Run(ctx context.Context, params ListChainsParams) (*ListChainsResult, error) {
	names := uc.resolver.GetChains(ctx)

	chains := make([]ChainStatus, 0, len(names))
	for _, name := range names {
		status := ChainStatus{Name: name}

		chain, err := uc.resolver.ResolveChain(ctx, name)
		if err != nil {
			status.Error = err
			chains = append(chains, status)
			continue
		}
		status.ChainID = chain.ChainID
		status.RPCURL = chain.RPCURL

		if params.Probe && chain.RPCURL != "" {
			remote, err := uc.prober.ChainID(ctx, chain)
			switch {
			case err != nil:
				status.Error = err
			case remote != chain.ChainID:
				status.RemoteChainID = remote
				status.Error = fmt.Errorf("%w: configured %d, endpoint reports %d", domain.ErrChainMismatch, chain.ChainID, remote)
			default:
				status.RemoteChainID = remote
			}
		}

		chains = append(chains, status)
	}

	return &ListChainsResult{
		Chains: chains,
	}, nil
}
