package usecase

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/trebuchet-org/txprep/internal/domain"
	"github.com/trebuchet-org/txprep/internal/domain/models"
)

// ResolveAccountParams contains parameters for picking an account
type ResolveAccountParams struct {
	AccountID      string
	NonInteractive bool
	// Network restricts the candidates to accounts on that chain
	Network string
}

// ResolveAccount finds the sending account, prompting when it is ambiguous
type ResolveAccount struct {
	accounts AccountRepository
	selector AccountSelector
}

// NewResolveAccount creates a new ResolveAccount use case
func NewResolveAccount(accounts AccountRepository, selector AccountSelector) *ResolveAccount {
	return &ResolveAccount{
		accounts: accounts,
		selector: selector,
	}
}

// Run executes the use case
func (uc *ResolveAccount) Run(ctx context.Context, params ResolveAccountParams) (*models.Account, error) {
	if params.AccountID != "" {
		account, err := uc.accounts.GetAccount(ctx, params.AccountID)
		if err != nil {
			return nil, err
		}
		if params.Network != "" && account.ChainID != params.Network {
			return nil, fmt.Errorf("%w: account %s is on %s, not %s", domain.ErrChainMismatch, account.ID, account.ChainID, params.Network)
		}
		return account, nil
	}

	accounts, err := uc.accounts.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if params.Network != "" {
		accounts = lo.Filter(accounts, func(a *models.Account, _ int) bool { return a.ChainID == params.Network })
	}

	switch {
	case len(accounts) == 0:
		return nil, domain.ErrAccountNotFound
	case len(accounts) == 1:
		return accounts[0], nil
	case params.NonInteractive:
		return nil, fmt.Errorf("%d accounts configured, pass --account to pick one", len(accounts))
	}

	return uc.selector.SelectAccount(ctx, accounts, "Select the sending account")
}
