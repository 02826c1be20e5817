package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/txprep/internal/domain"
	"github.com/trebuchet-org/txprep/internal/domain/models"
	"github.com/trebuchet-org/txprep/internal/erc20"
	"github.com/trebuchet-org/txprep/internal/fees"
	"github.com/trebuchet-org/txprep/internal/validation"
)

// TransactionStatusParams contains parameters for checking a draft
type TransactionStatusParams struct {
	AccountID   string
	Transaction models.Transaction
}

// GetTransactionStatus validates a draft without touching the network.
// Drafts without a gas limit are priced at the fallback limit for their kind.
type GetTransactionStatus struct {
	accounts AccountRepository
	chains   ChainResolver
}

// NewGetTransactionStatus creates a new GetTransactionStatus use case
func NewGetTransactionStatus(accounts AccountRepository, chains ChainResolver) *GetTransactionStatus {
	return &GetTransactionStatus{
		accounts: accounts,
		chains:   chains,
	}
}

// Run executes the use case
func (uc *GetTransactionStatus) Run(ctx context.Context, params TransactionStatusParams) (*models.TransactionStatus, error) {
	account, err := uc.accounts.GetAccount(ctx, params.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account %s: %w", params.AccountID, err)
	}
	chain, err := uc.chains.ResolveChain(ctx, account.ChainID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve chain for account %s: %w", account.ID, err)
	}

	tx := params.Transaction.Clone()
	var token *models.TokenAccount
	if tx.IsTokenTransfer() {
		var ok bool
		if token, ok = account.SubAccount(tx.SubAccountID); !ok {
			return nil, fmt.Errorf("%w: %s on account %s", domain.ErrSubAccountNotFound, tx.SubAccountID, account.ID)
		}
		tx = fees.SeedGasLimit(tx, erc20.TransferGasFallback)
		if tx.UseAllAmount {
			tx.Amount = token.SpendableBalance
		}
	} else {
		tx = fees.SeedGasLimit(tx, fees.DefaultGasLimit)
		if tx.UseAllAmount {
			tx.Amount = account.SpendableBalance.Sub(fees.EstimatedFees(tx))
		}
	}

	totals := validation.ComputeTotals(tx)
	recipientErrs, warnings := validation.ValidateRecipient(account, tx, chain)
	errs := recipientErrs.
		Merge(validation.ValidateAmount(account, token, tx, totals)).
		Merge(validation.ValidateGas(account, token, totals))

	return &models.TransactionStatus{
		Errors:        errs,
		Warnings:      warnings,
		EstimatedFees: totals.EstimatedFees,
		Amount:        totals.Amount,
		TotalSpent:    totals.TotalSpent,
	}, nil
}
