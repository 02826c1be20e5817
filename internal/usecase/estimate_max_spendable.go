package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/txprep/internal/domain"
	"github.com/trebuchet-org/txprep/internal/domain/models"
	"github.com/trebuchet-org/txprep/internal/fees"
)

// EstimateMaxSpendableParams contains parameters for the max estimate. The
// draft's recipient, when set, is used for the gas estimate.
type EstimateMaxSpendableParams struct {
	AccountID string
	Draft     models.Transaction
}

// EstimateMaxSpendableResult is the largest amount the draft may move
type EstimateMaxSpendableResult struct {
	Amount        decimal.Decimal
	EstimatedFees decimal.Decimal
	Unit          models.Unit
}

// EstimateMaxSpendable computes what a max send would move
type EstimateMaxSpendable struct {
	accounts AccountRepository
	chains   ChainResolver
	node     NetworkNode
}

// NewEstimateMaxSpendable creates a new EstimateMaxSpendable use case
func NewEstimateMaxSpendable(accounts AccountRepository, chains ChainResolver, node NetworkNode) *EstimateMaxSpendable {
	return &EstimateMaxSpendable{
		accounts: accounts,
		chains:   chains,
		node:     node,
	}
}

// Run executes the use case
func (uc *EstimateMaxSpendable) Run(ctx context.Context, params EstimateMaxSpendableParams) (*EstimateMaxSpendableResult, error) {
	account, err := uc.accounts.GetAccount(ctx, params.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account %s: %w", params.AccountID, err)
	}

	// Token fees come out of the parent account, never the token balance.
	if params.Draft.IsTokenTransfer() {
		token, ok := account.SubAccount(params.Draft.SubAccountID)
		if !ok {
			return nil, fmt.Errorf("%w: %s on account %s", domain.ErrSubAccountNotFound, params.Draft.SubAccountID, account.ID)
		}
		return &EstimateMaxSpendableResult{
			Amount:        token.SpendableBalance,
			EstimatedFees: decimal.Zero,
			Unit:          token.Token.Unit(),
		}, nil
	}

	chain, err := uc.chains.ResolveChain(ctx, account.ChainID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve chain for account %s: %w", account.ID, err)
	}

	feeData, err := uc.node.GetFeeData(ctx, chain)
	if err != nil {
		return nil, err
	}

	tx := fees.Classify(params.Draft, feeData)
	tx.ChainID = chain.ChainID
	tx.Amount = decimal.Zero
	if tx.Recipient == "" {
		tx.Recipient = account.FreshAddress
	}

	estimate, err := uc.node.GetGasEstimate(ctx, chain, account, tx)
	if err != nil {
		return nil, err
	}
	tx = fees.ApplyGasEstimate(tx, estimate, 0)

	estimated := fees.EstimatedFees(tx)
	amount := account.SpendableBalance.Sub(estimated)
	if amount.IsNegative() {
		amount = decimal.Zero
	}

	return &EstimateMaxSpendableResult{
		Amount:        amount,
		EstimatedFees: estimated,
		Unit:          account.Unit,
	}, nil
}
