package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/txprep/internal/domain"
	"github.com/trebuchet-org/txprep/internal/domain/config"
	"github.com/trebuchet-org/txprep/internal/domain/models"
	"github.com/trebuchet-org/txprep/internal/erc20"
	"github.com/trebuchet-org/txprep/internal/fees"
	"github.com/trebuchet-org/txprep/internal/validation"
)

// PrepareState is a step of the prepare pipeline
type PrepareState string

const (
	StateDraft          PrepareState = "draft"
	StateFeeDataFetched PrepareState = "fee-data-fetched"
	StateClassified     PrepareState = "classified"
	StateCoinPath       PrepareState = "coin-path"
	StateTokenPath      PrepareState = "token-path"
	StateValidated      PrepareState = "validated"
	StateGasEstimated   PrepareState = "gas-estimated"
	StatePrepared       PrepareState = "prepared"
	StateUnchanged      PrepareState = "unchanged"
)

// Terminal reports whether the pipeline stops at s
func (s PrepareState) Terminal() bool {
	return s == StatePrepared || s == StateUnchanged
}

// PrepareParams contains parameters for preparing a transaction
type PrepareParams struct {
	AccountID string
	Draft     models.Transaction
}

// PrepareResult contains the result of a prepare run. When State is
// StateUnchanged, Transaction is the caller's draft as given and Errors says
// why.
type PrepareResult struct {
	Transaction models.Transaction
	State       PrepareState
	Trail       []PrepareState
	Errors      domain.FieldErrors
	Warnings    domain.FieldErrors
	Totals      validation.Totals
	Chain       *config.Chain
}

// PrepareTransaction turns a user draft into a fee-classified, validated and
// gas-estimated transaction
type PrepareTransaction struct {
	accounts AccountRepository
	chains   ChainResolver
	node     NetworkNode
	progress ProgressSink
	log      *slog.Logger
}

// NewPrepareTransaction creates a new PrepareTransaction use case
func NewPrepareTransaction(
	accounts AccountRepository,
	chains ChainResolver,
	node NetworkNode,
	progress ProgressSink,
	log *slog.Logger,
) *PrepareTransaction {
	return &PrepareTransaction{
		accounts: accounts,
		chains:   chains,
		node:     node,
		progress: progress,
		log:      log.With("component", "PrepareTransaction"),
	}
}

// prepareRun holds one invocation's working state
type prepareRun struct {
	account *models.Account
	token   *models.TokenAccount
	chain   *config.Chain
	draft   models.Transaction
	tx      models.Transaction
	feeData models.FeeData
	totals  validation.Totals
	errs    domain.FieldErrors
	warns   domain.FieldErrors
}

// Run drives the draft through the pipeline. Network failures abort the run
// and are returned as is; validation failures end in StateUnchanged.
func (uc *PrepareTransaction) Run(ctx context.Context, params PrepareParams) (*PrepareResult, error) {
	run, err := uc.load(ctx, params)
	if err != nil {
		return nil, err
	}

	state := StateDraft
	trail := []PrepareState{state}
	for !state.Terminal() {
		next, err := uc.step(ctx, run, state)
		if err != nil {
			uc.log.Debug("prepare aborted", "state", state, "error", err)
			return nil, err
		}
		uc.log.Debug("prepare transition", "from", state, "to", next)
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   string(next),
			Current: len(trail),
			Total:   len(pipelineStages),
			Spinner: !next.Terminal(),
		})
		trail = append(trail, next)
		state = next
	}

	result := &PrepareResult{
		State:    state,
		Trail:    trail,
		Errors:   run.errs,
		Warnings: run.warns,
		Totals:   run.totals,
		Chain:    run.chain,
	}
	if state == StateUnchanged {
		result.Transaction = run.draft.Clone()
	} else {
		result.Transaction = run.tx
	}
	return result, nil
}

var pipelineStages = []PrepareState{
	StateDraft, StateFeeDataFetched, StateClassified, StateCoinPath,
	StateValidated, StateGasEstimated, StatePrepared,
}

func (uc *PrepareTransaction) load(ctx context.Context, params PrepareParams) (*prepareRun, error) {
	account, err := uc.accounts.GetAccount(ctx, params.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account %s: %w", params.AccountID, err)
	}

	chain, err := uc.chains.ResolveChain(ctx, account.ChainID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve chain for account %s: %w", account.ID, err)
	}

	run := &prepareRun{
		account: account,
		chain:   chain,
		draft:   params.Draft.Clone(),
		tx:      params.Draft.Clone(),
		errs:    domain.FieldErrors{},
		warns:   domain.FieldErrors{},
	}

	if params.Draft.IsTokenTransfer() {
		token, ok := account.SubAccount(params.Draft.SubAccountID)
		if !ok {
			return nil, fmt.Errorf("%w: %s on account %s", domain.ErrSubAccountNotFound, params.Draft.SubAccountID, account.ID)
		}
		run.token = token
	}
	return run, nil
}

func (uc *PrepareTransaction) step(ctx context.Context, run *prepareRun, state PrepareState) (PrepareState, error) {
	switch state {
	case StateDraft:
		feeData, err := uc.node.GetFeeData(ctx, run.chain)
		if err != nil {
			return "", err
		}
		run.feeData = feeData
		return StateFeeDataFetched, nil

	case StateFeeDataFetched:
		run.tx = fees.Classify(run.tx, run.feeData)
		run.tx.Recipient = strings.TrimSpace(run.tx.Recipient)
		run.tx.ChainID = run.chain.ChainID
		if run.tx.Family == "" {
			run.tx.Family = run.chain.Family
		}
		if run.tx.Mode == "" {
			run.tx.Mode = models.ModeSend
		}
		return StateClassified, nil

	case StateClassified:
		if run.token != nil {
			return StateTokenPath, nil
		}
		return StateCoinPath, nil

	case StateCoinPath:
		return uc.coinPath(run), nil

	case StateTokenPath:
		return uc.tokenPath(run), nil

	case StateValidated:
		if run.token != nil {
			return uc.estimateTokenGas(ctx, run)
		}
		return uc.estimateCoinGas(ctx, run)

	case StateGasEstimated:
		run.totals = validation.ComputeTotals(run.tx)
		return StatePrepared, nil
	}

	return "", fmt.Errorf("no transition from state %s", state)
}

// coinPath substitutes the max amount and validates against the account.
// Fees for a max send are estimated before the amount is known since a
// plain transfer costs the same whatever it moves.
func (uc *PrepareTransaction) coinPath(run *prepareRun) PrepareState {
	if run.tx.UseAllAmount {
		run.tx = fees.SeedGasLimit(run.tx, fees.DefaultGasLimit)
		run.tx.Amount = run.account.SpendableBalance.Sub(fees.EstimatedFees(run.tx))
	}
	return uc.validate(run)
}

// tokenPath validates against the token balance. Fees are paid in the base
// asset so they never reduce the token amount.
func (uc *PrepareTransaction) tokenPath(run *prepareRun) PrepareState {
	if run.tx.UseAllAmount {
		run.tx.Amount = run.token.SpendableBalance
	}
	return uc.validate(run)
}

func (uc *PrepareTransaction) validate(run *prepareRun) PrepareState {
	run.totals = validation.ComputeTotals(run.tx)

	recipientErrs, warnings := validation.ValidateRecipient(run.account, run.tx, run.chain)
	amountErrs := validation.ValidateAmount(run.account, run.token, run.tx, run.totals)

	run.errs = recipientErrs.Merge(amountErrs)
	run.warns = warnings
	if !run.errs.Empty() {
		uc.log.Debug("draft failed validation", "errors", run.errs.String())
		return StateUnchanged
	}
	return StateValidated
}

func (uc *PrepareTransaction) estimateCoinGas(ctx context.Context, run *prepareRun) (PrepareState, error) {
	estimate, err := uc.node.GetGasEstimate(ctx, run.chain, run.account, run.tx)
	if err != nil {
		return "", err
	}
	run.tx = fees.ApplyGasEstimate(run.tx, estimate, 0)

	// A max send must still cover the estimated fees exactly.
	if run.tx.UseAllAmount {
		run.tx.Amount = run.account.SpendableBalance.Sub(fees.EstimatedFees(run.tx))
		if !run.tx.Amount.IsPositive() {
			run.errs = domain.FieldErrors{domain.FieldAmount: domain.ErrNotEnoughBalance}
			return StateUnchanged, nil
		}
	}
	return StateGasEstimated, nil
}

func (uc *PrepareTransaction) estimateTokenGas(ctx context.Context, run *prepareRun) (PrepareState, error) {
	data, err := erc20.TransferData(run.tx.Recipient, run.tx.Amount.BigInt())
	if err != nil {
		return "", fmt.Errorf("failed to encode token transfer: %w", err)
	}

	call := run.tx.Clone()
	call.Recipient = run.token.Token.ContractAddress
	call.Amount = decimal.Zero
	call.Data = data

	estimate, err := uc.node.GetGasEstimate(ctx, run.chain, run.account, call)
	if err != nil {
		return "", err
	}

	run.tx = fees.ApplyGasEstimate(run.tx, estimate, run.chain.GasBufferPercent)
	run.tx.Data = data
	uc.log.Debug("estimated token transfer", "contract", call.Recipient, "gas", run.tx.GasLimit)
	return StateGasEstimated, nil
}
