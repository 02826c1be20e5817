package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/txprep/internal/codec"
	"github.com/trebuchet-org/txprep/internal/domain"
	"github.com/trebuchet-org/txprep/internal/domain/models"
	"github.com/trebuchet-org/txprep/internal/erc20"
)

// PrepareForSignParams contains parameters for the pre-signing step
type PrepareForSignParams struct {
	AccountID   string
	Transaction models.Transaction
}

// PrepareForSignResult is what crosses the signing boundary
type PrepareForSignResult struct {
	// Transaction carries the nonce and the on-chain destination
	Transaction models.Transaction
	Raw         models.TransactionRaw
	Unsigned    *types.Transaction
	SigningHash common.Hash
}

// PrepareForSign fetches the nonce and rewrites token transfers so the
// signer sees the real on-chain destination
type PrepareForSign struct {
	accounts AccountRepository
	chains   ChainResolver
	node     NetworkNode
	log      *slog.Logger
}

// NewPrepareForSign creates a new PrepareForSign use case
func NewPrepareForSign(accounts AccountRepository, chains ChainResolver, node NetworkNode, log *slog.Logger) *PrepareForSign {
	return &PrepareForSign{
		accounts: accounts,
		chains:   chains,
		node:     node,
		log:      log.With("component", "PrepareForSign"),
	}
}

// Run executes the use case
func (uc *PrepareForSign) Run(ctx context.Context, params PrepareForSignParams) (*PrepareForSignResult, error) {
	account, err := uc.accounts.GetAccount(ctx, params.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account %s: %w", params.AccountID, err)
	}
	chain, err := uc.chains.ResolveChain(ctx, account.ChainID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve chain for account %s: %w", account.ID, err)
	}

	tx := params.Transaction.Clone()
	tx.Recipient = strings.TrimSpace(tx.Recipient)
	if tx.ChainID == 0 {
		tx.ChainID = chain.ChainID
	}
	if tx.ChainID != chain.ChainID {
		return nil, fmt.Errorf("%w: transaction targets %d, account is on %s (%d)", domain.ErrChainMismatch, tx.ChainID, chain.Name, chain.ChainID)
	}

	nonce, err := uc.node.GetNonce(ctx, chain, account.FreshAddress)
	if err != nil {
		return nil, err
	}
	tx.Nonce = nonce

	if tx.IsTokenTransfer() {
		token, ok := account.SubAccount(tx.SubAccountID)
		if !ok {
			return nil, fmt.Errorf("%w: %s on account %s", domain.ErrSubAccountNotFound, tx.SubAccountID, account.ID)
		}
		tx, err = retargetTokenTransfer(tx, token)
		if err != nil {
			return nil, err
		}
	}

	unsigned, err := buildUnsigned(tx)
	if err != nil {
		return nil, err
	}
	signer := types.LatestSignerForChainID(new(big.Int).SetUint64(tx.ChainID))

	uc.log.Debug("built unsigned transaction",
		"type", tx.Type,
		"nonce", tx.Nonce,
		"to", tx.Recipient,
		"chainId", tx.ChainID,
	)

	return &PrepareForSignResult{
		Transaction: tx,
		Raw:         codec.ToRaw(tx),
		Unsigned:    unsigned,
		SigningHash: signer.Hash(unsigned),
	}, nil
}

// retargetTokenTransfer points the transaction at the token contract and
// moves the amount into the transfer payload. A transaction already aimed at
// the contract keeps its payload; any other payload is rebuilt from the
// recipient and amount.
func retargetTokenTransfer(tx models.Transaction, token *models.TokenAccount) (models.Transaction, error) {
	if !strings.EqualFold(tx.Recipient, token.Token.ContractAddress) {
		data, err := erc20.TransferData(tx.Recipient, tx.Amount.BigInt())
		if err != nil {
			return tx, fmt.Errorf("failed to encode token transfer: %w", err)
		}
		tx.Data = data
	}
	tx.Recipient = token.Token.ContractAddress
	tx.Amount = decimal.Zero
	return tx, nil
}

func buildUnsigned(tx models.Transaction) (*types.Transaction, error) {
	if !common.IsHexAddress(tx.Recipient) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, tx.Recipient)
	}
	gasLimit := tx.EffectiveGasLimit()
	if gasLimit == nil || !gasLimit.IsUint64() {
		return nil, fmt.Errorf("transaction has no usable gas limit, prepare it first")
	}
	if tx.Amount.IsNegative() || !tx.Amount.IsInteger() {
		return nil, fmt.Errorf("amount %s is not a whole number of minor units", tx.Amount)
	}

	to := common.HexToAddress(tx.Recipient)
	value := tx.Amount.BigInt()

	switch tx.Type {
	case models.TxTypeFeeMarket:
		if tx.MaxFeePerGas == nil || tx.MaxPriorityFeePerGas == nil {
			return nil, fmt.Errorf("fee-market transaction is missing its fee caps")
		}
		return types.NewTx(&types.DynamicFeeTx{
			ChainID:   new(big.Int).SetUint64(tx.ChainID),
			Nonce:     tx.Nonce,
			GasTipCap: tx.MaxPriorityFeePerGas,
			GasFeeCap: tx.MaxFeePerGas,
			Gas:       gasLimit.Uint64(),
			To:        &to,
			Value:     value,
			Data:      tx.Data,
		}), nil
	case models.TxTypeLegacy:
		if tx.GasPrice == nil {
			return nil, fmt.Errorf("legacy transaction is missing its gas price")
		}
		return types.NewTx(&types.LegacyTx{
			Nonce:    tx.Nonce,
			GasPrice: tx.GasPrice,
			Gas:      gasLimit.Uint64(),
			To:       &to,
			Value:    value,
			Data:     tx.Data,
		}), nil
	}
	return nil, fmt.Errorf("unsupported transaction type %d", tx.Type)
}
