package usecase_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/txprep/internal/domain"
	"github.com/trebuchet-org/txprep/internal/domain/models"
	"github.com/trebuchet-org/txprep/internal/erc20"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

type prepareFixture struct {
	accounts *MockAccountRepository
	chains   *MockChainResolver
	node     *MockNetworkNode
	progress *MockProgressSink
	uc       *usecase.PrepareTransaction
}

func newPrepareFixture(account *models.Account) *prepareFixture {
	f := &prepareFixture{
		accounts: &MockAccountRepository{},
		chains:   &MockChainResolver{},
		node:     &MockNetworkNode{},
		progress: &MockProgressSink{},
	}
	chain := testChain()
	chain.GasBufferPercent = 10
	f.accounts.On("GetAccount", mock.Anything, account.ID).Return(account, nil)
	f.chains.On("ResolveChain", mock.Anything, "ethereum").Return(chain, nil)
	f.uc = usecase.NewPrepareTransaction(f.accounts, f.chains, f.node, f.progress, discardLogger())
	return f
}

func TestPrepareTransaction_CoinPath(t *testing.T) {
	ctx := context.Background()

	t.Run("fee market snapshot upgrades to type 2", func(t *testing.T) {
		f := newPrepareFixture(testAccount(1_000_000_000_000_000_000))
		f.node.On("GetFeeData", mock.Anything, mock.Anything).Return(models.FeeData{
			GasPrice:             big.NewInt(40),
			MaxFeePerGas:         big.NewInt(100),
			MaxPriorityFeePerGas: big.NewInt(2),
		}, nil)
		f.node.On("GetGasEstimate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(big.NewInt(21_000), nil)

		draft := models.Transaction{
			Recipient: recipientAddress,
			Amount:    decimal.NewFromInt(1_000),
			GasPrice:  big.NewInt(7),
		}

		result, err := f.uc.Run(ctx, usecase.PrepareParams{AccountID: "acc-1", Draft: draft})
		require.NoError(t, err)

		assert.Equal(t, usecase.StatePrepared, result.State)
		assert.Equal(t, []usecase.PrepareState{
			usecase.StateDraft,
			usecase.StateFeeDataFetched,
			usecase.StateClassified,
			usecase.StateCoinPath,
			usecase.StateValidated,
			usecase.StateGasEstimated,
			usecase.StatePrepared,
		}, result.Trail)

		tx := result.Transaction
		assert.Equal(t, models.TxTypeFeeMarket, tx.Type)
		assert.Nil(t, tx.GasPrice)
		assert.Equal(t, int64(100), tx.MaxFeePerGas.Int64())
		assert.Equal(t, int64(2), tx.MaxPriorityFeePerGas.Int64())
		assert.Equal(t, int64(21_000), tx.GasLimit.Int64())
		assert.Equal(t, uint64(1), tx.ChainID)
		assert.Equal(t, models.FamilyEVM, tx.Family)
		assert.Equal(t, models.ModeSend, tx.Mode)
		assert.Equal(t, "2100000", result.Totals.EstimatedFees.String())
		assert.Equal(t, "2101000", result.Totals.TotalSpent.String())
		assert.True(t, result.Errors.Empty())

		// caller's draft keeps its legacy field
		assert.Equal(t, int64(7), draft.GasPrice.Int64())
		assert.Len(t, f.progress.events, 6)
	})

	t.Run("legacy snapshot downgrades to type 0", func(t *testing.T) {
		f := newPrepareFixture(testAccount(1_000_000_000))
		f.node.On("GetFeeData", mock.Anything, mock.Anything).Return(models.FeeData{GasPrice: big.NewInt(5)}, nil)
		f.node.On("GetGasEstimate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(big.NewInt(21_000), nil)

		draft := models.Transaction{
			Recipient:            recipientAddress,
			Amount:               decimal.NewFromInt(1_000),
			MaxFeePerGas:         big.NewInt(9),
			MaxPriorityFeePerGas: big.NewInt(1),
			Type:                 models.TxTypeFeeMarket,
		}

		result, err := f.uc.Run(ctx, usecase.PrepareParams{AccountID: "acc-1", Draft: draft})
		require.NoError(t, err)

		tx := result.Transaction
		assert.Equal(t, models.TxTypeLegacy, tx.Type)
		assert.Equal(t, int64(5), tx.GasPrice.Int64())
		assert.Nil(t, tx.MaxFeePerGas)
		assert.Nil(t, tx.MaxPriorityFeePerGas)
	})

	t.Run("use all amount spends the whole balance", func(t *testing.T) {
		// 1.00000000 at 8 decimals with a 0.00010000 fee
		account := testAccount(100_000_000)
		account.Unit = models.Unit{Name: "coin", Code: "CN", Magnitude: 8}
		f := newPrepareFixture(account)
		f.node.On("GetFeeData", mock.Anything, mock.Anything).Return(models.FeeData{GasPrice: big.NewInt(1)}, nil)
		f.node.On("GetGasEstimate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(big.NewInt(10_000), nil)

		draft := models.Transaction{
			Recipient:    recipientAddress,
			UseAllAmount: true,
			GasLimit:     big.NewInt(10_000),
		}

		result, err := f.uc.Run(ctx, usecase.PrepareParams{AccountID: "acc-1", Draft: draft})
		require.NoError(t, err)

		assert.Equal(t, usecase.StatePrepared, result.State)
		assert.Equal(t, "99990000", result.Transaction.Amount.String())
		assert.Equal(t, "10000", result.Totals.EstimatedFees.String())
		assert.Equal(t, "100000000", result.Totals.TotalSpent.String())
		assert.True(t, result.Errors.Empty())
	})

	t.Run("use all amount follows a higher estimate", func(t *testing.T) {
		f := newPrepareFixture(testAccount(100_000))
		f.node.On("GetFeeData", mock.Anything, mock.Anything).Return(models.FeeData{GasPrice: big.NewInt(1)}, nil)
		f.node.On("GetGasEstimate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(big.NewInt(30_000), nil)

		draft := models.Transaction{Recipient: recipientAddress, UseAllAmount: true}
		result, err := f.uc.Run(ctx, usecase.PrepareParams{AccountID: "acc-1", Draft: draft})
		require.NoError(t, err)

		assert.Equal(t, "70000", result.Transaction.Amount.String())
		assert.Equal(t, "100000", result.Totals.TotalSpent.String())
	})

	t.Run("amount over balance returns the draft unchanged", func(t *testing.T) {
		f := newPrepareFixture(testAccount(1_000))
		f.node.On("GetFeeData", mock.Anything, mock.Anything).Return(models.FeeData{
			MaxFeePerGas:         big.NewInt(100),
			MaxPriorityFeePerGas: big.NewInt(2),
		}, nil)

		draft := models.Transaction{
			Family:    models.FamilyEVM,
			Mode:      models.ModeSend,
			Recipient: recipientAddress,
			Amount:    decimal.NewFromInt(5_000),
			GasPrice:  big.NewInt(3),
			GasLimit:  big.NewInt(21_000),
			Data:      []byte{0x01},
		}
		snapshot := draft.Clone()

		result, err := f.uc.Run(ctx, usecase.PrepareParams{AccountID: "acc-1", Draft: draft})
		require.NoError(t, err)

		assert.Equal(t, usecase.StateUnchanged, result.State)
		assert.True(t, result.Transaction.Equal(snapshot), "prepared %+v", result.Transaction)
		assert.Equal(t, domain.ErrNotEnoughBalance, result.Errors[domain.FieldAmount])
		f.node.AssertNotCalled(t, "GetGasEstimate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("self send is rejected", func(t *testing.T) {
		f := newPrepareFixture(testAccount(1_000_000))
		f.node.On("GetFeeData", mock.Anything, mock.Anything).Return(models.FeeData{GasPrice: big.NewInt(1)}, nil)

		draft := models.Transaction{Recipient: senderAddress, Amount: decimal.NewFromInt(1)}
		result, err := f.uc.Run(ctx, usecase.PrepareParams{AccountID: "acc-1", Draft: draft})
		require.NoError(t, err)

		assert.Equal(t, usecase.StateUnchanged, result.State)
		assert.Equal(t, domain.ErrRecipientIsSenderAddress, result.Errors[domain.FieldRecipient])
	})

	t.Run("missing amount and recipient are both reported", func(t *testing.T) {
		f := newPrepareFixture(testAccount(1_000_000))
		f.node.On("GetFeeData", mock.Anything, mock.Anything).Return(models.FeeData{GasPrice: big.NewInt(1)}, nil)

		result, err := f.uc.Run(ctx, usecase.PrepareParams{AccountID: "acc-1", Draft: models.Transaction{}})
		require.NoError(t, err)

		assert.Equal(t, domain.ErrRecipientRequired, result.Errors[domain.FieldRecipient])
		assert.Equal(t, domain.ErrAmountRequired, result.Errors[domain.FieldAmount])
	})

	t.Run("lowercase recipient prepares with a warning", func(t *testing.T) {
		f := newPrepareFixture(testAccount(1_000_000))
		f.node.On("GetFeeData", mock.Anything, mock.Anything).Return(models.FeeData{GasPrice: big.NewInt(1)}, nil)
		f.node.On("GetGasEstimate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(big.NewInt(21_000), nil)

		draft := models.Transaction{Recipient: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", Amount: decimal.NewFromInt(1)}
		result, err := f.uc.Run(ctx, usecase.PrepareParams{AccountID: "acc-1", Draft: draft})
		require.NoError(t, err)

		assert.Equal(t, usecase.StatePrepared, result.State)
		assert.Equal(t, domain.WarnAddressNotChecksummed, result.Warnings[domain.FieldRecipient])
	})
}

func TestPrepareTransaction_TokenPath(t *testing.T) {
	ctx := context.Background()

	t.Run("use all amount takes the token balance", func(t *testing.T) {
		account := testAccount(1_000_000_000_000)
		f := newPrepareFixture(account)
		f.node.On("GetFeeData", mock.Anything, mock.Anything).Return(models.FeeData{
			MaxFeePerGas:         big.NewInt(100),
			MaxPriorityFeePerGas: big.NewInt(2),
		}, nil)

		payload, err := erc20.TransferData(recipientAddress, big.NewInt(50_000_000))
		require.NoError(t, err)

		f.node.On("GetGasEstimate", mock.Anything, mock.Anything, account, mock.MatchedBy(func(tx models.Transaction) bool {
			return tx.Recipient == usdcContract && tx.Amount.IsZero() && string(tx.Data) == string(payload)
		})).Return(big.NewInt(50_000), nil)

		draft := models.Transaction{
			Recipient:    recipientAddress,
			SubAccountID: usdcSubAccount,
			UseAllAmount: true,
		}

		result, err := f.uc.Run(ctx, usecase.PrepareParams{AccountID: "acc-1", Draft: draft})
		require.NoError(t, err)

		assert.Equal(t, usecase.StatePrepared, result.State)
		assert.Contains(t, result.Trail, usecase.StateTokenPath)
		assert.NotContains(t, result.Trail, usecase.StateCoinPath)

		tx := result.Transaction
		assert.Equal(t, "50000000", tx.Amount.String())
		assert.Equal(t, recipientAddress, tx.Recipient)
		assert.Equal(t, payload, tx.Data)
		assert.Equal(t, int64(55_000), tx.GasLimit.Int64())
		assert.Equal(t, "50000000", result.Totals.TotalSpent.String())

		// the base account balance plays no part in the amount
		assert.Equal(t, "1000000000000", account.SpendableBalance.String())
		f.node.AssertExpectations(t)
	})

	t.Run("padded recipient is trimmed before encoding", func(t *testing.T) {
		account := testAccount(1_000_000_000_000)
		f := newPrepareFixture(account)
		f.node.On("GetFeeData", mock.Anything, mock.Anything).Return(models.FeeData{
			MaxFeePerGas:         big.NewInt(100),
			MaxPriorityFeePerGas: big.NewInt(2),
		}, nil)
		f.node.On("GetGasEstimate", mock.Anything, mock.Anything, account, mock.Anything).Return(big.NewInt(50_000), nil)

		draft := models.Transaction{
			Recipient:    "  " + recipientAddress + " ",
			SubAccountID: usdcSubAccount,
			Amount:       decimal.NewFromInt(1_500_000),
		}

		result, err := f.uc.Run(ctx, usecase.PrepareParams{AccountID: "acc-1", Draft: draft})
		require.NoError(t, err)

		assert.Equal(t, usecase.StatePrepared, result.State)
		assert.Equal(t, recipientAddress, result.Transaction.Recipient)
		transfer, err := erc20.DecodeTransfer(result.Transaction.Data)
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress(recipientAddress), transfer.To)
		assert.Equal(t, int64(1_500_000), transfer.Amount.Int64())
	})

	t.Run("token amount ignores base asset fees", func(t *testing.T) {
		// 50 tokens at 6 decimals
		f := newPrepareFixture(testAccount(1))
		f.node.On("GetFeeData", mock.Anything, mock.Anything).Return(models.FeeData{GasPrice: big.NewInt(1_000)}, nil)
		f.node.On("GetGasEstimate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(big.NewInt(60_000), nil)

		draft := models.Transaction{
			Recipient:    usdcContract,
			SubAccountID: usdcSubAccount,
			Amount:       decimal.NewFromInt(50_000_000),
		}

		result, err := f.uc.Run(ctx, usecase.PrepareParams{AccountID: "acc-1", Draft: draft})
		require.NoError(t, err)
		assert.Equal(t, usecase.StatePrepared, result.State)
		assert.True(t, result.Errors.Empty())
	})

	t.Run("token amount over token balance", func(t *testing.T) {
		f := newPrepareFixture(testAccount(1_000_000))
		f.node.On("GetFeeData", mock.Anything, mock.Anything).Return(models.FeeData{GasPrice: big.NewInt(1)}, nil)

		draft := models.Transaction{
			Recipient:    recipientAddress,
			SubAccountID: usdcSubAccount,
			Amount:       decimal.NewFromInt(50_000_001),
		}

		result, err := f.uc.Run(ctx, usecase.PrepareParams{AccountID: "acc-1", Draft: draft})
		require.NoError(t, err)
		assert.Equal(t, usecase.StateUnchanged, result.State)
		assert.True(t, result.Transaction.Equal(draft))
		assert.Nil(t, result.Transaction.Data)
	})

	t.Run("unknown sub-account", func(t *testing.T) {
		f := newPrepareFixture(testAccount(1_000_000))
		draft := models.Transaction{Recipient: recipientAddress, SubAccountID: "missing", Amount: decimal.NewFromInt(1)}

		_, err := f.uc.Run(ctx, usecase.PrepareParams{AccountID: "acc-1", Draft: draft})
		assert.ErrorIs(t, err, domain.ErrSubAccountNotFound)
	})
}

func TestPrepareTransaction_Errors(t *testing.T) {
	ctx := context.Background()
	draft := models.Transaction{Recipient: recipientAddress, Amount: decimal.NewFromInt(1)}

	t.Run("fee data failure propagates unchanged", func(t *testing.T) {
		f := newPrepareFixture(testAccount(1_000_000))
		netErr := &domain.NetworkError{Op: "fee data", Chain: "ethereum", Err: context.DeadlineExceeded}
		f.node.On("GetFeeData", mock.Anything, mock.Anything).Return(models.FeeData{}, netErr)

		result, err := f.uc.Run(ctx, usecase.PrepareParams{AccountID: "acc-1", Draft: draft})
		assert.Nil(t, result)
		assert.Same(t, netErr, err)
	})

	t.Run("gas estimate failure propagates unchanged", func(t *testing.T) {
		f := newPrepareFixture(testAccount(1_000_000))
		netErr := &domain.NetworkError{Op: "estimate gas", Chain: "ethereum", Err: context.Canceled}
		f.node.On("GetFeeData", mock.Anything, mock.Anything).Return(models.FeeData{GasPrice: big.NewInt(1)}, nil)
		f.node.On("GetGasEstimate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, netErr)

		_, err := f.uc.Run(ctx, usecase.PrepareParams{AccountID: "acc-1", Draft: draft})
		var target *domain.NetworkError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "estimate gas", target.Op)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("unknown account", func(t *testing.T) {
		accounts := &MockAccountRepository{}
		accounts.On("GetAccount", mock.Anything, "nope").Return(nil, domain.ErrAccountNotFound)
		uc := usecase.NewPrepareTransaction(accounts, &MockChainResolver{}, &MockNetworkNode{}, usecase.NopProgress{}, discardLogger())

		_, err := uc.Run(ctx, usecase.PrepareParams{AccountID: "nope", Draft: draft})
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}
