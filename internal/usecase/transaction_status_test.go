package usecase_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/txprep/internal/domain"
	"github.com/trebuchet-org/txprep/internal/domain/models"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

func newStatus(account *models.Account) *usecase.GetTransactionStatus {
	accounts := &MockAccountRepository{}
	accounts.On("GetAccount", mock.Anything, account.ID).Return(account, nil)
	chains := &MockChainResolver{}
	chains.On("ResolveChain", mock.Anything, "ethereum").Return(testChain(), nil)
	return usecase.NewGetTransactionStatus(accounts, chains)
}

func TestGetTransactionStatus(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		spendable    int64
		tx           models.Transaction
		wantErrors   domain.FieldErrors
		wantWarnings domain.FieldErrors
		wantAmount   string
		wantFees     string
		wantTotal    string
	}{
		{
			name:       "valid coin transfer priced at the default limit",
			spendable:  100_000,
			tx:         models.Transaction{Recipient: recipientAddress, Amount: decimal.NewFromInt(1_000), GasPrice: big.NewInt(2)},
			wantAmount: "1000",
			wantFees:   "42000",
			wantTotal:  "43000",
		},
		{
			name:       "max coin transfer",
			spendable:  100_000,
			tx:         models.Transaction{Recipient: recipientAddress, UseAllAmount: true, GasPrice: big.NewInt(1)},
			wantAmount: "79000",
			wantFees:   "21000",
			wantTotal:  "100000",
		},
		{
			name:       "coin fees over balance",
			spendable:  10_000,
			tx:         models.Transaction{Recipient: recipientAddress, Amount: decimal.NewFromInt(1), GasPrice: big.NewInt(1)},
			wantErrors: domain.FieldErrors{domain.FieldAmount: domain.ErrNotEnoughBalance},
			wantAmount: "1",
			wantFees:   "21000",
			wantTotal:  "21001",
		},
		{
			name:       "token transfer without gas money",
			spendable:  1_000,
			tx:         models.Transaction{Recipient: recipientAddress, SubAccountID: usdcSubAccount, Amount: decimal.NewFromInt(10), GasPrice: big.NewInt(1)},
			wantErrors: domain.FieldErrors{domain.FieldFees: domain.ErrNotEnoughGas},
			wantAmount: "10",
			wantFees:   "65000",
			wantTotal:  "10",
		},
		{
			name:       "max token transfer",
			spendable:  1_000_000,
			tx:         models.Transaction{Recipient: recipientAddress, SubAccountID: usdcSubAccount, UseAllAmount: true, GasPrice: big.NewInt(1), GasLimit: big.NewInt(60_000)},
			wantAmount: "50000000",
			wantFees:   "60000",
			wantTotal:  "50000000",
		},
		{
			name:         "lowercase recipient warns",
			spendable:    100_000,
			tx:           models.Transaction{Recipient: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", Amount: decimal.NewFromInt(1)},
			wantWarnings: domain.FieldErrors{domain.FieldRecipient: domain.WarnAddressNotChecksummed},
			wantAmount:   "1",
			wantFees:     "0",
			wantTotal:    "1",
		},
		{
			name:       "empty draft",
			spendable:  100_000,
			tx:         models.Transaction{},
			wantErrors: domain.FieldErrors{domain.FieldRecipient: domain.ErrRecipientRequired, domain.FieldAmount: domain.ErrAmountRequired},
			wantAmount: "0",
			wantFees:   "0",
			wantTotal:  "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := newStatus(testAccount(tt.spendable)).Run(ctx, usecase.TransactionStatusParams{
				AccountID:   "acc-1",
				Transaction: tt.tx,
			})
			require.NoError(t, err)

			if tt.wantErrors == nil {
				assert.True(t, status.Errors.Empty(), "unexpected errors: %s", status.Errors)
			} else {
				assert.Equal(t, tt.wantErrors, status.Errors)
			}
			if tt.wantWarnings == nil {
				assert.True(t, status.Warnings.Empty(), "unexpected warnings: %s", status.Warnings)
			} else {
				assert.Equal(t, tt.wantWarnings, status.Warnings)
			}
			assert.Equal(t, tt.wantAmount, status.Amount.String())
			assert.Equal(t, tt.wantFees, status.EstimatedFees.String())
			assert.Equal(t, tt.wantTotal, status.TotalSpent.String())
			assert.Equal(t, tt.wantErrors == nil, status.Valid())
		})
	}
}

func TestGetTransactionStatus_UnknownSubAccount(t *testing.T) {
	_, err := newStatus(testAccount(1)).Run(context.Background(), usecase.TransactionStatusParams{
		AccountID:   "acc-1",
		Transaction: models.Transaction{SubAccountID: "nope"},
	})
	assert.ErrorIs(t, err, domain.ErrSubAccountNotFound)
}
