package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/txprep/internal/domain"
	"github.com/trebuchet-org/txprep/internal/domain/models"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

func TestDrafts(t *testing.T) {
	ctx := context.Background()
	tx := models.Transaction{Recipient: recipientAddress, Amount: decimal.NewFromInt(3)}

	t.Run("save", func(t *testing.T) {
		repo := &MockDraftRepository{}
		repo.On("SaveDraft", mock.Anything, "payroll-01", tx).Return(nil)

		require.NoError(t, usecase.NewSaveDraft(repo).Run(ctx, usecase.SaveDraftParams{ID: "payroll-01", Transaction: tx}))
		repo.AssertExpectations(t)
	})

	t.Run("rejects path-like ids", func(t *testing.T) {
		repo := &MockDraftRepository{}
		for _, id := range []string{"", "../escape", "a/b", ".hidden"} {
			assert.Error(t, usecase.NewSaveDraft(repo).Run(ctx, usecase.SaveDraftParams{ID: id, Transaction: tx}), id)
			_, err := usecase.NewLoadDraft(repo).Run(ctx, id)
			assert.Error(t, err, id)
		}
		repo.AssertNotCalled(t, "SaveDraft", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("load", func(t *testing.T) {
		repo := &MockDraftRepository{}
		repo.On("LoadDraft", mock.Anything, "payroll-01").Return(tx, nil)
		repo.On("LoadDraft", mock.Anything, "missing").Return(models.Transaction{}, domain.ErrNotFound)

		got, err := usecase.NewLoadDraft(repo).Run(ctx, "payroll-01")
		require.NoError(t, err)
		assert.True(t, got.Equal(tx))

		_, err = usecase.NewLoadDraft(repo).Run(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		repo := &MockDraftRepository{}
		repo.On("ListDrafts", mock.Anything).Return([]string{"a", "b"}, nil)

		ids, err := usecase.NewLoadDraft(repo).List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, ids)
	})
}
