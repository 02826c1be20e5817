package usecase

import (
	"context"
	"fmt"
	"regexp"

	"github.com/trebuchet-org/txprep/internal/domain/models"
)

var draftIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// SaveDraftParams contains parameters for saving a draft
type SaveDraftParams struct {
	ID          string
	Transaction models.Transaction
}

// SaveDraft stores a draft so a later session can resume it
type SaveDraft struct {
	repo DraftRepository
}

// NewSaveDraft creates a new SaveDraft use case
func NewSaveDraft(repo DraftRepository) *SaveDraft {
	return &SaveDraft{repo: repo}
}

// Run executes the use case
func (uc *SaveDraft) Run(ctx context.Context, params SaveDraftParams) error {
	if !draftIDPattern.MatchString(params.ID) {
		return fmt.Errorf("invalid draft id %q", params.ID)
	}
	if err := uc.repo.SaveDraft(ctx, params.ID, params.Transaction); err != nil {
		return fmt.Errorf("failed to save draft %s: %w", params.ID, err)
	}
	return nil
}

// LoadDraft reads stored drafts back
type LoadDraft struct {
	repo DraftRepository
}

// NewLoadDraft creates a new LoadDraft use case
func NewLoadDraft(repo DraftRepository) *LoadDraft {
	return &LoadDraft{repo: repo}
}

// Run loads a single draft
func (uc *LoadDraft) Run(ctx context.Context, id string) (models.Transaction, error) {
	if !draftIDPattern.MatchString(id) {
		return models.Transaction{}, fmt.Errorf("invalid draft id %q", id)
	}
	tx, err := uc.repo.LoadDraft(ctx, id)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to load draft %s: %w", id, err)
	}
	return tx, nil
}

// List returns the ids of all stored drafts
func (uc *LoadDraft) List(ctx context.Context) ([]string, error) {
	return uc.repo.ListDrafts(ctx)
}
