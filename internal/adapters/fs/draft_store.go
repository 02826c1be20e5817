package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/trebuchet-org/txprep/internal/codec"
	"github.com/trebuchet-org/txprep/internal/domain"
	"github.com/trebuchet-org/txprep/internal/domain/config"
	"github.com/trebuchet-org/txprep/internal/domain/models"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

// DraftStoreAdapter implements DraftRepository with one raw JSON file per
// draft under <data_dir>/drafts
type DraftStoreAdapter struct {
	dir string
}

// NewDraftStoreAdapter creates a new DraftStoreAdapter
func NewDraftStoreAdapter(cfg *config.RuntimeConfig) *DraftStoreAdapter {
	return &DraftStoreAdapter{
		dir: filepath.Join(cfg.DataDir, "drafts"),
	}
}

// SaveDraft writes the draft, creating the directory if needed.
func (s *DraftStoreAdapter) SaveDraft(_ context.Context, id string, tx models.Transaction) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create drafts directory: %w", err)
	}

	data, err := codec.Marshal(tx)
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path(id), data, 0644); err != nil {
		return fmt.Errorf("failed to write draft file: %w", err)
	}
	return nil
}

// LoadDraft reads a draft back
func (s *DraftStoreAdapter) LoadDraft(_ context.Context, id string) (models.Transaction, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return models.Transaction{}, fmt.Errorf("%w: draft %s", domain.ErrNotFound, id)
		}
		return models.Transaction{}, fmt.Errorf("failed to read draft file: %w", err)
	}
	return codec.Unmarshal(data)
}

// ListDrafts returns stored draft ids in lexical order
func (s *DraftStoreAdapter) ListDrafts(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read drafts directory: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *DraftStoreAdapter) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Ensure DraftStoreAdapter implements DraftRepository
var _ usecase.DraftRepository = (*DraftStoreAdapter)(nil)
