package usecase

import (
	"context"
	"math/big"

	"github.com/trebuchet-org/txprep/internal/domain/config"
	"github.com/trebuchet-org/txprep/internal/domain/models"
)

// NetworkNode is the network boundary. Implementations own retries and
// timeouts; errors come back as *domain.NetworkError and are passed through
// untouched.
type NetworkNode interface {
	GetNonce(ctx context.Context, chain *config.Chain, address string) (uint64, error)
	GetFeeData(ctx context.Context, chain *config.Chain) (models.FeeData, error)
	GetGasEstimate(ctx context.Context, chain *config.Chain, account *models.Account, tx models.Transaction) (*big.Int, error)
}

// ChainProber asks an endpoint which chain it serves
type ChainProber interface {
	ChainID(ctx context.Context, chain *config.Chain) (uint64, error)
}

// AccountRepository is the read-only account store
type AccountRepository interface {
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]*models.Account, error)
}

// ChainResolver handles chain configuration resolution
type ChainResolver interface {
	GetChains(ctx context.Context) []string
	ResolveChain(ctx context.Context, name string) (*config.Chain, error)
}

// DraftRepository persists drafts in their raw form
type DraftRepository interface {
	SaveDraft(ctx context.Context, id string, tx models.Transaction) error
	LoadDraft(ctx context.Context, id string) (models.Transaction, error)
	ListDrafts(ctx context.Context) ([]string, error)
}

// LocalConfigRepository handles the per-project defaults file
type LocalConfigRepository interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, config *config.LocalConfig) error
	GetPath() string
}

// AccountSelector handles interactive selection of accounts
type AccountSelector interface {
	SelectAccount(ctx context.Context, accounts []*models.Account, prompt string) (*models.Account, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
