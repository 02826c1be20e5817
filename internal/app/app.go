package app

import (
	"log/slog"

	"github.com/trebuchet-org/txprep/internal/domain/config"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Progress usecase.ProgressSink

	// Use cases
	ResolveAccount       *usecase.ResolveAccount
	PrepareTransaction   *usecase.PrepareTransaction
	PrepareForSign       *usecase.PrepareForSign
	GetTransactionStatus *usecase.GetTransactionStatus
	EstimateMaxSpendable *usecase.EstimateMaxSpendable
	SaveDraft            *usecase.SaveDraft
	LoadDraft            *usecase.LoadDraft
	ListChains           *usecase.ListChains
	ShowConfig           *usecase.ShowConfig
	SetConfig            *usecase.SetConfig
	RemoveConfig         *usecase.RemoveConfig

	// Adapters
	Chains usecase.ChainResolver
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	progress usecase.ProgressSink,
	resolveAccount *usecase.ResolveAccount,
	prepareTransaction *usecase.PrepareTransaction,
	prepareForSign *usecase.PrepareForSign,
	getTransactionStatus *usecase.GetTransactionStatus,
	estimateMaxSpendable *usecase.EstimateMaxSpendable,
	saveDraft *usecase.SaveDraft,
	loadDraft *usecase.LoadDraft,
	listChains *usecase.ListChains,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
	chains usecase.ChainResolver,
) (*App, error) {
	return &App{
		Config:               cfg,
		Log:                  log,
		Progress:             progress,
		ResolveAccount:       resolveAccount,
		PrepareTransaction:   prepareTransaction,
		PrepareForSign:       prepareForSign,
		GetTransactionStatus: getTransactionStatus,
		EstimateMaxSpendable: estimateMaxSpendable,
		SaveDraft:            saveDraft,
		LoadDraft:            loadDraft,
		ListChains:           listChains,
		ShowConfig:           showConfig,
		SetConfig:            setConfig,
		RemoveConfig:         removeConfig,
		Chains:               chains,
	}, nil
}
