//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/txprep/internal/adapters"
	"github.com/trebuchet-org/txprep/internal/config"
	"github.com/trebuchet-org/txprep/internal/logging"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewResolveAccount,
		usecase.NewPrepareTransaction,
		usecase.NewPrepareForSign,
		usecase.NewGetTransactionStatus,
		usecase.NewEstimateMaxSpendable,
		usecase.NewSaveDraft,
		usecase.NewLoadDraft,
		usecase.NewListChains,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,

		// App
		NewApp,
	)
	return nil, nil
}
