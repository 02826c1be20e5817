package adapters

import (
	"log/slog"

	"github.com/google/wire"
	"github.com/trebuchet-org/txprep/internal/adapters/blockchain"
	internalconfig "github.com/trebuchet-org/txprep/internal/adapters/config"
	"github.com/trebuchet-org/txprep/internal/adapters/fs"
	"github.com/trebuchet-org/txprep/internal/adapters/interactive"
	"github.com/trebuchet-org/txprep/internal/adapters/progress"
	"github.com/trebuchet-org/txprep/internal/domain/config"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

// ProvideProgressSink picks the spinner for interactive sessions and the
// logger for non-interactive or JSON output
func ProvideProgressSink(cfg *config.RuntimeConfig, log *slog.Logger) usecase.ProgressSink {
	if cfg.NonInteractive || cfg.JSON {
		return progress.NewLogSink(log)
	}
	return progress.NewSpinnerProgressReporter()
}

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewAccountStoreAdapter,
	wire.Bind(new(usecase.AccountRepository), new(*fs.AccountStoreAdapter)),

	fs.NewDraftStoreAdapter,
	wire.Bind(new(usecase.DraftRepository), new(*fs.DraftStoreAdapter)),

	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigRepository), new(*fs.LocalConfigStoreAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.AccountSelector), new(*interactive.SelectorAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	internalconfig.NewChainResolverAdapter,
	wire.Bind(new(usecase.ChainResolver), new(*internalconfig.ChainResolverAdapter)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewNodeAdapter,
	wire.Bind(new(usecase.NetworkNode), new(*blockchain.NodeAdapter)),
	wire.Bind(new(usecase.ChainProber), new(*blockchain.NodeAdapter)),
)

// ProgressSet provides progress reporting
var ProgressSet = wire.NewSet(
	ProvideProgressSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	InteractiveSet,
	ConfigSet,
	BlockchainSet,
	ProgressSet,
)
