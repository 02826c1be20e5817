package usecase

import (
	"context"

	"github.com/trebuchet-org/txprep/internal/domain/config"
)

// ShowConfigResult contains the stored defaults and the values in effect
// for this run, which flags and TXPREP_* variables may have overridden.
type ShowConfigResult struct {
	Config           *config.LocalConfig
	ConfigPath       string
	Exists           bool
	EffectiveNetwork string
	EffectiveAccount string
}

// Overridden reports whether the run uses a value other than the stored one
func (r *ShowConfigResult) Overridden(key config.ConfigKey) bool {
	switch key {
	case config.ConfigKeyNetwork:
		return r.EffectiveNetwork != r.Config.Network
	case config.ConfigKeyAccount:
		return r.EffectiveAccount != r.Config.Account
	}
	return false
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	store   LocalConfigRepository
	runtime *config.RuntimeConfig
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(store LocalConfigRepository, runtime *config.RuntimeConfig) *ShowConfig {
	return &ShowConfig{
		store:   store,
		runtime: runtime,
	}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	stored, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &ShowConfigResult{
		Config:           stored,
		ConfigPath:       uc.store.GetPath(),
		Exists:           uc.store.Exists(),
		EffectiveAccount: uc.runtime.DefaultAccount,
	}
	if uc.runtime.Network != nil {
		result.EffectiveNetwork = uc.runtime.Network.Name
	}
	return result, nil
}
