package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/trebuchet-org/txprep/internal/domain/config"
)

// SetConfigParams contains parameters for setting configuration
type SetConfigParams struct {
	Key   string
	Value string
}

// SetConfigResult contains the result of setting configuration
type SetConfigResult struct {
	UpdatedConfig *config.LocalConfig
	ConfigPath    string
	Key           config.ConfigKey
	Value         string
}

// SetConfig is a use case for setting configuration values
type SetConfig struct {
	store    LocalConfigRepository
	chains   ChainResolver
	accounts AccountRepository
}

// NewSetConfig creates a new SetConfig use case
func NewSetConfig(store LocalConfigRepository, chains ChainResolver, accounts AccountRepository) *SetConfig {
	return &SetConfig{
		store:    store,
		chains:   chains,
		accounts: accounts,
	}
}

// Run executes the set config use case. Networks are stored under their
// canonical name so "1" and "Mainnet" both persist as "mainnet".
func (uc *SetConfig) Run(ctx context.Context, params SetConfigParams) (*SetConfigResult, error) {
	key, err := normalizeKey(params.Key)
	if err != nil {
		return nil, err
	}

	value := strings.TrimSpace(params.Value)
	switch key {
	case config.ConfigKeyNetwork:
		chain, err := uc.chains.ResolveChain(ctx, value)
		if err != nil {
			return nil, err
		}
		value = chain.Name
	case config.ConfigKeyAccount:
		if _, err := uc.accounts.GetAccount(ctx, value); err != nil {
			return nil, err
		}
	}

	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Set(key, value)

	if err := uc.store.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &SetConfigResult{
		UpdatedConfig: cfg,
		ConfigPath:    uc.store.GetPath(),
		Key:           key,
		Value:         value,
	}, nil
}

func normalizeKey(raw string) (config.ConfigKey, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if !config.IsValidConfigKey(key) {
		validKeys := lo.Map(config.ValidConfigKeys(), func(k config.ConfigKey, _ int) string { return string(k) })
		return "", fmt.Errorf("unknown config key: %s\nAvailable keys: %s", raw, strings.Join(validKeys, ", "))
	}
	return config.NormalizeConfigKey(key), nil
}
