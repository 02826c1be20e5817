package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/txprep/internal/domain"
	"github.com/trebuchet-org/txprep/internal/domain/config"
)

// RemoveConfigParams names the keys to clear
type RemoveConfigParams struct {
	Keys []string
}

// RemovedValue is one cleared key and what it held. Value is empty when
// the key was not set.
type RemovedValue struct {
	Key   config.ConfigKey
	Value string
}

// RemoveConfigResult contains the result of removing configuration
type RemoveConfigResult struct {
	ConfigPath string
	Removed    []RemovedValue
}

// RemoveConfig is a use case for removing configuration values
type RemoveConfig struct {
	store LocalConfigRepository
}

// NewRemoveConfig creates a new RemoveConfig use case
func NewRemoveConfig(store LocalConfigRepository) *RemoveConfig {
	return &RemoveConfig{
		store: store,
	}
}

// Run clears every key or none: all keys are checked before the file is
// touched.
func (uc *RemoveConfig) Run(ctx context.Context, params RemoveConfigParams) (*RemoveConfigResult, error) {
	if !uc.store.Exists() {
		return nil, fmt.Errorf("%w: no config file at %s", domain.ErrNotFound, uc.store.GetPath())
	}

	keys := make([]config.ConfigKey, 0, len(params.Keys))
	for _, raw := range params.Keys {
		key, err := normalizeKey(raw)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	result := &RemoveConfigResult{ConfigPath: uc.store.GetPath()}
	for _, key := range keys {
		result.Removed = append(result.Removed, RemovedValue{Key: key, Value: cfg.Get(key)})
		cfg.Set(key, "")
	}

	if err := uc.store.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}
	return result, nil
}
