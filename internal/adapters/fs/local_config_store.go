package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	internalconfig "github.com/trebuchet-org/txprep/internal/config"
	"github.com/trebuchet-org/txprep/internal/domain/config"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

// LocalConfigStoreAdapter keeps the project defaults in
// <project>/.txprep/config.local.json, the file viper reads at startup.
// It always lives under the project root, not --data-dir, so every data
// directory of a project shares the same defaults.
type LocalConfigStoreAdapter struct {
	path string
}

// NewLocalConfigStoreAdapter creates a new LocalConfigStoreAdapter
func NewLocalConfigStoreAdapter(cfg *config.RuntimeConfig) *LocalConfigStoreAdapter {
	return &LocalConfigStoreAdapter{
		path: filepath.Join(cfg.ProjectRoot, internalconfig.DefaultDataDir, internalconfig.LocalConfigFileName),
	}
}

// Exists reports whether the file is present
func (s *LocalConfigStoreAdapter) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the file. A missing file yields the empty defaults.
func (s *LocalConfigStoreAdapter) Load(_ context.Context) (*config.LocalConfig, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return config.DefaultLocalConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	cfg := config.DefaultLocalConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(s.path), err)
	}
	return cfg, nil
}

// Save replaces the file through a temp file and rename so a crash never
// leaves viper a truncated config.
func (s *LocalConfigStoreAdapter) Save(_ context.Context, cfg *config.LocalConfig) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config.local-*.json")
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

// GetPath returns the config file location
func (s *LocalConfigStoreAdapter) GetPath() string {
	return s.path
}

var _ usecase.LocalConfigRepository = (*LocalConfigStoreAdapter)(nil)
