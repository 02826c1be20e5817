package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/txprep/internal/domain/config"
)

const (
	// DefaultDataDir is the data directory name under the project root
	DefaultDataDir = ".txprep"
	// ChainsFileName is the chain registry looked up in the project root
	ChainsFileName = "chains.toml"
	// AccountsFileName is the account store looked up in the data directory
	AccountsFileName = "accounts.yaml"
	// LocalConfigFileName holds per-project defaults under the default data directory
	LocalConfigFileName = "config.local.json"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        resolvePath(projectRoot, v.GetString("data_dir"), DefaultDataDir),
		DefaultAccount: v.GetString("account"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
	}
	cfg.ChainsFile = resolvePath(projectRoot, v.GetString("chains_file"), ChainsFileName)
	cfg.AccountsFile = resolvePath(cfg.DataDir, v.GetString("accounts_file"), AccountsFileName)

	chains, err := LoadChains(projectRoot, cfg.ChainsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load chains: %w", err)
	}
	cfg.Chains = chains

	// Resolve network if specified
	if networkName := v.GetString("network"); networkName != "" {
		network, err := NewChainRegistry(chains).Resolve(networkName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
		}
		cfg.Network = network
	}

	return cfg, nil
}

func resolvePath(base, value, fallback string) string {
	if value == "" {
		value = fallback
	}
	if filepath.IsAbs(value) {
		return value
	}
	return filepath.Join(base, value)
}

// FindProjectRoot walks up from the current directory to the first directory
// holding a chains.toml or a data directory. Without one the current
// directory is the root.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		for _, marker := range []string{ChainsFileName, DefaultDataDir} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DefaultDataDir))

	// Set up environment variables
	v.SetEnvPrefix("TXPREP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "30s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})

	return v
}
