package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/trebuchet-org/txprep/internal/domain"
	"github.com/trebuchet-org/txprep/internal/domain/config"
	"github.com/trebuchet-org/txprep/internal/domain/models"
)

// ChainsTOML represents the raw chains.toml structure
type ChainsTOML struct {
	Chains map[string]ChainTOML `toml:"chains"`
}

// ChainTOML is one [chains.<name>] table. Zero values leave the built-in
// default for that chain in place.
type ChainTOML struct {
	ChainID          uint64       `toml:"chain_id"`
	Family           string       `toml:"family"`
	RPCURL           string       `toml:"rpc_url"`
	Explorer         string       `toml:"explorer"`
	NativeUnit       *models.Unit `toml:"native_unit"`
	DefaultGasPrice  string       `toml:"default_gas_price"`
	FlaggedAddresses []string     `toml:"flagged_addresses"`
	GasBufferPercent *uint32      `toml:"gas_buffer_percent"`
}

var ether = models.Unit{Name: "ether", Code: "ETH", Magnitude: 18}

// defaultChains are available without any chains.toml. Their RPC URLs come
// from <NAME>_RPC_URL in the environment.
var defaultChains = []config.Chain{
	{Name: "mainnet", ChainID: 1, Explorer: "https://etherscan.io", NativeUnit: ether},
	{Name: "sepolia", ChainID: 11155111, Explorer: "https://sepolia.etherscan.io", NativeUnit: ether},
	{Name: "optimism", ChainID: 10, Explorer: "https://optimistic.etherscan.io", NativeUnit: ether},
	{Name: "arbitrum", ChainID: 42161, Explorer: "https://arbiscan.io", NativeUnit: ether},
	{Name: "base", ChainID: 8453, Explorer: "https://basescan.org", NativeUnit: ether},
	{Name: "polygon", ChainID: 137, Explorer: "https://polygonscan.com", NativeUnit: models.Unit{Name: "pol", Code: "POL", Magnitude: 18}},
	{Name: "bsc", ChainID: 56, Explorer: "https://bscscan.com", NativeUnit: models.Unit{Name: "bnb", Code: "BNB", Magnitude: 18}},
	{Name: "avalanche", ChainID: 43114, Explorer: "https://snowtrace.io", NativeUnit: models.Unit{Name: "avax", Code: "AVAX", Magnitude: 18}},
	{Name: "celo", ChainID: 42220, Explorer: "https://celoscan.io", NativeUnit: models.Unit{Name: "celo", Code: "CELO", Magnitude: 18}},
}

// GenerateEnvVarName is the variable holding a chain's RPC URL:
// uppercased, dashes and dots to underscores, plus _RPC_URL.
func GenerateEnvVarName(chainName string) string {
	name := strings.NewReplacer("-", "_", ".", "_").Replace(strings.ToUpper(chainName))
	return name + "_RPC_URL"
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// loadEnvFiles loads .env.local and .env from dir. godotenv never overwrites
// a set variable, so the process environment wins over .env.local, which
// wins over .env.
func loadEnvFiles(dir string) {
	for _, name := range []string{".env.local", ".env"} {
		envFile := filepath.Join(dir, name)
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
		}
	}
}

// LoadChains builds the chain registry from the built-in defaults overlaid
// with chainsFile. A missing chainsFile is not an error.
func LoadChains(projectRoot, chainsFile string) (*config.ChainsConfig, error) {
	loadEnvFiles(projectRoot)

	cfg := &config.ChainsConfig{Chains: make(map[string]*config.Chain)}
	for _, c := range defaultChains {
		chain := c
		chain.Family = models.FamilyEVM
		chain.RPCURL = os.Getenv(GenerateEnvVarName(chain.Name))
		cfg.Chains[chain.Name] = &chain
	}

	var raw ChainsTOML
	if _, err := toml.DecodeFile(chainsFile, &raw); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(chainsFile), err)
		}
	}

	for name, entry := range raw.Chains {
		name = strings.ToLower(name)
		chain, ok := cfg.Chains[name]
		if !ok {
			chain = &config.Chain{Name: name, Family: models.FamilyEVM, NativeUnit: ether}
			cfg.Chains[name] = chain
		}
		if err := applyChainTOML(chain, entry); err != nil {
			return nil, fmt.Errorf("chain %s: %w", name, err)
		}
	}

	for name, chain := range cfg.Chains {
		if err := validate.Struct(chain); err != nil {
			return nil, fmt.Errorf("invalid configuration for chain %s: %w", name, err)
		}
	}

	return cfg, nil
}

func applyChainTOML(chain *config.Chain, entry ChainTOML) error {
	if entry.ChainID != 0 {
		chain.ChainID = entry.ChainID
	}
	if entry.Family != "" {
		chain.Family = models.Family(entry.Family)
	}
	if entry.RPCURL != "" {
		chain.RPCURL = os.ExpandEnv(entry.RPCURL)
	}
	if entry.Explorer != "" {
		chain.Explorer = os.ExpandEnv(entry.Explorer)
	}
	if entry.NativeUnit != nil {
		chain.NativeUnit = *entry.NativeUnit
	}
	if entry.DefaultGasPrice != "" {
		price, ok := new(big.Int).SetString(entry.DefaultGasPrice, 10)
		if !ok || price.Sign() < 0 {
			return fmt.Errorf("%w: default_gas_price %q", domain.ErrInvalidFormat, entry.DefaultGasPrice)
		}
		chain.DefaultGasPrice = price
	}
	if len(entry.FlaggedAddresses) > 0 {
		chain.FlaggedAddresses = entry.FlaggedAddresses
	}
	if entry.GasBufferPercent != nil {
		chain.GasBufferPercent = *entry.GasBufferPercent
	}
	return nil
}

// ChainRegistry resolves chain names and numeric ids against a loaded
// ChainsConfig
type ChainRegistry struct {
	chains *config.ChainsConfig
}

// NewChainRegistry creates a registry over cfg
func NewChainRegistry(cfg *config.ChainsConfig) *ChainRegistry {
	return &ChainRegistry{chains: cfg}
}

// Names returns the configured chain names in sorted order
func (r *ChainRegistry) Names() []string {
	names := lo.Keys(r.chains.Chains)
	sort.Strings(names)
	return names
}

// Resolve looks a chain up by name, case-insensitively, or by decimal chain
// id. Unknown names come back as domain.UnknownChainErr with close matches.
func (r *ChainRegistry) Resolve(name string) (*config.Chain, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if chain, ok := r.chains.Chains[key]; ok {
		return chain, nil
	}

	if id, ok := new(big.Int).SetString(key, 10); ok && id.IsUint64() {
		if chain, ok := r.chains.ByChainID(id.Uint64()); ok {
			return chain, nil
		}
	}

	return nil, domain.UnknownChainErr{Name: name, Suggestions: r.suggest(key)}
}

// suggest returns up to three configured names fuzzy-matching key
func (r *ChainRegistry) suggest(key string) []string {
	if key == "" {
		return nil
	}
	matches := fuzzy.Find(key, r.Names())
	suggestions := lo.Map(matches, func(m fuzzy.Match, _ int) string { return m.Str })
	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return suggestions
}
