package fs

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/txprep/internal/domain"
	"github.com/trebuchet-org/txprep/internal/domain/config"
	"github.com/trebuchet-org/txprep/internal/domain/models"
	"github.com/trebuchet-org/txprep/internal/usecase"
	"gopkg.in/yaml.v3"
)

// accountsFile is the on-disk layout of accounts.yaml
type accountsFile struct {
	Accounts []accountEntry `yaml:"accounts"`
}

type accountEntry struct {
	ID        string       `yaml:"id"`
	Name      string       `yaml:"name"`
	Chain     string       `yaml:"chain"`
	Address   string       `yaml:"address"`
	Balance   string       `yaml:"balance"`
	Spendable string       `yaml:"spendable,omitempty"`
	Unit      *models.Unit `yaml:"unit,omitempty"`
	Tokens    []tokenEntry `yaml:"tokens,omitempty"`
}

type tokenEntry struct {
	ID        string `yaml:"id"`
	Contract  string `yaml:"contract"`
	Ticker    string `yaml:"ticker"`
	Name      string `yaml:"name"`
	Decimals  int32  `yaml:"decimals"`
	Balance   string `yaml:"balance"`
	Spendable string `yaml:"spendable,omitempty"`
}

// AccountStoreAdapter implements AccountRepository on top of accounts.yaml.
// The file is re-read on every call so edits show up without a restart.
type AccountStoreAdapter struct {
	path   string
	chains *config.ChainsConfig
}

// NewAccountStoreAdapter creates a new AccountStoreAdapter
func NewAccountStoreAdapter(cfg *config.RuntimeConfig) *AccountStoreAdapter {
	return &AccountStoreAdapter{
		path:   cfg.AccountsFile,
		chains: cfg.Chains,
	}
}

// GetAccount loads a single account by id
func (s *AccountStoreAdapter) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	account, ok := lo.Find(accounts, func(a *models.Account) bool {
		return a.ID == id
	})
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
	}
	return account, nil
}

// ListAccounts loads every account. A missing file means no accounts.
func (s *AccountStoreAdapter) ListAccounts(_ context.Context) ([]*models.Account, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*models.Account{}, nil
		}
		return nil, fmt.Errorf("failed to read accounts file: %w", err)
	}

	var file accountsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse accounts file %s: %w", s.path, err)
	}

	accounts := make([]*models.Account, 0, len(file.Accounts))
	for _, entry := range file.Accounts {
		account, err := s.toAccount(entry)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", entry.ID, err)
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (s *AccountStoreAdapter) toAccount(entry accountEntry) (*models.Account, error) {
	if entry.ID == "" {
		return nil, fmt.Errorf("missing id")
	}

	balance, spendable, err := parseBalances(entry.Balance, entry.Spendable)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		ID:               entry.ID,
		Name:             entry.Name,
		ChainID:          strings.ToLower(entry.Chain),
		FreshAddress:     entry.Address,
		Balance:          balance,
		SpendableBalance: spendable,
	}

	switch {
	case entry.Unit != nil:
		account.Unit = *entry.Unit
	case s.chains != nil && s.chains.Chains[account.ChainID] != nil:
		account.Unit = s.chains.Chains[account.ChainID].NativeUnit
	default:
		account.Unit = models.Unit{Name: "ether", Code: "ETH", Magnitude: 18}
	}

	for _, token := range entry.Tokens {
		balance, spendable, err := parseBalances(token.Balance, token.Spendable)
		if err != nil {
			return nil, fmt.Errorf("token %s: %w", token.ID, err)
		}
		account.SubAccounts = append(account.SubAccounts, models.TokenAccount{
			ID:       token.ID,
			ParentID: entry.ID,
			Token: models.Token{
				ContractAddress: token.Contract,
				Ticker:          token.Ticker,
				Name:            token.Name,
				Units:           []models.Unit{{Name: token.Name, Code: token.Ticker, Magnitude: token.Decimals}},
			},
			Balance:          balance,
			SpendableBalance: spendable,
		})
	}
	return account, nil
}

// parseBalances reads minor-unit balances. Spendable defaults to balance.
func parseBalances(balance, spendable string) (decimal.Decimal, decimal.Decimal, error) {
	b, err := parseMinorUnits(balance)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("balance: %w", err)
	}
	if spendable == "" {
		return b, b, nil
	}
	sp, err := parseMinorUnits(spendable)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("spendable: %w", err)
	}
	return b, sp, nil
}

func parseMinorUnits(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrInvalidFormat, s)
	}
	if d.IsNegative() || !d.IsInteger() {
		return decimal.Zero, fmt.Errorf("%w: %q is not a whole number of minor units", domain.ErrInvalidFormat, s)
	}
	return d, nil
}

// Ensure AccountStoreAdapter implements AccountRepository
var _ usecase.AccountRepository = (*AccountStoreAdapter)(nil)
