package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/trebuchet-org/txprep/internal/domain/config"
	"github.com/trebuchet-org/txprep/internal/domain/models"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

const (
	senderAddress    = "0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb"
	recipientAddress = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	usdcContract     = "0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB"
	usdcSubAccount   = "acc-1+usdc"
)

// MockNetworkNode is a mock implementation of NetworkNode
type MockNetworkNode struct {
	mock.Mock
}

func (m *MockNetworkNode) GetNonce(ctx context.Context, chain *config.Chain, address string) (uint64, error) {
	args := m.Called(ctx, chain, address)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockNetworkNode) GetFeeData(ctx context.Context, chain *config.Chain) (models.FeeData, error) {
	args := m.Called(ctx, chain)
	return args.Get(0).(models.FeeData), args.Error(1)
}

func (m *MockNetworkNode) GetGasEstimate(ctx context.Context, chain *config.Chain, account *models.Account, tx models.Transaction) (*big.Int, error) {
	args := m.Called(ctx, chain, account, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

// MockChainProber is a mock implementation of ChainProber
type MockChainProber struct {
	mock.Mock
}

func (m *MockChainProber) ChainID(ctx context.Context, chain *config.Chain) (uint64, error) {
	args := m.Called(ctx, chain)
	return args.Get(0).(uint64), args.Error(1)
}

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

// MockChainResolver is a mock implementation of ChainResolver
type MockChainResolver struct {
	mock.Mock
}

func (m *MockChainResolver) GetChains(ctx context.Context) []string {
	args := m.Called(ctx)
	return args.Get(0).([]string)
}

func (m *MockChainResolver) ResolveChain(ctx context.Context, name string) (*config.Chain, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.Chain), args.Error(1)
}

// MockDraftRepository is a mock implementation of DraftRepository
type MockDraftRepository struct {
	mock.Mock
}

func (m *MockDraftRepository) SaveDraft(ctx context.Context, id string, tx models.Transaction) error {
	args := m.Called(ctx, id, tx)
	return args.Error(0)
}

func (m *MockDraftRepository) LoadDraft(ctx context.Context, id string) (models.Transaction, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Transaction), args.Error(1)
}

func (m *MockDraftRepository) ListDrafts(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// memoryConfigStore keeps the local config in memory
type memoryConfigStore struct {
	cfg    *config.LocalConfig
	exists bool
	saves  int
}

func (s *memoryConfigStore) Exists() bool { return s.exists }

func (s *memoryConfigStore) Load(context.Context) (*config.LocalConfig, error) {
	if s.cfg == nil {
		return config.DefaultLocalConfig(), nil
	}
	copied := *s.cfg
	return &copied, nil
}

func (s *memoryConfigStore) Save(_ context.Context, cfg *config.LocalConfig) error {
	copied := *cfg
	s.cfg = &copied
	s.exists = true
	s.saves++
	return nil
}

func (s *memoryConfigStore) GetPath() string { return "/project/.txprep/config.local.json" }

// MockAccountSelector is a mock implementation of AccountSelector
type MockAccountSelector struct {
	mock.Mock
}

func (m *MockAccountSelector) SelectAccount(ctx context.Context, accounts []*models.Account, prompt string) (*models.Account, error) {
	args := m.Called(ctx, accounts, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	events []usecase.ProgressEvent
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(string)  {}
func (m *MockProgressSink) Error(string) {}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testChain() *config.Chain {
	return &config.Chain{
		Name:       "ethereum",
		ChainID:    1,
		Family:     models.FamilyEVM,
		RPCURL:     "https://rpc.example.org",
		NativeUnit: models.Unit{Name: "ether", Code: "ETH", Magnitude: 18},
	}
}

func testAccount(spendable int64) *models.Account {
	return &models.Account{
		ID:               "acc-1",
		Name:             "main",
		ChainID:          "ethereum",
		FreshAddress:     senderAddress,
		Balance:          decimal.NewFromInt(spendable),
		SpendableBalance: decimal.NewFromInt(spendable),
		Unit:             models.Unit{Name: "ether", Code: "ETH", Magnitude: 18},
		SubAccounts: []models.TokenAccount{
			{
				ID:       usdcSubAccount,
				ParentID: "acc-1",
				Token: models.Token{
					ContractAddress: usdcContract,
					Ticker:          "USDC",
					Name:            "USD Coin",
					Units:           []models.Unit{{Name: "USD Coin", Code: "USDC", Magnitude: 6}},
				},
				Balance:          decimal.NewFromInt(50_000_000),
				SpendableBalance: decimal.NewFromInt(50_000_000),
			},
		},
	}
}
