package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/txprep/internal/domain"
	"github.com/trebuchet-org/txprep/internal/domain/config"
	"github.com/trebuchet-org/txprep/internal/domain/models"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

// Client is the subset of ethclient.Client the node adapter uses
type Client interface {
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
}

// Dialer opens a client for an RPC endpoint
type Dialer func(ctx context.Context, rpcURL string) (Client, error)

// NodeAdapter implements NetworkNode and ChainProber over JSON-RPC. One
// client is dialed per chain on first use and kept for the process.
type NodeAdapter struct {
	dial Dialer
	log  *slog.Logger

	mu      sync.Mutex
	clients map[string]Client
}

// NewNodeAdapter creates a node adapter dialing with ethclient
func NewNodeAdapter(log *slog.Logger) *NodeAdapter {
	return NewNodeAdapterWithDialer(func(ctx context.Context, rpcURL string) (Client, error) {
		return ethclient.DialContext(ctx, rpcURL)
	}, log)
}

// NewNodeAdapterWithDialer creates a node adapter with a custom dialer
func NewNodeAdapterWithDialer(dial Dialer, log *slog.Logger) *NodeAdapter {
	return &NodeAdapter{
		dial:    dial,
		log:     log.With("component", "NodeAdapter"),
		clients: make(map[string]Client),
	}
}

func (n *NodeAdapter) client(ctx context.Context, chain *config.Chain) (Client, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if c, ok := n.clients[chain.Name]; ok {
		return c, nil
	}
	if chain.RPCURL == "" {
		return nil, fmt.Errorf("no RPC URL configured for chain %s", chain.Name)
	}

	n.log.Debug("dialing node", "chain", chain.Name)
	c, err := n.dial(ctx, chain.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	n.clients[chain.Name] = c
	return c, nil
}

func wrap(op string, chain *config.Chain, err error) error {
	return &domain.NetworkError{Op: op, Chain: chain.Name, Err: err}
}

// GetNonce returns the next nonce including pending transactions
func (n *NodeAdapter) GetNonce(ctx context.Context, chain *config.Chain, address string) (uint64, error) {
	c, err := n.client(ctx, chain)
	if err != nil {
		return 0, wrap("dial", chain, err)
	}
	if !common.IsHexAddress(address) {
		return 0, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, address)
	}

	nonce, err := c.PendingNonceAt(ctx, common.HexToAddress(address))
	if err != nil {
		return 0, wrap("get nonce", chain, err)
	}
	return nonce, nil
}

// GetFeeData snapshots the node's fee market. Nodes without a base fee get
// a legacy snapshot; the chain's default gas price stands in when the node
// suggests none.
func (n *NodeAdapter) GetFeeData(ctx context.Context, chain *config.Chain) (models.FeeData, error) {
	c, err := n.client(ctx, chain)
	if err != nil {
		return models.FeeData{}, wrap("dial", chain, err)
	}

	var feeData models.FeeData

	gasPrice, err := c.SuggestGasPrice(ctx)
	if err != nil {
		return models.FeeData{}, wrap("suggest gas price", chain, err)
	}
	if gasPrice != nil && gasPrice.Sign() > 0 {
		feeData.GasPrice = gasPrice
	} else if chain.DefaultGasPrice != nil {
		feeData.GasPrice = new(big.Int).Set(chain.DefaultGasPrice)
	}

	head, err := c.HeaderByNumber(ctx, nil)
	if err != nil {
		return models.FeeData{}, wrap("latest header", chain, err)
	}
	if head.BaseFee == nil {
		return feeData, nil
	}

	tip, err := c.SuggestGasTipCap(ctx)
	if err != nil {
		return models.FeeData{}, wrap("suggest tip", chain, err)
	}

	// maxFee = 2*baseFee + tip
	maxFee := new(big.Int).Mul(head.BaseFee, big.NewInt(2))
	maxFee.Add(maxFee, tip)

	feeData.NextBaseFee = new(big.Int).Set(head.BaseFee)
	feeData.MaxPriorityFeePerGas = tip
	feeData.MaxFeePerGas = maxFee
	return feeData, nil
}

// GetGasEstimate estimates gas for tx as sent from the account
func (n *NodeAdapter) GetGasEstimate(ctx context.Context, chain *config.Chain, account *models.Account, tx models.Transaction) (*big.Int, error) {
	c, err := n.client(ctx, chain)
	if err != nil {
		return nil, wrap("dial", chain, err)
	}
	if !common.IsHexAddress(tx.Recipient) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, tx.Recipient)
	}

	to := common.HexToAddress(tx.Recipient)
	msg := ethereum.CallMsg{
		From:  common.HexToAddress(account.FreshAddress),
		To:    &to,
		Value: tx.Amount.BigInt(),
		Data:  tx.Data,
	}
	if tx.Type == models.TxTypeFeeMarket {
		msg.GasFeeCap = tx.MaxFeePerGas
		msg.GasTipCap = tx.MaxPriorityFeePerGas
	} else {
		msg.GasPrice = tx.GasPrice
	}

	gas, err := c.EstimateGas(ctx, msg)
	if err != nil {
		return nil, wrap("estimate gas", chain, err)
	}
	n.log.Debug("estimated gas", "chain", chain.Name, "to", tx.Recipient, "gas", gas)
	return new(big.Int).SetUint64(gas), nil
}

// ChainID asks the endpoint which chain it serves
func (n *NodeAdapter) ChainID(ctx context.Context, chain *config.Chain) (uint64, error) {
	c, err := n.client(ctx, chain)
	if err != nil {
		return 0, wrap("dial", chain, err)
	}

	id, err := c.ChainID(ctx)
	if err != nil {
		return 0, wrap("chain id", chain, err)
	}
	return id.Uint64(), nil
}

// Ensure the adapter implements the interfaces
var (
	_ usecase.NetworkNode = (*NodeAdapter)(nil)
	_ usecase.ChainProber = (*NodeAdapter)(nil)
)
