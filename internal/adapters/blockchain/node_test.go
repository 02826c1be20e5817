package blockchain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/txprep/internal/domain"
	"github.com/trebuchet-org/txprep/internal/domain/config"
	"github.com/trebuchet-org/txprep/internal/domain/models"
)

type fakeClient struct {
	chainID  *big.Int
	nonce    uint64
	gasPrice *big.Int
	tip      *big.Int
	baseFee  *big.Int
	gas      uint64
	err      error

	lastCall ethereum.CallMsg
}

func (f *fakeClient) ChainID(context.Context) (*big.Int, error) { return f.chainID, f.err }

func (f *fakeClient) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return f.nonce, f.err
}

func (f *fakeClient) SuggestGasPrice(context.Context) (*big.Int, error) { return f.gasPrice, f.err }

func (f *fakeClient) SuggestGasTipCap(context.Context) (*big.Int, error) { return f.tip, f.err }

func (f *fakeClient) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &types.Header{BaseFee: f.baseFee}, nil
}

func (f *fakeClient) EstimateGas(_ context.Context, msg ethereum.CallMsg) (uint64, error) {
	f.lastCall = msg
	return f.gas, f.err
}

func newTestNode(client *fakeClient) (*NodeAdapter, *int) {
	dials := 0
	node := NewNodeAdapterWithDialer(func(context.Context, string) (Client, error) {
		dials++
		return client, nil
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return node, &dials
}

func testChain() *config.Chain {
	return &config.Chain{Name: "ethereum", ChainID: 1, RPCURL: "http://localhost:8545"}
}

func TestNodeAdapter_GetFeeData(t *testing.T) {
	ctx := context.Background()

	t.Run("fee market node", func(t *testing.T) {
		node, _ := newTestNode(&fakeClient{gasPrice: big.NewInt(30), tip: big.NewInt(2), baseFee: big.NewInt(10)})

		feeData, err := node.GetFeeData(ctx, testChain())
		require.NoError(t, err)
		assert.True(t, feeData.IsFeeMarket())
		assert.Equal(t, int64(22), feeData.MaxFeePerGas.Int64())
		assert.Equal(t, int64(2), feeData.MaxPriorityFeePerGas.Int64())
		assert.Equal(t, int64(10), feeData.NextBaseFee.Int64())
		assert.Equal(t, int64(30), feeData.GasPrice.Int64())
	})

	t.Run("legacy node", func(t *testing.T) {
		node, _ := newTestNode(&fakeClient{gasPrice: big.NewInt(30)})

		feeData, err := node.GetFeeData(ctx, testChain())
		require.NoError(t, err)
		assert.False(t, feeData.IsFeeMarket())
		assert.Equal(t, int64(30), feeData.GasPrice.Int64())
	})

	t.Run("default gas price", func(t *testing.T) {
		node, _ := newTestNode(&fakeClient{gasPrice: big.NewInt(0)})
		chain := testChain()
		chain.DefaultGasPrice = big.NewInt(1_000_000_000)

		feeData, err := node.GetFeeData(ctx, chain)
		require.NoError(t, err)
		assert.Equal(t, int64(1_000_000_000), feeData.GasPrice.Int64())
	})

	t.Run("errors are network errors", func(t *testing.T) {
		cause := errors.New("503")
		node, _ := newTestNode(&fakeClient{err: cause})

		_, err := node.GetFeeData(ctx, testChain())
		var netErr *domain.NetworkError
		require.ErrorAs(t, err, &netErr)
		assert.Equal(t, "ethereum", netErr.Chain)
		assert.ErrorIs(t, err, cause)
	})
}

func TestNodeAdapter_GetGasEstimate(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{gas: 21_000}
	node, _ := newTestNode(client)

	account := &models.Account{FreshAddress: "0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb"}
	tx := models.Transaction{
		Recipient:            "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		Amount:               decimal.NewFromInt(7),
		Type:                 models.TxTypeFeeMarket,
		MaxFeePerGas:         big.NewInt(100),
		MaxPriorityFeePerGas: big.NewInt(2),
		Data:                 []byte{0x01},
	}

	gas, err := node.GetGasEstimate(ctx, testChain(), account, tx)
	require.NoError(t, err)
	assert.Equal(t, int64(21_000), gas.Int64())

	assert.Equal(t, common.HexToAddress(account.FreshAddress), client.lastCall.From)
	assert.Equal(t, common.HexToAddress(tx.Recipient), *client.lastCall.To)
	assert.Equal(t, int64(7), client.lastCall.Value.Int64())
	assert.Equal(t, int64(100), client.lastCall.GasFeeCap.Int64())
	assert.Nil(t, client.lastCall.GasPrice)
	assert.Equal(t, []byte{0x01}, client.lastCall.Data)

	_, err = node.GetGasEstimate(ctx, testChain(), account, models.Transaction{Recipient: "bad"})
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)
}

func TestNodeAdapter_ClientsAreCached(t *testing.T) {
	ctx := context.Background()
	node, dials := newTestNode(&fakeClient{chainID: big.NewInt(1), nonce: 4})

	nonce, err := node.GetNonce(ctx, testChain(), "0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), nonce)

	id, err := node.ChainID(ctx, testChain())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)
	assert.Equal(t, 1, *dials)
}

func TestNodeAdapter_NoRPCURL(t *testing.T) {
	node, dials := newTestNode(&fakeClient{})
	_, err := node.ChainID(context.Background(), &config.Chain{Name: "offline"})

	var netErr *domain.NetworkError
	assert.ErrorAs(t, err, &netErr)
	assert.Equal(t, 0, *dials)
}
