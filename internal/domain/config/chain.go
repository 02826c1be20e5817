package config

import (
	"math/big"

	"github.com/trebuchet-org/txprep/internal/domain/models"
)

// Chain is the per-network configuration record consumed by the pipeline.
// Chain-specific behavior is expressed through these fields, not types.
type Chain struct {
	Name     string        `json:"name" validate:"required"`
	ChainID  uint64        `json:"chainId" validate:"required,gt=0"`
	Family   models.Family `json:"family" validate:"required,oneof=evm"`
	RPCURL   string        `json:"rpcUrl" validate:"omitempty,url"`
	Explorer string        `json:"explorerUrl,omitempty" validate:"omitempty,url"`

	NativeUnit models.Unit `json:"nativeUnit"`

	// DefaultGasPrice (wei) is reported by the node adapter when the node
	// itself supplies no gas price.
	DefaultGasPrice *big.Int `json:"defaultGasPrice,omitempty"`

	// FlaggedAddresses are recipients that trigger an advisory warning
	FlaggedAddresses []string `json:"flaggedAddresses,omitempty" validate:"dive,eth_addr"`

	// GasBufferPercent is added on top of token transfer gas estimates
	GasBufferPercent uint32 `json:"gasBufferPercent,omitempty" validate:"lte=200"`
}

// ChainsConfig is the resolved chain registry keyed by chain name
type ChainsConfig struct {
	Chains map[string]*Chain
}

// ByChainID finds a chain by its numeric id
func (c *ChainsConfig) ByChainID(id uint64) (*Chain, bool) {
	for _, chain := range c.Chains {
		if chain.ChainID == id {
			return chain, true
		}
	}
	return nil, false
}
