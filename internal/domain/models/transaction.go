package models

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Family tags the chain family a transaction belongs to
type Family string

const (
	FamilyEVM Family = "evm"
)

// TransactionMode describes what the transaction does
type TransactionMode string

const (
	ModeSend TransactionMode = "send"
)

// FeesStrategy is the fee speed the user picked
type FeesStrategy string

const (
	FeesStrategySlow   FeesStrategy = "slow"
	FeesStrategyMedium FeesStrategy = "medium"
	FeesStrategyFast   FeesStrategy = "fast"
	FeesStrategyCustom FeesStrategy = "custom"
)

// TxType is the EVM envelope discriminator
type TxType uint8

const (
	TxTypeLegacy    TxType = 0
	TxTypeFeeMarket TxType = 2
)

// Transaction is a draft being assembled by the pipeline. Amount is in
// minor units. Fee fields are nil when absent.
//
// After classification exactly one fee model is populated: GasPrice for
// TxTypeLegacy, MaxFeePerGas+MaxPriorityFeePerGas for TxTypeFeeMarket.
type Transaction struct {
	Family       Family
	Mode         TransactionMode
	Recipient    string
	Amount       decimal.Decimal
	UseAllAmount bool
	SubAccountID string

	GasLimit             *big.Int
	CustomGasLimit       *big.Int
	GasPrice             *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
	AdditionalFees       *big.Int

	Nonce        uint64
	ChainID      uint64
	FeesStrategy FeesStrategy
	Type         TxType
	Data         []byte
}

// Clone returns a deep copy so callers never share big integers or payloads.
func (tx Transaction) Clone() Transaction {
	out := tx
	out.GasLimit = copyBig(tx.GasLimit)
	out.CustomGasLimit = copyBig(tx.CustomGasLimit)
	out.GasPrice = copyBig(tx.GasPrice)
	out.MaxFeePerGas = copyBig(tx.MaxFeePerGas)
	out.MaxPriorityFeePerGas = copyBig(tx.MaxPriorityFeePerGas)
	out.AdditionalFees = copyBig(tx.AdditionalFees)
	if tx.Data != nil {
		out.Data = append([]byte(nil), tx.Data...)
	}
	return out
}

// IsTokenTransfer reports whether the draft targets a sub-account
func (tx Transaction) IsTokenTransfer() bool {
	return tx.SubAccountID != ""
}

// EffectiveGasLimit is the user override when set, the estimate otherwise.
func (tx Transaction) EffectiveGasLimit() *big.Int {
	if tx.CustomGasLimit != nil {
		return tx.CustomGasLimit
	}
	return tx.GasLimit
}

// Equal compares two transactions field by field
func (tx Transaction) Equal(other Transaction) bool {
	return tx.Family == other.Family &&
		tx.Mode == other.Mode &&
		tx.Recipient == other.Recipient &&
		tx.Amount.Equal(other.Amount) &&
		tx.UseAllAmount == other.UseAllAmount &&
		tx.SubAccountID == other.SubAccountID &&
		equalBig(tx.GasLimit, other.GasLimit) &&
		equalBig(tx.CustomGasLimit, other.CustomGasLimit) &&
		equalBig(tx.GasPrice, other.GasPrice) &&
		equalBig(tx.MaxFeePerGas, other.MaxFeePerGas) &&
		equalBig(tx.MaxPriorityFeePerGas, other.MaxPriorityFeePerGas) &&
		equalBig(tx.AdditionalFees, other.AdditionalFees) &&
		tx.Nonce == other.Nonce &&
		tx.ChainID == other.ChainID &&
		tx.FeesStrategy == other.FeesStrategy &&
		tx.Type == other.Type &&
		string(tx.Data) == string(other.Data)
}

// FeeData is a network fee snapshot. Fields are nil when the node didn't
// supply them.
type FeeData struct {
	GasPrice             *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
	NextBaseFee          *big.Int
}

// IsFeeMarket reports whether both fee-market fields are present
func (f FeeData) IsFeeMarket() bool {
	return f.MaxFeePerGas != nil && f.MaxPriorityFeePerGas != nil
}

func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}

func equalBig(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Cmp(b) == 0
}
