// Package fees classifies transactions by fee model and computes fee totals.
package fees

import (
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/txprep/internal/domain/models"
)

// Classify picks the fee model from a network snapshot. When the snapshot
// carries both fee-market fields the transaction becomes type 2 and loses
// its gas price; otherwise it becomes legacy with the snapshot's gas price
// (zero when absent) and loses the fee-market fields. The input is not
// modified.
func Classify(tx models.Transaction, feeData models.FeeData) models.Transaction {
	out := tx.Clone()

	if feeData.IsFeeMarket() {
		out.Type = models.TxTypeFeeMarket
		out.MaxFeePerGas = new(big.Int).Set(feeData.MaxFeePerGas)
		out.MaxPriorityFeePerGas = new(big.Int).Set(feeData.MaxPriorityFeePerGas)
		out.GasPrice = nil
		return out
	}

	out.Type = models.TxTypeLegacy
	out.GasPrice = new(big.Int)
	if feeData.GasPrice != nil {
		out.GasPrice.Set(feeData.GasPrice)
	}
	out.MaxFeePerGas = nil
	out.MaxPriorityFeePerGas = nil
	return out
}

// PricePerGas is the worst-case price the transaction may pay per gas unit
func PricePerGas(tx models.Transaction) *big.Int {
	if tx.Type == models.TxTypeFeeMarket {
		if tx.MaxFeePerGas != nil {
			return tx.MaxFeePerGas
		}
		return new(big.Int)
	}
	if tx.GasPrice != nil {
		return tx.GasPrice
	}
	return new(big.Int)
}

// EstimatedFees is gasLimit × price plus any additional (L1 data) fees, in
// minor units of the base asset. A missing gas limit counts as zero.
func EstimatedFees(tx models.Transaction) decimal.Decimal {
	gasLimit := tx.EffectiveGasLimit()
	if gasLimit == nil {
		gasLimit = new(big.Int)
	}

	total := new(big.Int).Mul(gasLimit, PricePerGas(tx))
	if tx.AdditionalFees != nil {
		total.Add(total, tx.AdditionalFees)
	}
	return decimal.NewFromBigInt(total, 0)
}

// ApplyGasEstimate merges a gas estimate into a new value, raising it by
// bufferPercent.
func ApplyGasEstimate(tx models.Transaction, estimate *big.Int, bufferPercent uint32) models.Transaction {
	out := tx.Clone()
	out.GasLimit = WithBuffer(estimate, bufferPercent)
	return out
}

// WithBuffer returns estimate increased by percent, rounded down
func WithBuffer(estimate *big.Int, percent uint32) *big.Int {
	if estimate == nil {
		return nil
	}
	if percent == 0 {
		return new(big.Int).Set(estimate)
	}
	scaled := new(big.Int).Mul(estimate, big.NewInt(int64(100+percent)))
	return scaled.Quo(scaled, big.NewInt(100))
}

// DefaultGasLimit is the intrinsic gas of a plain value transfer, assumed
// until the node has estimated the draft.
const DefaultGasLimit = 21_000

// SeedGasLimit fills in fallback when the draft has no gas limit yet
func SeedGasLimit(tx models.Transaction, fallback int64) models.Transaction {
	if tx.EffectiveGasLimit() != nil {
		return tx
	}
	out := tx.Clone()
	out.GasLimit = big.NewInt(fallback)
	return out
}
