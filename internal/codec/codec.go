// Package codec converts transactions to and from their wire-safe raw form.
package codec

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/txprep/internal/domain"
	"github.com/trebuchet-org/txprep/internal/domain/models"
)

var (
	errNotInteger = errors.New("not a non-negative integer")
	errBadType    = errors.New("unsupported transaction type")
)

// ToRaw converts a transaction to its raw form. Absent optional fields stay
// absent; Type is always written.
func ToRaw(tx models.Transaction) models.TransactionRaw {
	raw := models.TransactionRaw{
		Family:       string(tx.Family),
		Mode:         string(tx.Mode),
		Recipient:    tx.Recipient,
		Amount:       tx.Amount.String(),
		UseAllAmount: tx.UseAllAmount,

		GasLimit:             bigToRaw(tx.GasLimit),
		CustomGasLimit:       bigToRaw(tx.CustomGasLimit),
		GasPrice:             bigToRaw(tx.GasPrice),
		MaxFeePerGas:         bigToRaw(tx.MaxFeePerGas),
		MaxPriorityFeePerGas: bigToRaw(tx.MaxPriorityFeePerGas),
		AdditionalFees:       bigToRaw(tx.AdditionalFees),

		Nonce:   strconv.FormatUint(tx.Nonce, 10),
		ChainID: strconv.FormatUint(tx.ChainID, 10),
		Type:    ptr(strconv.FormatUint(uint64(tx.Type), 10)),
	}
	if tx.SubAccountID != "" {
		raw.SubAccountID = ptr(tx.SubAccountID)
	}
	if tx.FeesStrategy != "" {
		raw.FeesStrategy = ptr(string(tx.FeesStrategy))
	}
	if tx.Data != nil {
		raw.Data = ptr(hexutil.Encode(tx.Data))
	}
	return raw
}

// FromRaw parses a raw transaction. Malformed fields fail with
// *domain.EncodingError; nothing is coerced to a default except a missing
// type, which means legacy.
func FromRaw(raw models.TransactionRaw) (models.Transaction, error) {
	tx := models.Transaction{
		Family:       models.Family(raw.Family),
		Mode:         models.TransactionMode(raw.Mode),
		Recipient:    raw.Recipient,
		UseAllAmount: raw.UseAllAmount,
		Type:         models.TxTypeLegacy,
	}

	amount, err := parseInteger("amount", raw.Amount)
	if err != nil {
		return models.Transaction{}, err
	}
	tx.Amount = amount

	if raw.SubAccountID != nil {
		tx.SubAccountID = *raw.SubAccountID
	}
	if raw.FeesStrategy != nil {
		tx.FeesStrategy = models.FeesStrategy(*raw.FeesStrategy)
	}

	bigFields := []struct {
		name string
		raw  *string
		dst  **big.Int
	}{
		{"gasLimit", raw.GasLimit, &tx.GasLimit},
		{"customGasLimit", raw.CustomGasLimit, &tx.CustomGasLimit},
		{"gasPrice", raw.GasPrice, &tx.GasPrice},
		{"maxFeePerGas", raw.MaxFeePerGas, &tx.MaxFeePerGas},
		{"maxPriorityFeePerGas", raw.MaxPriorityFeePerGas, &tx.MaxPriorityFeePerGas},
		{"additionalFees", raw.AdditionalFees, &tx.AdditionalFees},
	}
	for _, f := range bigFields {
		if f.raw == nil {
			continue
		}
		v, err := parseInteger(f.name, *f.raw)
		if err != nil {
			return models.Transaction{}, err
		}
		*f.dst = v.BigInt()
	}

	if tx.Nonce, err = parseUint("nonce", raw.Nonce); err != nil {
		return models.Transaction{}, err
	}
	if tx.ChainID, err = parseUint("chainId", raw.ChainID); err != nil {
		return models.Transaction{}, err
	}

	if raw.Type != nil {
		t, err := strconv.ParseUint(*raw.Type, 10, 8)
		if err != nil {
			return models.Transaction{}, &domain.EncodingError{Field: "type", Value: *raw.Type, Err: err}
		}
		switch models.TxType(t) {
		case models.TxTypeLegacy, models.TxTypeFeeMarket:
			tx.Type = models.TxType(t)
		default:
			return models.Transaction{}, &domain.EncodingError{Field: "type", Value: *raw.Type, Err: errBadType}
		}
	}

	if raw.Data != nil {
		data, err := hexutil.Decode(*raw.Data)
		if err != nil {
			return models.Transaction{}, &domain.EncodingError{Field: "data", Value: *raw.Data, Err: err}
		}
		tx.Data = data
	}

	return tx, nil
}

// Marshal encodes a transaction as raw JSON
func Marshal(tx models.Transaction) ([]byte, error) {
	data, err := json.MarshalIndent(ToRaw(tx), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal raw transaction: %w", err)
	}
	return data, nil
}

// Unmarshal decodes raw JSON into a transaction
func Unmarshal(data []byte) (models.Transaction, error) {
	var raw models.TransactionRaw
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.Transaction{}, &domain.EncodingError{Field: "json", Err: err}
	}
	return FromRaw(raw)
}

func parseInteger(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, &domain.EncodingError{Field: field, Value: value, Err: err}
	}
	if !d.IsInteger() || d.IsNegative() {
		return decimal.Zero, &domain.EncodingError{Field: field, Value: value, Err: errNotInteger}
	}
	return d, nil
}

func parseUint(field, value string) (uint64, error) {
	v, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, &domain.EncodingError{Field: field, Value: value, Err: err}
	}
	return v, nil
}

func bigToRaw(v *big.Int) *string {
	if v == nil {
		return nil
	}
	return ptr(v.String())
}

func ptr[T any](v T) *T {
	return &v
}
