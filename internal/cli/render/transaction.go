package render

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/txprep/internal/domain/models"
	"github.com/trebuchet-org/txprep/internal/erc20"
)

// transactionRows describes a transaction for the key/value table. amountUnit
// is the unit the amount is denominated in, feeUnit the chain's base unit.
func transactionRows(tx models.Transaction, amountUnit, feeUnit models.Unit) TableData {
	rows := TableData{
		{"Recipient", addressStyle.Sprint(valueOr(tx.Recipient, "-"))},
	}

	amount := amountStyle.Sprint(FormatAmount(tx.Amount, amountUnit))
	if tx.UseAllAmount {
		amount += " (max)"
	}
	rows = append(rows, []string{"Amount", amount})

	if tx.SubAccountID != "" {
		rows = append(rows, []string{"Token account", tx.SubAccountID})
	}
	if tx.FeesStrategy != "" {
		rows = append(rows, []string{"Fee strategy", Title(string(tx.FeesStrategy))})
	}

	switch tx.Type {
	case models.TxTypeFeeMarket:
		rows = append(rows, []string{"Type", "Fee market (EIP-1559)"})
		if tx.MaxFeePerGas != nil {
			rows = append(rows, []string{"Max fee", FormatGwei(tx.MaxFeePerGas)})
		}
		if tx.MaxPriorityFeePerGas != nil {
			rows = append(rows, []string{"Priority fee", FormatGwei(tx.MaxPriorityFeePerGas)})
		}
	default:
		rows = append(rows, []string{"Type", "Legacy"})
		if tx.GasPrice != nil {
			rows = append(rows, []string{"Gas price", FormatGwei(tx.GasPrice)})
		}
	}

	if limit := tx.EffectiveGasLimit(); limit != nil {
		label := "Gas limit"
		if tx.CustomGasLimit != nil {
			label = "Gas limit (custom)"
		}
		rows = append(rows, []string{label, limit.String()})
	}
	if tx.AdditionalFees != nil && tx.AdditionalFees.Sign() > 0 {
		rows = append(rows, []string{"Additional fees", FormatAmount(decimalFromBig(tx.AdditionalFees), feeUnit)})
	}
	if tx.ChainID != 0 {
		rows = append(rows, []string{"Chain ID", fmt.Sprintf("%d", tx.ChainID)})
	}
	if len(tx.Data) > 0 {
		rows = append(rows, []string{"Data", describeData(tx.Data, amountUnit)})
	}
	return rows
}

// describeData shows a decoded ERC-20 transfer or the raw hex payload
func describeData(data []byte, unit models.Unit) string {
	if transfer, err := erc20.DecodeTransfer(data); err == nil {
		return fmt.Sprintf("transfer(%s, %s)", transfer.To.Hex(), FormatAmount(decimalFromBig(transfer.Amount), unit))
	}
	encoded := hexutil.Encode(data)
	if len(encoded) > 74 {
		encoded = encoded[:74] + "…"
	}
	return encoded
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
