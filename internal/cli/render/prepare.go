package render

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/txprep/internal/codec"
	"github.com/trebuchet-org/txprep/internal/domain/models"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

// PrepareRenderer renders the outcome of a prepare run
type PrepareRenderer struct {
	out     io.Writer
	jsonOut bool
}

// NewPrepareRenderer creates a new prepare renderer
func NewPrepareRenderer(out io.Writer, jsonOut bool) *PrepareRenderer {
	return &PrepareRenderer{
		out:     out,
		jsonOut: jsonOut,
	}
}

// PrepareOutput is the JSON shape of a prepare run
type PrepareOutput struct {
	State       string                `json:"state"`
	Trail       []string              `json:"trail"`
	Transaction models.TransactionRaw `json:"transaction"`
	Errors      map[string]string     `json:"errors"`
	Warnings    map[string]string     `json:"warnings"`
	Totals      TotalsOutput          `json:"totals"`
}

// TotalsOutput carries totals in minor units
type TotalsOutput struct {
	Amount        string `json:"amount"`
	EstimatedFees string `json:"estimatedFees"`
	TotalSpent    string `json:"totalSpent"`
}

// RenderPrepare renders a prepare result for the given account
func (r *PrepareRenderer) RenderPrepare(result *usecase.PrepareResult, account *models.Account) error {
	if r.jsonOut {
		return RenderJSON(r.out, PrepareOutput{
			State:       string(result.State),
			Trail:       lo.Map(result.Trail, func(s usecase.PrepareState, _ int) string { return string(s) }),
			Transaction: codec.ToRaw(result.Transaction),
			Errors:      fieldErrorsJSON(result.Errors),
			Warnings:    fieldErrorsJSON(result.Warnings),
			Totals: TotalsOutput{
				Amount:        result.Totals.Amount.String(),
				EstimatedFees: result.Totals.EstimatedFees.String(),
				TotalSpent:    result.Totals.TotalSpent.String(),
			},
		})
	}

	chainName := account.ChainID
	if result.Chain != nil {
		chainName = result.Chain.Name
	}

	if result.State == usecase.StateUnchanged {
		fmt.Fprintln(r.out, FormatError(fmt.Sprintf("Draft rejected on %s, nothing was changed", chainName)))
		renderFieldErrors(r.out, result.Errors, func(s string) string { return errorStyle.Sprint(s) })
		renderFieldErrors(r.out, result.Warnings, FormatWarning)
		return nil
	}

	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Transaction prepared on %s", chainName)))
	fmt.Fprintln(r.out)

	amountUnit := amountUnitFor(account, result.Transaction)
	rows := transactionRows(result.Transaction, amountUnit, account.Unit)
	rows = append(rows,
		[]string{"Estimated fees", FormatAmount(result.Totals.EstimatedFees, account.Unit)},
	)
	if result.Transaction.IsTokenTransfer() {
		rows = append(rows, []string{"Total spent", FormatAmount(result.Totals.TotalSpent, amountUnit)})
	} else {
		rows = append(rows, []string{"Total spent", amountStyle.Sprint(FormatAmount(result.Totals.TotalSpent, account.Unit))})
	}
	renderKeyValues(r.out, rows)

	if !result.Warnings.Empty() {
		renderFieldErrors(r.out, result.Warnings, FormatWarning)
	}

	fmt.Fprintln(r.out, labelStyle.Sprint(strings.Join(lo.Map(result.Trail, func(s usecase.PrepareState, _ int) string {
		return Title(string(s))
	}), " → ")))
	return nil
}

// amountUnitFor picks the token unit for token transfers
func amountUnitFor(account *models.Account, tx models.Transaction) models.Unit {
	if tx.IsTokenTransfer() {
		if token, ok := account.SubAccount(tx.SubAccountID); ok {
			return token.Token.Unit()
		}
	}
	return account.Unit
}

func decimalFromBig(v *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(v, 0)
}
