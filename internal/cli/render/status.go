package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/txprep/internal/domain/models"
)

// StatusRenderer renders a draft's validation status
type StatusRenderer struct {
	out     io.Writer
	jsonOut bool
}

// NewStatusRenderer creates a new status renderer
func NewStatusRenderer(out io.Writer, jsonOut bool) *StatusRenderer {
	return &StatusRenderer{
		out:     out,
		jsonOut: jsonOut,
	}
}

// StatusOutput is the JSON shape of a status check
type StatusOutput struct {
	Valid    bool              `json:"valid"`
	Errors   map[string]string `json:"errors"`
	Warnings map[string]string `json:"warnings"`
	Totals   TotalsOutput      `json:"totals"`
}

// RenderStatus renders the status of tx for account
func (r *StatusRenderer) RenderStatus(status *models.TransactionStatus, account *models.Account, tx models.Transaction) error {
	if r.jsonOut {
		return RenderJSON(r.out, StatusOutput{
			Valid:    status.Valid(),
			Errors:   fieldErrorsJSON(status.Errors),
			Warnings: fieldErrorsJSON(status.Warnings),
			Totals: TotalsOutput{
				Amount:        status.Amount.String(),
				EstimatedFees: status.EstimatedFees.String(),
				TotalSpent:    status.TotalSpent.String(),
			},
		})
	}

	if status.Valid() {
		fmt.Fprintln(r.out, FormatSuccess("Draft is valid"))
	} else {
		fmt.Fprintln(r.out, FormatError("Draft is not valid"))
	}

	amountUnit := amountUnitFor(account, tx)
	renderKeyValues(r.out, TableData{
		{"Amount", FormatAmount(status.Amount, amountUnit)},
		{"Estimated fees", FormatAmount(status.EstimatedFees, account.Unit)},
		{"Total spent", FormatAmount(status.TotalSpent, amountUnit)},
	})

	renderFieldErrors(r.out, status.Errors, func(s string) string { return errorStyle.Sprint(s) })
	renderFieldErrors(r.out, status.Warnings, FormatWarning)
	return nil
}
