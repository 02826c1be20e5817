package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/txprep/internal/usecase"
)

// MaxRenderer renders the max spendable estimate
type MaxRenderer struct {
	out     io.Writer
	jsonOut bool
}

// NewMaxRenderer creates a new max renderer
func NewMaxRenderer(out io.Writer, jsonOut bool) *MaxRenderer {
	return &MaxRenderer{
		out:     out,
		jsonOut: jsonOut,
	}
}

// RenderMax renders the max spendable amount
func (r *MaxRenderer) RenderMax(result *usecase.EstimateMaxSpendableResult) error {
	if r.jsonOut {
		return RenderJSON(r.out, map[string]string{
			"amount":        result.Amount.String(),
			"estimatedFees": result.EstimatedFees.String(),
			"unit":          result.Unit.Code,
		})
	}

	fmt.Fprintf(r.out, "Max spendable: %s\n", amountStyle.Sprint(FormatAmount(result.Amount, result.Unit)))
	return nil
}
