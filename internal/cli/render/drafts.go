package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/txprep/internal/domain/models"
)

// DraftRenderer renders stored drafts
type DraftRenderer struct {
	out     io.Writer
	jsonOut bool
}

// NewDraftRenderer creates a new draft renderer
func NewDraftRenderer(out io.Writer, jsonOut bool) *DraftRenderer {
	return &DraftRenderer{
		out:     out,
		jsonOut: jsonOut,
	}
}

// RenderDraftList renders the ids of stored drafts
func (r *DraftRenderer) RenderDraftList(ids []string) error {
	if r.jsonOut {
		if ids == nil {
			ids = []string{}
		}
		return RenderJSON(r.out, ids)
	}
	if len(ids) == 0 {
		fmt.Fprintln(r.out, "No drafts saved")
		return nil
	}
	for _, id := range ids {
		fmt.Fprintf(r.out, "  %s\n", id)
	}
	return nil
}

// RenderDraft renders a single draft. The unit is used for the amount.
func (r *DraftRenderer) RenderDraft(id string, tx models.Transaction, unit models.Unit) error {
	fmt.Fprintln(r.out, sectionHeaderStyle.Sprintf("Draft %s", id))
	renderKeyValues(r.out, transactionRows(tx, unit, unit))
	return nil
}
