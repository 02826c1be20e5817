package render

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/txprep/internal/domain/models"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

// SignPayloadRenderer renders what crosses the signing boundary
type SignPayloadRenderer struct {
	out     io.Writer
	jsonOut bool
}

// NewSignPayloadRenderer creates a new sign payload renderer
func NewSignPayloadRenderer(out io.Writer, jsonOut bool) *SignPayloadRenderer {
	return &SignPayloadRenderer{
		out:     out,
		jsonOut: jsonOut,
	}
}

// SignPayloadOutput is the JSON shape handed to a signer
type SignPayloadOutput struct {
	Transaction models.TransactionRaw `json:"transaction"`
	SigningHash string                `json:"signingHash"`
	Unsigned    string                `json:"unsigned"`
}

// NewSignPayloadOutput builds the signer payload from a pre-sign result
func NewSignPayloadOutput(result *usecase.PrepareForSignResult) (SignPayloadOutput, error) {
	unsigned, err := result.Unsigned.MarshalBinary()
	if err != nil {
		return SignPayloadOutput{}, fmt.Errorf("failed to encode unsigned transaction: %w", err)
	}
	return SignPayloadOutput{
		Transaction: result.Raw,
		SigningHash: result.SigningHash.Hex(),
		Unsigned:    hexutil.Encode(unsigned),
	}, nil
}

// RenderSignPayload renders the signer payload
func (r *SignPayloadRenderer) RenderSignPayload(result *usecase.PrepareForSignResult, account *models.Account) error {
	payload, err := NewSignPayloadOutput(result)
	if err != nil {
		return err
	}
	if r.jsonOut {
		return RenderJSON(r.out, payload)
	}

	fmt.Fprintln(r.out, FormatSuccess("Unsigned transaction ready for signing"))
	fmt.Fprintln(r.out)

	rows := transactionRows(result.Transaction, account.Unit, account.Unit)
	rows = append(rows,
		[]string{"Nonce", fmt.Sprintf("%d", result.Transaction.Nonce)},
		[]string{"Signing hash", sectionHeaderStyle.Sprint(payload.SigningHash)},
	)
	renderKeyValues(r.out, rows)
	return nil
}
