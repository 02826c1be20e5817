package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

// ChainsRenderer renders chain lists
type ChainsRenderer struct {
	out     io.Writer
	jsonOut bool
}

// NewChainsRenderer creates a new chains renderer
func NewChainsRenderer(out io.Writer, jsonOut bool) *ChainsRenderer {
	return &ChainsRenderer{
		out:     out,
		jsonOut: jsonOut,
	}
}

type chainOutput struct {
	Name          string `json:"name"`
	ChainID       uint64 `json:"chainId"`
	RemoteChainID uint64 `json:"remoteChainId,omitempty"`
	RPCURL        string `json:"rpcUrl,omitempty"`
	Error         string `json:"error,omitempty"`
}

// RenderChainsList renders the list of chains
func (r *ChainsRenderer) RenderChainsList(result *usecase.ListChainsResult) error {
	if r.jsonOut {
		return RenderJSON(r.out, lo.Map(result.Chains, func(c usecase.ChainStatus, _ int) chainOutput {
			out := chainOutput{Name: c.Name, ChainID: c.ChainID, RemoteChainID: c.RemoteChainID, RPCURL: c.RPCURL}
			if c.Error != nil {
				out.Error = c.Error.Error()
			}
			return out
		}))
	}

	if len(result.Chains) == 0 {
		fmt.Fprintln(r.out, "No chains configured")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Chains:")
	rows := make(TableData, 0, len(result.Chains))
	for _, chain := range result.Chains {
		status := "✅"
		rpc := chain.RPCURL
		switch {
		case chain.Error != nil:
			status = errorStyle.Sprintf("❌ %v", chain.Error)
		case rpc == "":
			status = labelStyle.Sprint("no rpc")
			rpc = "-"
		}
		rows = append(rows, []string{chain.Name, fmt.Sprintf("%d", chain.ChainID), rpc, status})
	}
	renderTable(r.out, table.Row{"Chain", "Chain ID", "RPC", "Status"}, rows)
	return nil
}
