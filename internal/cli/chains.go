package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/txprep/internal/cli/render"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

// NewChainsCmd creates the chains command
func NewChainsCmd() *cobra.Command {
	var probe bool

	cmd := &cobra.Command{
		Use:   "chains",
		Short: "List configured chains",
		Long: `List the built-in chains and those configured in chains.toml.

With --probe each chain with an RPC URL is asked for its chain id and
mismatches with the configured id are reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListChains.Run(cmd.Context(), usecase.ListChainsParams{Probe: probe})
			if err != nil {
				return err
			}

			renderer := render.NewChainsRenderer(cmd.OutOrStdout(), app.Config.JSON)
			return renderer.RenderChainsList(result)
		},
	}

	cmd.Flags().BoolVar(&probe, "probe", false, "Query each RPC endpoint for its chain id")
	return cmd
}
