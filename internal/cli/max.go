package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/txprep/internal/cli/render"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

// NewMaxCmd creates the max command
func NewMaxCmd() *cobra.Command {
	var flags draftFlags

	cmd := &cobra.Command{
		Use:   "max",
		Short: "Estimate the largest amount the account can send",
		Long: `Estimate the largest amount a send can move. For the base asset this is
the spendable balance minus the estimated network fees; for a token it is
the token's spendable balance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			account, draft, err := flags.build(ctx, app)
			if err != nil {
				return err
			}

			result, err := app.EstimateMaxSpendable.Run(ctx, usecase.EstimateMaxSpendableParams{
				AccountID: account.ID,
				Draft:     draft,
			})
			if err != nil {
				return err
			}

			renderer := render.NewMaxRenderer(cmd.OutOrStdout(), app.Config.JSON)
			return renderer.RenderMax(result)
		},
	}

	flags.register(cmd)
	return cmd
}
