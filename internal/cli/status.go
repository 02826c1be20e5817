package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/txprep/internal/cli/render"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	var flags draftFlags

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Validate a draft without contacting the node",
		Long: `Validate a draft against the account and report totals, errors and
warnings. No network calls are made; drafts without a gas limit are priced
at the standard limit for their kind.`,
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

			status, err := app.GetTransactionStatus.Run(ctx, usecase.TransactionStatusParams{
				AccountID:   account.ID,
				Transaction: draft,
			})
			if err != nil {
				return err
			}

			renderer := render.NewStatusRenderer(cmd.OutOrStdout(), app.Config.JSON)
			return renderer.RenderStatus(status, account, draft)
		},
	}

	flags.register(cmd)
	return cmd
}
