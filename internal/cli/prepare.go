package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/txprep/internal/cli/render"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

// NewPrepareCmd creates the prepare command
func NewPrepareCmd() *cobra.Command {
	var flags draftFlags
	var outFile string
	var saveAs string

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Classify fees, validate and estimate gas for a draft",
		Long: `Run a draft through the prepare pipeline: fetch fee data from the node,
classify the transaction as legacy or fee-market, validate recipient and
amount against the account, and estimate gas.

A draft that fails validation is returned unchanged together with the
reasons. Network failures abort the command.

Examples:
  txprep prepare --account acc-1 --to 0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed --amount 0.5
  txprep prepare --account acc-1 --token acc-1+usdc --to 0x... --max
  txprep prepare --draft-id rent --out rent.json`,
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

			result, err := app.PrepareTransaction.Run(ctx, usecase.PrepareParams{
				AccountID: account.ID,
				Draft:     draft,
			})
			if err != nil {
				return err
			}

			renderer := render.NewPrepareRenderer(cmd.OutOrStdout(), app.Config.JSON)
			if err := renderer.RenderPrepare(result, account); err != nil {
				return err
			}

			if result.State == usecase.StateUnchanged {
				return fmt.Errorf("draft is not valid: %s", result.Errors.String())
			}

			if outFile != "" {
				if err := writeRawTransaction(outFile, result.Transaction); err != nil {
					return err
				}
				app.Progress.Info(fmt.Sprintf("Prepared transaction written to %s", outFile))
			}
			if saveAs != "" {
				if err := app.SaveDraft.Run(ctx, usecase.SaveDraftParams{ID: saveAs, Transaction: result.Transaction}); err != nil {
					return err
				}
				app.Progress.Info(fmt.Sprintf("Saved as draft %s", saveAs))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write the prepared transaction as raw JSON")
	cmd.Flags().StringVar(&saveAs, "save", "", "Save the prepared transaction as a draft")

	return cmd
}
