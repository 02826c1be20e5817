package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/txprep/internal/cli/render"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

// NewSignPayloadCmd creates the sign-payload command
func NewSignPayloadCmd() *cobra.Command {
	var flags draftFlags
	var outFile string

	cmd := &cobra.Command{
		Use:   "sign-payload",
		Short: "Build the unsigned transaction and signing hash for a prepared draft",
		Long: `Fetch the account nonce and build the unsigned transaction a signer needs.
Token transfers are rewritten so the signer sees the token contract as the
destination with the transfer encoded in the data.

Examples:
  txprep sign-payload --account acc-1 --draft prepared.json --out payload.json
  txprep sign-payload --draft-id rent --json`,
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

			result, err := app.PrepareForSign.Run(ctx, usecase.PrepareForSignParams{
				AccountID:   account.ID,
				Transaction: draft,
			})
			if err != nil {
				return err
			}

			if outFile != "" {
				payload, err := render.NewSignPayloadOutput(result)
				if err != nil {
					return err
				}
				f, err := os.Create(outFile) //nolint:gosec // user-supplied path
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outFile, err)
				}
				defer f.Close()
				if err := render.RenderJSON(f, payload); err != nil {
					return err
				}
				app.Progress.Info(fmt.Sprintf("Signing payload written to %s", outFile))
			}

			renderer := render.NewSignPayloadRenderer(cmd.OutOrStdout(), app.Config.JSON)
			return renderer.RenderSignPayload(result, account)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write the signing payload as JSON")
	return cmd
}
