package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/txprep/internal/cli/render"
	"github.com/trebuchet-org/txprep/internal/codec"
	"github.com/trebuchet-org/txprep/internal/domain/models"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

// NewDraftCmd creates the draft command group
func NewDraftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Save and load transaction drafts",
		Long: `Drafts are stored in their raw JSON form under <data-dir>/drafts so a later
session can resume them with --draft-id.`,
	}

	cmd.AddCommand(newDraftSaveCmd())
	cmd.AddCommand(newDraftShowCmd())
	cmd.AddCommand(newDraftListCmd())
	return cmd
}

func newDraftSaveCmd() *cobra.Command {
	var flags draftFlags

	cmd := &cobra.Command{
		Use:   "save <id>",
		Short: "Save a draft built from flags or a raw JSON file",
		Long: `Save a draft built from flags or a raw JSON file.

Examples:
  txprep draft save rent --account acc-1 --to 0x... --amount 0.25
  txprep draft save imported --account acc-1 --draft tx.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			_, draft, err := flags.build(ctx, app)
			if err != nil {
				return err
			}

			if err := app.SaveDraft.Run(ctx, usecase.SaveDraftParams{ID: args[0], Transaction: draft}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess(fmt.Sprintf("Saved draft %s", args[0])))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newDraftShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			draft, err := app.LoadDraft.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if app.Config.JSON {
				data, err := codec.Marshal(draft)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			// Token amounts stay in minor units since the draft alone
			// doesn't carry the token's decimals.
			unit := models.Unit{Name: "wei", Code: "wei"}
			if chain, ok := app.Config.Chains.ByChainID(draft.ChainID); ok && !draft.IsTokenTransfer() {
				unit = chain.NativeUnit
			}
			renderer := render.NewDraftRenderer(cmd.OutOrStdout(), false)
			return renderer.RenderDraft(args[0], draft, unit)
		},
	}

	return cmd
}

func newDraftListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved drafts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			ids, err := app.LoadDraft.List(cmd.Context())
			if err != nil {
				return err
			}

			renderer := render.NewDraftRenderer(cmd.OutOrStdout(), app.Config.JSON)
			return renderer.RenderDraftList(ids)
		},
	}
}
