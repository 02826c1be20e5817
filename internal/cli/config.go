package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/txprep/internal/cli/render"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage txprep local config",
		Long: `Manage txprep local config stored in .txprep/config.local.json

The config defines the default network and account used when --network
and --account are not given. TXPREP_NETWORK and TXPREP_ACCOUNT override
the stored values too; config shows which value is in effect.

Available subcommands:
  config           Show current config
  config set       Set a config value
  config remove    Remove a config value

When run without subcommands, displays the current config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	}

	cmd.AddCommand(NewConfigSetCmd())
	cmd.AddCommand(NewConfigRemoveCmd())

	return cmd
}

// NewConfigSetCmd creates the config set subcommand
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: `Set a config value in .txprep/config.local.json.
Available keys: network (net, chain), account (acc)

The network must resolve against the chain registry and the account must
exist in the account store.

Examples:
  txprep config set network sepolia
  txprep config set account acc-1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.SetConfig.Run(cmd.Context(), usecase.SetConfigParams{
				Key:   args[0],
				Value: args[1],
			})
			if err != nil {
				return err
			}

			return render.NewConfigRenderer(cmd.OutOrStdout()).RenderSet(result)
		},
	}
}

// NewConfigRemoveCmd creates the config remove subcommand
func NewConfigRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key>...",
		Short: "Remove config values",
		Long: `Remove one or more values from .txprep/config.local.json.
Nothing is removed if any key is unknown.

Examples:
  txprep config remove network
  txprep config remove network account`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.RemoveConfig.Run(cmd.Context(), usecase.RemoveConfigParams{Keys: args})
			if err != nil {
				return err
			}

			return render.NewConfigRenderer(cmd.OutOrStdout()).RenderRemove(result)
		},
	}
}

func showConfig(cmd *cobra.Command) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := app.ShowConfig.Run(cmd.Context())
	if err != nil {
		return err
	}

	return render.NewConfigRenderer(cmd.OutOrStdout()).RenderConfig(result)
}
