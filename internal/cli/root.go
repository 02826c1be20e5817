package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/txprep/internal/app"
	"github.com/trebuchet-org/txprep/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// skipsApp lists commands that run without configuration
var skipsApp = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
	"txprep":     true,
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "txprep",
		Short: "Prepare EVM transactions for offline signing",
		Long: `txprep turns a transaction draft into a fee-classified, validated and
gas-estimated EVM transaction, and builds the unsigned payload a signer
needs. It never signs or broadcasts.`,
		Version:      config.VersionString(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsApp[cmd.Name()] {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Chain to use (e.g., mainnet, sepolia)")
	rootCmd.PersistentFlags().String("data-dir", "", "Data directory (defaults to .txprep in the project root)")
	rootCmd.PersistentFlags().String("chains-file", "", "Chain registry file (defaults to chains.toml in the project root)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	for _, cmd := range []*cobra.Command{
		NewPrepareCmd(),
		NewStatusCmd(),
		NewSignPayloadCmd(),
		NewMaxCmd(),
	} {
		cmd.GroupID = "main"
		rootCmd.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{
		NewChainsCmd(),
		NewUnitsCmd(),
		NewDraftCmd(),
		NewConfigCmd(),
	} {
		cmd.GroupID = "management"
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
