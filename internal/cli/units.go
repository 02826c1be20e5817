package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/txprep/internal/app"
	"github.com/trebuchet-org/txprep/internal/domain/models"
	"github.com/trebuchet-org/txprep/internal/units"
)

// unitFlags selects the unit amounts are converted with
type unitFlags struct {
	chain     string
	code      string
	magnitude int32
}

func (f *unitFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.chain, "chain", "", "Chain whose native unit to use (defaults to --network)")
	cmd.Flags().StringVar(&f.code, "code", "", "Unit code override (e.g. USDC)")
	cmd.Flags().Int32Var(&f.magnitude, "magnitude", -1, "Decimal places override (e.g. 6 for USDC)")
}

func (f *unitFlags) resolve(cmd *cobra.Command, a *app.App) (models.Unit, error) {
	var unit models.Unit
	switch {
	case f.chain != "":
		chain, err := a.Chains.ResolveChain(cmd.Context(), f.chain)
		if err != nil {
			return models.Unit{}, err
		}
		unit = chain.NativeUnit
	case a.Config.Network != nil:
		unit = a.Config.Network.NativeUnit
	case f.magnitude < 0:
		return models.Unit{}, fmt.Errorf("pass --chain, --network or --magnitude")
	}

	if f.magnitude >= 0 {
		unit.Magnitude = f.magnitude
	}
	if f.code != "" {
		unit.Code = f.code
	}
	return unit, nil
}

// NewUnitsCmd creates the units command group
func NewUnitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "units",
		Short: "Convert between minor units and display amounts",
	}

	cmd.AddCommand(newUnitsFormatCmd())
	cmd.AddCommand(newUnitsParseCmd())
	return cmd
}

func newUnitsFormatCmd() *cobra.Command {
	var uf unitFlags
	var opts units.FormatOptions

	cmd := &cobra.Command{
		Use:   "format <minor-units>",
		Short: "Render a minor-unit amount for display",
		Long: `Render a minor-unit amount for display. Rounding truncates toward zero.

Examples:
  txprep units format --chain mainnet 1500000000000000000
  txprep units format --magnitude 6 --code USDC 1234567 --grouping`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			unit, err := uf.resolve(cmd, app)
			if err != nil {
				return err
			}

			value, err := decimal.NewFromString(args[0])
			if err != nil || !value.IsInteger() {
				return fmt.Errorf("%q is not a whole number of minor units", args[0])
			}

			opts.ShowCode = unit.Code != ""
			fmt.Fprintln(cmd.OutOrStdout(), units.Format(value, unit, opts))
			return nil
		},
	}

	uf.register(cmd)
	cmd.Flags().BoolVar(&opts.DisableRounding, "no-rounding", false, "Print every fractional digit the unit allows")
	cmd.Flags().BoolVar(&opts.ShowAllDigits, "all-digits", false, "Pad the fractional part with trailing zeros")
	cmd.Flags().BoolVar(&opts.UseGrouping, "grouping", false, "Insert thousands separators")
	cmd.Flags().Int32Var(&opts.MaxFractionDigits, "max-digits", 0, "Fraction digits kept when rounding (default 8)")
	return cmd
}

func newUnitsParseCmd() *cobra.Command {
	var uf unitFlags

	cmd := &cobra.Command{
		Use:   "parse <amount>",
		Short: "Convert a display amount to minor units",
		Long: `Convert a display amount to minor units. The amount may carry grouping
separators and a trailing unit code.

Examples:
  txprep units parse --chain mainnet 1.5
  txprep units parse --chain mainnet "1,000.25 ETH"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			unit, err := uf.resolve(cmd, app)
			if err != nil {
				return err
			}

			value, err := units.Parse(args[0], unit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value.String())
			return nil
		},
	}

	uf.register(cmd)
	return cmd
}
