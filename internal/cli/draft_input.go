package cli

import (
	"context"
	"fmt"
	"math/big"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/txprep/internal/app"
	"github.com/trebuchet-org/txprep/internal/codec"
	"github.com/trebuchet-org/txprep/internal/domain"
	"github.com/trebuchet-org/txprep/internal/domain/models"
	"github.com/trebuchet-org/txprep/internal/units"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

var feesStrategies = []models.FeesStrategy{
	models.FeesStrategySlow,
	models.FeesStrategyMedium,
	models.FeesStrategyFast,
	models.FeesStrategyCustom,
}

// draftFlags collects the flags every draft-taking command shares. Flags
// given on the command line override the loaded draft.
type draftFlags struct {
	account      string
	to           string
	amount       string
	max          bool
	token        string
	feesStrategy string
	gasLimit     string
	draftFile    string
	draftID      string
}

func (f *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.account, "account", "a", "", "Sending account id (prompts when omitted)")
	cmd.Flags().StringVar(&f.to, "to", "", "Recipient address")
	cmd.Flags().StringVar(&f.amount, "amount", "", "Amount in display units (e.g. 1.5 or \"1.5 ETH\")")
	cmd.Flags().BoolVar(&f.max, "max", false, "Send the whole spendable balance")
	cmd.Flags().StringVar(&f.token, "token", "", "Token sub-account id for a token transfer")
	cmd.Flags().StringVar(&f.feesStrategy, "fees", "", "Fee strategy: slow, medium, fast or custom")
	cmd.Flags().StringVar(&f.gasLimit, "gas-limit", "", "Custom gas limit overriding the estimate")
	cmd.Flags().StringVar(&f.draftFile, "draft", "", "Load the draft from a raw JSON file")
	cmd.Flags().StringVar(&f.draftID, "draft-id", "", "Load a saved draft")
	cmd.MarkFlagsMutuallyExclusive("draft", "draft-id")
	cmd.MarkFlagsMutuallyExclusive("amount", "max")
}

// build resolves the sending account and assembles the draft
func (f *draftFlags) build(ctx context.Context, a *app.App) (*models.Account, models.Transaction, error) {
	accountID := f.account
	if accountID == "" {
		accountID = a.Config.DefaultAccount
	}
	params := usecase.ResolveAccountParams{
		AccountID:      accountID,
		NonInteractive: a.Config.NonInteractive,
	}
	if a.Config.Network != nil {
		params.Network = a.Config.Network.Name
	}
	account, err := a.ResolveAccount.Run(ctx, params)
	if err != nil {
		return nil, models.Transaction{}, err
	}

	tx, err := f.base(ctx, a)
	if err != nil {
		return nil, models.Transaction{}, err
	}

	if f.to != "" {
		tx.Recipient = f.to
	}
	if f.token != "" {
		tx.SubAccountID = f.token
	}
	if f.max {
		tx.UseAllAmount = true
	}
	if f.amount != "" {
		unit := account.Unit
		if tx.SubAccountID != "" {
			token, ok := account.SubAccount(tx.SubAccountID)
			if !ok {
				return nil, models.Transaction{}, fmt.Errorf("%w: %s on account %s", domain.ErrSubAccountNotFound, tx.SubAccountID, account.ID)
			}
			unit = token.Token.Unit()
		}
		amount, err := units.Parse(f.amount, unit)
		if err != nil {
			return nil, models.Transaction{}, fmt.Errorf("invalid --amount: %w", err)
		}
		tx.Amount = amount
		tx.UseAllAmount = false
	}
	if f.feesStrategy != "" {
		strategy := models.FeesStrategy(f.feesStrategy)
		if !lo.Contains(feesStrategies, strategy) {
			return nil, models.Transaction{}, fmt.Errorf("invalid --fees %q, expected one of %v", f.feesStrategy, feesStrategies)
		}
		tx.FeesStrategy = strategy
	}
	if f.gasLimit != "" {
		limit, ok := new(big.Int).SetString(f.gasLimit, 10)
		if !ok || limit.Sign() <= 0 {
			return nil, models.Transaction{}, fmt.Errorf("invalid --gas-limit %q", f.gasLimit)
		}
		tx.CustomGasLimit = limit
	}

	if tx.Family == "" {
		tx.Family = models.FamilyEVM
	}
	if tx.Mode == "" {
		tx.Mode = models.ModeSend
	}
	return account, tx, nil
}

func (f *draftFlags) base(ctx context.Context, a *app.App) (models.Transaction, error) {
	switch {
	case f.draftFile != "":
		return readRawTransaction(f.draftFile)
	case f.draftID != "":
		return a.LoadDraft.Run(ctx, f.draftID)
	}
	return models.Transaction{}, nil
}

func readRawTransaction(path string) (models.Transaction, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied path
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	tx, err := codec.Unmarshal(data)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return tx, nil
}

func writeRawTransaction(path string, tx models.Transaction) error {
	data, err := codec.Marshal(tx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil { //nolint:gosec // user-supplied path
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
