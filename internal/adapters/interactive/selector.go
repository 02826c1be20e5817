package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/txprep/internal/domain/config"
	"github.com/trebuchet-org/txprep/internal/domain/models"
	"github.com/trebuchet-org/txprep/internal/units"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) (*SelectorAdapter, error) {
	return &SelectorAdapter{config: cfg}, nil
}

// SelectAccount selects an account from a list
func (s *SelectorAdapter) SelectAccount(ctx context.Context, accounts []*models.Account, prompt string) (*models.Account, error) {
	// In non-interactive mode, we can't select
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(accounts) == 0 {
		return nil, fmt.Errorf("no accounts provided for selection")
	}

	// If only one match, return it directly
	if len(accounts) == 1 {
		return accounts[0], nil
	}

	options := formatAccountOptions(accounts)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return accounts[index], nil
}

// formatAccountOptions creates display strings for account selection
func formatAccountOptions(accounts []*models.Account) []string {
	options := make([]string, len(accounts))
	for i, account := range accounts {
		// Format as "name [chain] 0xabc… 1.5 ETH"
		name := account.Name
		if name == "" {
			name = account.ID
		}

		nameStr := color.New(color.FgWhite, color.Bold).Sprint(name)
		chainStr := color.New(color.FgYellow).Sprintf("[%s]", account.ChainID)
		addrStr := color.New(color.FgBlue).Sprint(shortAddress(account.FreshAddress))
		balance := units.Format(account.SpendableBalance, account.Unit, units.FormatOptions{ShowCode: true})

		options[i] = fmt.Sprintf("%s %s %s %s", nameStr, chainStr, addrStr, balance)
	}
	return options
}

func shortAddress(address string) string {
	if len(address) <= 12 {
		return address
	}
	return address[:6] + "…" + address[len(address)-4:]
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		// Convert to lowercase for case-insensitive search
		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		// First try simple substring match
		if strings.Contains(item, input) {
			return true
		}

		// Then try fuzzy match
		pattern := fuzzy.Find(input, []string{item})
		return len(pattern) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.AccountSelector = (*SelectorAdapter)(nil)
