// Package validation checks drafts against account state. Every function is
// pure, so callers can run them on each keystroke.
package validation

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/txprep/internal/domain"
	"github.com/trebuchet-org/txprep/internal/domain/config"
	"github.com/trebuchet-org/txprep/internal/domain/models"
	"github.com/trebuchet-org/txprep/internal/fees"
)

// Totals are the amounts a draft moves. For token transfers Amount and
// TotalSpent are in token minor units and EstimatedFees in the base asset.
type Totals struct {
	Amount        decimal.Decimal
	EstimatedFees decimal.Decimal
	TotalSpent    decimal.Decimal
}

// ComputeTotals derives the totals of a draft
func ComputeTotals(tx models.Transaction) Totals {
	estimated := fees.EstimatedFees(tx)
	if tx.IsTokenTransfer() {
		return Totals{Amount: tx.Amount, EstimatedFees: estimated, TotalSpent: tx.Amount}
	}
	return Totals{Amount: tx.Amount, EstimatedFees: estimated, TotalSpent: tx.Amount.Add(estimated)}
}

// ValidateRecipient checks the recipient field. Warnings are advisory and
// never block a transaction.
func ValidateRecipient(account *models.Account, tx models.Transaction, chain *config.Chain) (errs, warnings domain.FieldErrors) {
	errs = domain.FieldErrors{}
	warnings = domain.FieldErrors{}

	recipient := strings.TrimSpace(tx.Recipient)
	switch {
	case recipient == "":
		errs[domain.FieldRecipient] = domain.ErrRecipientRequired
		return errs, warnings
	case !IsValidAddress(recipient):
		errs[domain.FieldRecipient] = domain.ErrInvalidAddressFormat
		return errs, warnings
	case account.IsOwnAddress(recipient):
		errs[domain.FieldRecipient] = domain.ErrRecipientIsSenderAddress
		return errs, warnings
	}

	if chain != nil && isFlagged(chain.FlaggedAddresses, recipient) {
		warnings[domain.FieldRecipient] = domain.WarnFlaggedRecipient
	} else if !isChecksummed(recipient) {
		warnings[domain.FieldRecipient] = domain.WarnAddressNotChecksummed
	}
	return errs, warnings
}

// ValidateAmount checks the amount against the spendable balance. token is
// nil for coin transfers. Token transfers are checked against the token
// balance only, fees being paid in the base asset.
func ValidateAmount(account *models.Account, token *models.TokenAccount, tx models.Transaction, totals Totals) domain.FieldErrors {
	errs := domain.FieldErrors{}

	if !totals.Amount.IsPositive() {
		if tx.UseAllAmount {
			errs[domain.FieldAmount] = domain.ErrNotEnoughBalance
		} else {
			errs[domain.FieldAmount] = domain.ErrAmountRequired
		}
		return errs
	}

	if token != nil {
		if totals.Amount.GreaterThan(token.SpendableBalance) {
			errs[domain.FieldAmount] = domain.ErrNotEnoughBalance
		}
		return errs
	}

	if totals.TotalSpent.GreaterThan(account.SpendableBalance) {
		errs[domain.FieldAmount] = domain.ErrNotEnoughBalance
	}
	return errs
}

// ValidateGas checks that the parent account can pay a token transfer's fees
func ValidateGas(account *models.Account, token *models.TokenAccount, totals Totals) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if token != nil && totals.EstimatedFees.GreaterThan(account.SpendableBalance) {
		errs[domain.FieldFees] = domain.ErrNotEnoughGas
	}
	return errs
}

// IsValidAddress reports whether s is a 0x-prefixed 20-byte hex address.
// Mixed-case addresses must carry a valid EIP-55 checksum.
func IsValidAddress(s string) bool {
	if !strings.HasPrefix(s, "0x") || !common.IsHexAddress(s) {
		return false
	}
	if isSingleCase(s[2:]) {
		return true
	}
	return common.HexToAddress(s).Hex() == s
}

func isChecksummed(s string) bool {
	return !isSingleCase(s[2:]) || strings.IndexFunc(s[2:], isHexLetter) < 0
}

func isSingleCase(hex string) bool {
	return hex == strings.ToLower(hex) || hex == strings.ToUpper(hex)
}

func isHexLetter(r rune) bool {
	return (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isFlagged(flagged []string, address string) bool {
	for _, f := range flagged {
		if strings.EqualFold(f, address) {
			return true
		}
	}
	return false
}
