package models

import (
	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/txprep/internal/domain"
)

// TransactionStatus is the outcome of validating a draft for live feedback
type TransactionStatus struct {
	Errors        domain.FieldErrors
	Warnings      domain.FieldErrors
	EstimatedFees decimal.Decimal
	Amount        decimal.Decimal
	TotalSpent    decimal.Decimal
}

// Valid reports whether no blocking error was found
func (s TransactionStatus) Valid() bool {
	return s.Errors.Empty()
}
