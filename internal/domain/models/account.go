package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Account is a primary chain account. Balances are in minor units.
type Account struct {
	ID               string
	Name             string
	ChainID          string // chain registry key
	FreshAddress     string
	Balance          decimal.Decimal
	SpendableBalance decimal.Decimal
	Unit             Unit
	SubAccounts      []TokenAccount
}

// TokenAccount is a token holding nested under an Account
type TokenAccount struct {
	ID               string
	ParentID         string
	Token            Token
	Balance          decimal.Decimal
	SpendableBalance decimal.Decimal
}

// SubAccount looks up a token account by id
func (a *Account) SubAccount(id string) (*TokenAccount, bool) {
	for i := range a.SubAccounts {
		if a.SubAccounts[i].ID == id {
			return &a.SubAccounts[i], true
		}
	}
	return nil, false
}

// IsOwnAddress reports whether address is the account's receiving address
func (a *Account) IsOwnAddress(address string) bool {
	return a.FreshAddress != "" && strings.EqualFold(a.FreshAddress, address)
}
