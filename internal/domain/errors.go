package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrAccountNotFound is returned when the account store has no such account
	ErrAccountNotFound = errors.New("account not found")

	// ErrSubAccountNotFound is returned when a draft references a sub-account
	// the parent account doesn't hold
	ErrSubAccountNotFound = errors.New("sub-account not found")

	// ErrUnknownChain is returned when a chain name or id has no configuration
	ErrUnknownChain = errors.New("unknown chain")

	// ErrInvalidFormat is returned when an amount string can't be mapped to
	// minor units at the unit's precision
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrChainMismatch is returned when an RPC endpoint reports another chain id
	ErrChainMismatch = errors.New("chain ID mismatch")
)

// EncodingError reports malformed raw input for a single field.
type EncodingError struct {
	Field string
	Value string
	Err   error
}

func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid raw field %s=%q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid raw field %s=%q", e.Field, e.Value)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// NetworkError wraps a failure coming from the network boundary.
type NetworkError struct {
	Op    string
	Chain string
	Err   error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s on %s: %v", e.Op, e.Chain, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UnknownChainErr carries close matches for an unresolvable chain name.
type UnknownChainErr struct {
	Name        string
	Suggestions []string
}

func (e UnknownChainErr) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown chain %q", e.Name)
	}
	return fmt.Sprintf("unknown chain %q, did you mean: %s", e.Name, strings.Join(e.Suggestions, ", "))
}

func (e UnknownChainErr) Is(target error) bool {
	return target == ErrUnknownChain
}
