package domain

import (
	"sort"
	"strings"
)

// ValidationError classifies a field-scoped validation failure. Validation
// failures are returned as values, never raised.
type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

// Field-scoped errors
const (
	ErrRecipientRequired        ValidationError = "RecipientRequired"
	ErrInvalidAddressFormat     ValidationError = "InvalidAddressFormat"
	ErrRecipientIsSenderAddress ValidationError = "RecipientIsSenderAddress"
	ErrNotEnoughBalance         ValidationError = "NotEnoughBalance"
	ErrAmountRequired           ValidationError = "AmountRequired"
	ErrNotEnoughGas             ValidationError = "NotEnoughGas"
)

// Advisory warnings, never fatal
const (
	WarnAddressNotChecksummed ValidationError = "AddressNotChecksummed"
	WarnFlaggedRecipient      ValidationError = "FlaggedRecipient"
)

// Field names used as FieldErrors keys
const (
	FieldRecipient = "recipient"
	FieldAmount    = "amount"
	FieldFees      = "fees"
)

// FieldErrors maps a field name to its classification. Empty means valid.
type FieldErrors map[string]ValidationError

// Merge returns a new map holding both sets, other taking precedence.
func (f FieldErrors) Merge(other FieldErrors) FieldErrors {
	merged := make(FieldErrors, len(f)+len(other))
	for k, v := range f {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Empty reports whether no field failed.
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

func (f FieldErrors) String() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+string(f[k]))
	}
	return strings.Join(parts, ", ")
}
