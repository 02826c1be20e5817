// Package units converts between minor-unit amounts and display strings.
// All arithmetic goes through shopspring/decimal; no floating point.
package units

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/txprep/internal/domain"
	"github.com/trebuchet-org/txprep/internal/domain/models"
)

// FragmentKind identifies a piece of a formatted amount
type FragmentKind string

const (
	FragmentSign       FragmentKind = "sign"
	FragmentInteger    FragmentKind = "integer"
	FragmentSeparator  FragmentKind = "separator"
	FragmentFractional FragmentKind = "fractional"
	FragmentSpace      FragmentKind = "space"
	FragmentCode       FragmentKind = "code"
)

// Fragment is one piece of a formatted amount, for split rendering
type Fragment struct {
	Kind  FragmentKind
	Value string
}

// FormatOptions controls Format and FormatFragments
type FormatOptions struct {
	// ShowCode appends the unit code
	ShowCode bool
	// DisableRounding prints every fractional digit the unit allows
	DisableRounding bool
	// ShowAllDigits pads the fractional part with trailing zeros
	ShowAllDigits bool
	// MaxFractionDigits bounds the fractional part when rounding is enabled.
	// Zero means DefaultMaxFractionDigits.
	MaxFractionDigits int32
	// UseGrouping inserts thousands separators in the integer part
	UseGrouping bool
}

// DefaultMaxFractionDigits is the rounding bound when none is given
const DefaultMaxFractionDigits int32 = 8

const (
	decimalSeparator  = "."
	groupingSeparator = ","
)

var (
	amountPattern  = regexp.MustCompile(`^(\d+(\.\d+)?|\.\d+)$`)
	groupedPattern = regexp.MustCompile(`^\d{1,3}(,\d{3})+(\.\d+)?$`)
)

// FormatFragments splits a minor-unit amount into display fragments.
// Rounding truncates toward zero so a balance is never overstated.
func FormatFragments(value decimal.Decimal, unit models.Unit, opts FormatOptions) []Fragment {
	digits := unit.Magnitude
	if !opts.DisableRounding {
		limit := opts.MaxFractionDigits
		if limit <= 0 {
			limit = DefaultMaxFractionDigits
		}
		if limit < digits {
			digits = limit
		}
	}

	major := value.Shift(-unit.Magnitude).Truncate(digits)

	var fragments []Fragment
	if major.IsNegative() {
		fragments = append(fragments, Fragment{Kind: FragmentSign, Value: "-"})
	}

	integer, fractional, _ := strings.Cut(major.Abs().StringFixed(digits), decimalSeparator)
	if !opts.ShowAllDigits {
		fractional = strings.TrimRight(fractional, "0")
	}
	if opts.UseGrouping {
		integer = group(integer)
	}

	fragments = append(fragments, Fragment{Kind: FragmentInteger, Value: integer})
	if fractional != "" {
		fragments = append(fragments,
			Fragment{Kind: FragmentSeparator, Value: decimalSeparator},
			Fragment{Kind: FragmentFractional, Value: fractional},
		)
	}
	if opts.ShowCode && unit.Code != "" {
		fragments = append(fragments,
			Fragment{Kind: FragmentSpace, Value: " "},
			Fragment{Kind: FragmentCode, Value: unit.Code},
		)
	}
	return fragments
}

// Format renders a minor-unit amount in the given unit
func Format(value decimal.Decimal, unit models.Unit, opts FormatOptions) string {
	var sb strings.Builder
	for _, f := range FormatFragments(value, unit, opts) {
		sb.WriteString(f.Value)
	}
	return sb.String()
}

// Parse maps a display string back to a minor-unit amount. The string may
// carry grouping separators and a trailing unit code.
func Parse(input string, unit models.Unit) (decimal.Decimal, error) {
	fields := strings.Fields(input)
	switch {
	case len(fields) == 2 && strings.EqualFold(fields[1], unit.Code):
	case len(fields) == 1:
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrInvalidFormat, input)
	}

	s := fields[0]
	if strings.Contains(s, groupingSeparator) {
		if !groupedPattern.MatchString(s) {
			return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrInvalidFormat, input)
		}
		s = strings.ReplaceAll(s, groupingSeparator, "")
	}
	if !amountPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrInvalidFormat, input)
	}

	if strings.HasPrefix(s, decimalSeparator) {
		s = "0" + s
	}

	major, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q: %v", domain.ErrInvalidFormat, input, err)
	}

	minor := major.Shift(unit.Magnitude)
	if !minor.IsInteger() {
		return decimal.Zero, fmt.Errorf("%w: %q has more than %d decimals for %s",
			domain.ErrInvalidFormat, input, unit.Magnitude, unit.Code)
	}
	return minor, nil
}

// group inserts thousands separators into a run of digits
func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := len(digits) % 3
	var sb strings.Builder
	if head > 0 {
		sb.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteString(groupingSeparator)
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}
