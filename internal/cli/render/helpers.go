package render

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/txprep/internal/domain"
	"github.com/trebuchet-org/txprep/internal/domain/models"
	"github.com/trebuchet-org/txprep/internal/units"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Color styles shared by the renderers
var (
	labelStyle         = color.New(color.Faint)
	addressStyle       = color.New(color.FgWhite)
	amountStyle        = color.New(color.FgCyan, color.Bold)
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
	errorStyle         = color.New(color.FgRed)
	warningStyle       = color.New(color.FgYellow)
)

var titleCaser = cases.Title(language.English)

var gwei = models.Unit{Name: "gwei", Code: "gwei", Magnitude: 9}

type TableData [][]string

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return warningStyle.Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Extract just the error message part (after the last colon if it's an error chain)
	parts := strings.Split(message, ": ")
	msg := parts[len(parts)-1]

	// Capitalize first letter
	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return errorStyle.Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// Title title-cases a dash-separated label
func Title(label string) string {
	return titleCaser.String(strings.ReplaceAll(label, "-", " "))
}

// FormatAmount renders a minor-unit amount with its unit code
func FormatAmount(value decimal.Decimal, unit models.Unit) string {
	return units.Format(value, unit, units.FormatOptions{ShowCode: true, UseGrouping: true})
}

// FormatGwei renders a per-gas price in gwei
func FormatGwei(price fmt.Stringer) string {
	d, err := decimal.NewFromString(price.String())
	if err != nil {
		return price.String()
	}
	return units.Format(d, gwei, units.FormatOptions{ShowCode: true, MaxFractionDigits: 4})
}

// fieldMessages describes validation codes for humans
var fieldMessages = map[domain.ValidationError]string{
	domain.ErrRecipientRequired:        "a recipient is required",
	domain.ErrInvalidAddressFormat:     "not a valid address",
	domain.ErrRecipientIsSenderAddress: "recipient is the sending address",
	domain.ErrNotEnoughBalance:         "not enough balance",
	domain.ErrAmountRequired:           "an amount is required",
	domain.ErrNotEnoughGas:             "not enough balance to pay the network fees",
	domain.WarnAddressNotChecksummed:   "address is not checksummed, double-check it",
	domain.WarnFlaggedRecipient:        "recipient is flagged for this chain",
}

// renderFieldErrors prints one line per field, sorted by field name
func renderFieldErrors(out io.Writer, fields domain.FieldErrors, format func(string) string) {
	for _, line := range strings.Split(fields.String(), ", ") {
		if line == "" {
			continue
		}
		field, code, _ := strings.Cut(line, ": ")
		msg := fieldMessages[domain.ValidationError(code)]
		if msg == "" {
			msg = code
		}
		fmt.Fprintf(out, "  %s\n", format(fmt.Sprintf("%s: %s (%s)", field, msg, code)))
	}
}

// fieldErrorsJSON flattens validation codes for JSON output
func fieldErrorsJSON(fields domain.FieldErrors) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = string(v)
	}
	return out
}

// RenderJSON writes v as indented JSON
func RenderJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// renderKeyValues renders label/value rows as a borderless two-column table
func renderKeyValues(out io.Writer, rows TableData) {
	if len(rows) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingLeft:  "  ",
		PaddingRight: "   ",
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
	})

	for _, row := range rows {
		tableRow := make(table.Row, len(row))
		for i, cell := range row {
			if i == 0 {
				cell = labelStyle.Sprint(cell)
			}
			tableRow[i] = cell
		}
		t.AppendRow(tableRow)
	}

	fmt.Fprintln(out, t.Render())
}

// renderTable renders rows under a header with the light style
func renderTable(out io.Writer, header table.Row, rows TableData) {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	for _, row := range rows {
		tableRow := make(table.Row, len(row))
		for i, cell := range row {
			tableRow[i] = cell
		}
		t.AppendRow(tableRow)
	}
	fmt.Fprintln(out, t.Render())
}

// stripAnsiCodes removes ANSI escape sequences from a string
func stripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[mGKHF]`)
