package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseCommaDecimal converts a decimal-comma price token ("1,20") into a
// decimal value. Receipts use the comma as decimal separator; no thousands
// separators appear in the observed format.
func ParseCommaDecimal(s string) (decimal.Decimal, error) {
	normalized := strings.Replace(strings.TrimSpace(s), ",", ".", 1)
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price value %q: %w", s, err)
	}
	return d, nil
}

// FormatAmount renders a decimal with exactly two decimal places for CSV
// output, matching the precision of the source receipts.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Price is a money value in an ItemRecord. It marshals to CSV with
// exactly two decimal places ("2.40", never "2.4"), which plain
// decimal.Decimal does not: its text form trims trailing zeros.
type Price struct {
	decimal.Decimal
}

// NewPrice wraps a decimal value as a Price.
func NewPrice(d decimal.Decimal) Price {
	return Price{Decimal: d}
}

// MarshalCSV renders the price with two decimal places.
func (p Price) MarshalCSV() (string, error) {
	return p.StringFixed(2), nil
}

// UnmarshalCSV parses a dot-decimal CSV field. An empty field is the
// zero price, so files with an absent optional column still load.
func (p *Price) UnmarshalCSV(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		p.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return fmt.Errorf("invalid price value %q: %w", value, err)
	}
	p.Decimal = d
	return nil
}
