// Package utils
package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// StrToDecimal parses a token quantity, unparsable input counts as zero.
func StrToDecimal(data string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(data))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// SubtractAmounts returns a - b as a decimal string.
func SubtractAmounts(a, b string) string {
	return StrToDecimal(a).Sub(StrToDecimal(b)).String()
}

// FloatToAmount renders a UI amount without exponent notation.
func FloatToAmount(f float64) string {
	return decimal.NewFromFloat(f).String()
}
