// Package currencyutils provides common currency and decimal operations used throughout the application.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// SymbolBRL is the display symbol of the Brazilian real.
const SymbolBRL = "R$"

var currencyMarks = regexp.MustCompile(`(?i)BRL|CHF|EUR|USD|R\$|[€$£\s\x{00A0}]`)

var hundred = decimal.NewFromInt(100)

// ParseAmount parses a string representation of an amount into a decimal value
// It handles various formats like "R$ 1.234,56", "1.234,56", "1,234.56", "1234.56", "1234,56"
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, nil
	}

	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// StandardizeAmount converts various currency string formats to a standard format that can be parsed by decimal.NewFromString
// Dots alone are thousands separators when every group after the first has
// exactly three digits ("1.500", "1.234.567"); otherwise a lone dot is the
// decimal separator ("1234.56").
func StandardizeAmount(amountStr string) string {
	amountStr = currencyMarks.ReplaceAllString(amountStr, "")
	amountStr = strings.ReplaceAll(amountStr, "'", "")

	hasComma := strings.Contains(amountStr, ",")
	hasDot := strings.Contains(amountStr, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// 1.234,56
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case hasComma:
		parts := strings.Split(amountStr, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case hasDot:
		if dotGrouped(amountStr) {
			amountStr = strings.ReplaceAll(amountStr, ".", "")
		}
	}

	return amountStr
}

// dotGrouped reports whether s reads as digits grouped by thousands with dots.
func dotGrouped(s string) bool {
	groups := strings.Split(strings.TrimPrefix(s, "-"), ".")
	lead := groups[0]
	if lead == "" || len(lead) > 3 || lead[0] == '0' || !allDigits(lead) {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 || !allDigits(g) {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatAmount formats an amount the way Brazilian Portuguese displays money:
// dot thousands separator, comma decimal separator, two decimals, and the
// symbol in front ("R$ 1.234,56", "-R$ 10,00"). An empty symbol omits it.
func FormatAmount(amount decimal.Decimal, symbol string) string {
	rounded := amount.Round(2)
	fixed := rounded.Abs().StringFixed(2)
	intPart, fracPart := fixed[:len(fixed)-3], fixed[len(fixed)-2:]

	formatted := groupThousands(intPart) + "," + fracPart
	if symbol != "" {
		formatted = symbol + " " + formatted
	}
	if rounded.IsNegative() {
		formatted = "-" + formatted
	}
	return formatted
}

// FormatBRL formats an amount in Brazilian reais.
func FormatBRL(amount decimal.Decimal) string {
	return FormatAmount(amount, SymbolBRL)
}

// FormatPercent renders a ratio (0.4) as a whole percentage ("40%").
func FormatPercent(ratio decimal.Decimal) string {
	return ratio.Mul(hundred).Round(0).String() + "%"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
