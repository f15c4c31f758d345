package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RoundPrice rounds half away from zero at the second decimal place.
func RoundPrice(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatEuro renders an amount as "1 234,50 €".
func FormatEuro(amount decimal.Decimal) string {
	fixed := RoundPrice(amount).StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	parts := strings.SplitN(fixed, ".", 2)
	integerPart, decimalPart := parts[0], parts[1]

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	return sign + strings.Join(groups, " ") + "," + decimalPart + " €"
}
