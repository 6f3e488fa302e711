package domain

import "strings"

// MoneyAmount is an exact amount in minor units (cents) of a currency.
type MoneyAmount struct {
	Cents    int64  `json:"cents"`
	Currency string `json:"currency"`
}

// NormalizeCurrency upper-cases and trims a currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidCurrency reports whether code is 3 to 8 upper-case ASCII letters.
func IsValidCurrency(code string) bool {
	if len(code) < 3 || len(code) > 8 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
