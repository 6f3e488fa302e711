// Package money converts between decimal amount strings and integer cents.
package money

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/shopspring/decimal"
)

// amountPattern is the accepted user input shape: digits with at most 2 decimals.
var amountPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

var hundred = decimal.NewFromInt(100)

// ParseAmount converts a user-entered amount to cents. The value is taken as exact.
// Empty, malformed, zero and negative inputs are rejected with ErrValidation.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: amount is required", apperrors.ErrValidation)
	}
	if !amountPattern.MatchString(s) {
		return 0, fmt.Errorf("%w: invalid amount %q, expected digits with up to 2 decimals", apperrors.ErrValidation, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid amount %q", apperrors.ErrValidation, s)
	}
	cents, err := toCents(d)
	if err != nil {
		return 0, err
	}
	if cents <= 0 {
		return 0, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	return cents, nil
}

// FormatCents renders cents as "-?whole.frac" with a two digit fraction.
func FormatCents(cents int64) string {
	sign := ""
	var abs uint64
	if cents < 0 {
		sign = "-"
		abs = uint64(-(cents + 1)) + 1 // safe for math.MinInt64
	} else {
		abs = uint64(cents)
	}
	return fmt.Sprintf("%s%s.%02d", sign, strconv.FormatUint(abs/100, 10), abs%100)
}

// ToDecimal returns cents as a decimal major-unit value.
func ToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ConvertToBaseCents multiplies a loosely formatted amount ("10,5" or "10.50")
// by rate and rounds half-up to whole cents.
func ConvertToBaseCents(amount string, rate decimal.Decimal) (int64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(amount), ",", ".")
	if normalized == "" {
		return 0, fmt.Errorf("%w: amount is required", apperrors.ErrValidation)
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid amount %q", apperrors.ErrValidation, amount)
	}
	if !rate.IsPositive() {
		return 0, fmt.Errorf("%w: rate must be positive, got %s", apperrors.ErrValidation, rate)
	}
	// decimal.Round rounds half away from zero, which is half-up for the positive amounts accepted here.
	return toCents(d.Mul(rate).Round(2))
}

func toCents(d decimal.Decimal) (int64, error) {
	scaled := d.Mul(hundred).Round(0)
	bi := scaled.BigInt()
	if !bi.IsInt64() || bi.Int64() == math.MinInt64 {
		return 0, fmt.Errorf("%w: amount %s is out of range", apperrors.ErrValidation, d)
	}
	return bi.Int64(), nil
}
