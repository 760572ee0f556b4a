// Package money implements the fixed-point amounts used throughout the
// ledger. Currency amounts are int64 minor units (cents, two decimals);
// concept rates are int64 ten-thousandths (four decimals), so a rate of
// 0.03 is stored as 300.
package money

import (
	"fmt"

	"github.com/ospinae/termledger/internal/common"
)

const (
	// CurrencyScale is the number of minor units per currency unit.
	CurrencyScale = 100

	// RateScale is the denominator for concept rates: a stored rate r
	// represents the fraction r/RateScale, so valid rates live in
	// [0, RateScale].
	RateScale = 10000

	// MaxFixedCommission caps FIXED concept values at 1,000,000.00
	// currency units. The exact ceiling is a business knob, kept in one
	// place so it can move without touching validation code.
	MaxFixedCommission int64 = 1_000_000 * CurrencyScale
)

// ValidRate reports whether r is a well-formed rate fraction.
func ValidRate(r int64) bool {
	return r >= 0 && r <= RateScale
}

// ValidFixed reports whether v is a well-formed FIXED commission value.
func ValidFixed(v int64) bool {
	return v >= 0 && v <= MaxFixedCommission
}

// RateCommission computes round-half-up(amount × rate / RateScale) in minor
// units. Both arguments must be non-negative; the rate must not exceed
// RateScale.
func RateCommission(amount, rate int64) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: negative amount", common.ErrValidation)
	}
	if !ValidRate(rate) {
		return 0, fmt.Errorf("%w: rate %d out of range [0, %d]", common.ErrValidation, rate, RateScale)
	}
	return (amount*rate + RateScale/2) / RateScale, nil
}

// Format renders minor units as a decimal string with two fractional
// digits, e.g. 12345 -> "123.45". Used for audit details and CSV export.
func Format(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/CurrencyScale, minor%CurrencyScale)
}
