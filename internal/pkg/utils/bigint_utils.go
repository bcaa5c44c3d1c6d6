package utils

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// FormatBigInt renders amount / 10^decimals as an exact decimal string with
// trailing zeros trimmed.
// Example: amount=1234500000000000000, decimals=18 => "1.2345"
func FormatBigInt(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -int32(decimals)).String()
}

// ParseUnits is the inverse of FormatBigInt: it scales a decimal string by
// 10^decimals and fails if the result is not an integer.
func ParseUnits(value string, decimals uint8) (*big.Int, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid decimal %q: %w", value, err)
	}
	scaled := d.Shift(int32(decimals))
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, fmt.Errorf("%q has more than %d fractional digits", value, decimals)
	}
	return scaled.BigInt(), nil
}
