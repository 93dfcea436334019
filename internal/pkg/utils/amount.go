package utils

import (
	"fmt"
	"math/big"
	"strings"
)

// FormatAmount converts a raw integer amount (base-10 string) into a
// human-readable decimal string using the given number of decimals.
// Example: amount="1234500000000000000", decimals=18 => "1.2345"
//
// The conversion is exact integer math, no rounding and no locale
// formatting. An unparsable or negative amount degrades to zero instead of
// failing: at this point the balance itself was already fetched
// successfully, and a formatting hiccup must not discard it. Fetch errors
// are surfaced long before this function runs.
func FormatAmount(amount string, decimals uint8) string {
	value, ok := new(big.Int).SetString(strings.TrimSpace(amount), 10)
	if !ok || value.Sign() < 0 {
		value = big.NewInt(0)
	}

	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)

	whole := new(big.Int)
	fractional := new(big.Int)
	whole.QuoRem(value, divisor, fractional)

	if fractional.Sign() == 0 {
		return whole.String()
	}

	fracStr := fmt.Sprintf("%0*s", int(decimals), fractional.String())
	fracStr = strings.TrimRight(fracStr, "0")
	return whole.String() + "." + fracStr
}
