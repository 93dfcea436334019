package entity

import "balance_aggregator/internal/pkg/utils"

// Balance represents the amount of a specific token held by an address on a chain.
// Formatted is derived from (Amount, Decimals) at construction time and is never
// mutated afterwards.
type Balance struct {
	Token     string `json:"token" yaml:"token"`
	Amount    string `json:"amount" yaml:"amount"`
	Decimals  uint8  `json:"decimals" yaml:"decimals"`
	Formatted string `json:"formatted" yaml:"formatted"`
}

// NewBalance builds a Balance from a raw integer amount (decimal string) and
// the token's decimal count, caching the human-readable form.
func NewBalance(token string, amount string, decimals uint8) Balance {
	return Balance{
		Token:     token,
		Amount:    amount,
		Decimals:  decimals,
		Formatted: utils.FormatAmount(amount, decimals),
	}
}
