package entity

// TokenKind discriminates the closed set of token variants that can be queried.
type TokenKind int

const (
	// TokenKindFungible is a contract/mint based fungible token (ERC-20, SPL).
	TokenKindFungible TokenKind = iota
)

// Token is a tagged union over the token variants. Consumers must switch on
// Kind exhaustively so that adding a variant breaks loudly, not silently.
type Token struct {
	Kind            TokenKind
	ContractAddress string
	Symbol          string
	Decimals        uint8
}

// NewFungibleToken constructs the fungible variant.
func NewFungibleToken(contractAddress, symbol string, decimals uint8) Token {
	return Token{
		Kind:            TokenKindFungible,
		ContractAddress: contractAddress,
		Symbol:          symbol,
		Decimals:        decimals,
	}
}
