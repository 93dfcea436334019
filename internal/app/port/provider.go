package port

import (
	"context"

	"balance_aggregator/internal/domain/entity"
	"balance_aggregator/internal/infrastructure/configloader"
)

// ChainProvider defines the interface for querying balances on one blockchain.
// Implementations are specific to a chain family (EVM, Solana).
type ChainProvider interface {
	// GetNativeBalance fetches the native currency balance (e.g., ETH, SOL)
	// for an address at the latest block.
	GetNativeBalance(ctx context.Context, address string) (entity.Balance, error)

	// GetTokenBalance fetches the balance of a specific token for an address.
	GetTokenBalance(ctx context.Context, address string, token entity.Token) (entity.Balance, error)
}

// ClientProvider resolves a ChainProvider for a chain configuration.
// Implementations cache underlying RPC clients per endpoint.
type ClientProvider interface {
	GetClient(chainCfg configloader.ChainConfig) (ChainProvider, error)
}
