package port

import (
	"context"

	"balance_aggregator/internal/domain/entity"
)

// BalanceService defines the interface for the multi-chain balance query.
type BalanceService interface {
	// GetBalances resolves the chain configuration for chainName and returns
	// the native balance followed by every configured token balance for the
	// address. Any failure aborts the whole query; no partial list is returned.
	GetBalances(ctx context.Context, chainName, address string) ([]entity.Balance, error)
}
