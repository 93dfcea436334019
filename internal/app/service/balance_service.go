package service

import (
	"context"
	"fmt"
	"sort"

	"balance_aggregator/internal/app/port"
	"balance_aggregator/internal/domain/entity"
	"balance_aggregator/internal/infrastructure/configloader"

	"golang.org/x/sync/errgroup"
)

// BalanceServiceImpl implements port.BalanceService.
type BalanceServiceImpl struct {
	cfg            *configloader.Config
	clientProvider port.ClientProvider
	logger         port.Logger
}

// NewBalanceService creates a new BalanceServiceImpl. The config is an
// immutable value injected at construction so the service stays testable
// with fake chain sets.
func NewBalanceService(cfg *configloader.Config, cp port.ClientProvider, l port.Logger) port.BalanceService {
	return &BalanceServiceImpl{
		cfg:            cfg,
		clientProvider: cp,
		logger:         l,
	}
}

// GetBalances resolves the chain, selects a provider and fans out over the
// native token plus every configured token with a contract address.
func (s *BalanceServiceImpl) GetBalances(ctx context.Context, chainName, address string) ([]entity.Balance, error) {
	chainCfg, ok := s.cfg.GetChain(chainName)
	if !ok {
		return nil, fmt.Errorf("%w: %q not found in configuration", entity.ErrUnknownChain, chainName)
	}

	provider, err := s.clientProvider.GetClient(chainCfg)
	if err != nil {
		return nil, err
	}

	tokens := configuredTokens(chainCfg)
	s.logger.Debug("Fetching balances", "chain", chainName, "address", address, "token_count", len(tokens))

	balances, err := FetchAllBalances(ctx, provider, address, tokens)
	if err != nil {
		s.logger.Error("Balance query failed", "chain", chainName, "address", address, "error", err)
		return nil, err
	}

	s.logger.Info("Balance query completed", "chain", chainName, "address", address, "balances", len(balances))
	return balances, nil
}

// configuredTokens turns a chain's token map into an ordered token list.
// Map iteration order is not stable, so entries are sorted by symbol to keep
// the output deterministic. Entries without a contract address are skipped:
// there is nothing to query for them.
func configuredTokens(chainCfg configloader.ChainConfig) []entity.Token {
	tokens := make([]entity.Token, 0, len(chainCfg.Tokens))
	for symbol, info := range chainCfg.Tokens {
		if info.Address == "" {
			continue
		}
		if info.Symbol != "" {
			symbol = info.Symbol
		}
		tokens = append(tokens, entity.NewFungibleToken(info.Address, symbol, info.Decimals))
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i].Symbol < tokens[j].Symbol })
	return tokens
}

// FetchAllBalances is the composite balance operation over a ChainProvider:
// the native balance always occupies position 0, followed by one entry per
// token in the given order. Token fetches run concurrently, but results are
// reassembled in the input order and the first error fails the whole call
// with no partial result.
func FetchAllBalances(ctx context.Context, provider port.ChainProvider, address string, tokens []entity.Token) ([]entity.Balance, error) {
	native, err := provider.GetNativeBalance(ctx, address)
	if err != nil {
		return nil, err
	}

	tokenBalances := make([]entity.Balance, len(tokens))
	g, gctx := errgroup.WithContext(ctx)
	for i, token := range tokens {
		g.Go(func() error {
			balance, err := provider.GetTokenBalance(gctx, address, token)
			if err != nil {
				return err
			}
			tokenBalances[i] = balance
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	balances := make([]entity.Balance, 0, len(tokens)+1)
	balances = append(balances, native)
	balances = append(balances, tokenBalances...)
	return balances, nil
}
