package client

import (
	"fmt"
	"sync"
	"time"

	"balance_aggregator/internal/app/port"
	"balance_aggregator/internal/domain/entity"
	"balance_aggregator/internal/infrastructure/configloader"
)

const (
	defaultConnectionTimeout = 10 * time.Second
	defaultRPCCallTimeout    = 15 * time.Second
)

// chainClientProvider implements port.ClientProvider. It caches one provider
// per RPC endpoint to avoid redialing between queries.
type chainClientProvider struct {
	clients        map[string]port.ChainProvider
	mu             sync.Mutex
	logger         port.Logger
	connTimeout    time.Duration
	rpcCallTimeout time.Duration
}

// NewChainClientProvider creates a new provider factory for all supported
// chain families.
func NewChainClientProvider(logger port.Logger) port.ClientProvider {
	return &chainClientProvider{
		clients:        make(map[string]port.ChainProvider),
		logger:         logger,
		connTimeout:    defaultConnectionTimeout,
		rpcCallTimeout: defaultRPCCallTimeout,
	}
}

// GetClient returns a ChainProvider for the chain configuration, creating and
// caching one when the endpoint has not been seen yet.
func (p *chainClientProvider) GetClient(chainCfg configloader.ChainConfig) (port.ChainProvider, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	clientKey := chainCfg.Type + "|" + chainCfg.RPC
	if cached, exists := p.clients[clientKey]; exists {
		p.logger.Debug("Returning cached chain client", "chain", chainCfg.Name, "type", chainCfg.Type)
		return cached, nil
	}

	p.logger.Info("Creating new chain client", "chain", chainCfg.Name, "type", chainCfg.Type, "rpc", chainCfg.RPC)

	var (
		provider port.ChainProvider
		err      error
	)
	switch chainCfg.Type {
	case configloader.ChainTypeEVM:
		provider, err = NewEVMClient(chainCfg, p.connTimeout, p.rpcCallTimeout)
	case configloader.ChainTypeSolana:
		provider = NewSolanaClient(chainCfg, p.rpcCallTimeout)
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedChainType, chainCfg.Type)
	}
	if err != nil {
		p.logger.Error("Failed to create chain client", "chain", chainCfg.Name, "error", err)
		return nil, fmt.Errorf("failed to create client for %s: %w", chainCfg.Name, err)
	}

	p.clients[clientKey] = provider
	return provider, nil
}
