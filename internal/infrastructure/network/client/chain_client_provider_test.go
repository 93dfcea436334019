package client

import (
	"testing"

	"balance_aggregator/internal/domain/entity"
	"balance_aggregator/internal/infrastructure/configloader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func TestGetClientUnsupportedChainType(t *testing.T) {
	provider := NewChainClientProvider(nopLogger{})

	_, err := provider.GetClient(configloader.ChainConfig{
		Type: "tron",
		Name: "Tron",
		RPC:  "https://example.invalid",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrUnsupportedChainType)
}

func TestGetClientCachesPerEndpoint(t *testing.T) {
	provider := NewChainClientProvider(nopLogger{})
	chainCfg := configloader.ChainConfig{
		Type:        configloader.ChainTypeSolana,
		Name:        "Solana Devnet",
		RPC:         "https://example.invalid",
		NativeToken: configloader.TokenInfo{Symbol: "SOL", Decimals: 9},
	}

	first, err := provider.GetClient(chainCfg)
	require.NoError(t, err)
	second, err := provider.GetClient(chainCfg)
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestSolanaClientRejectsInvalidAddress(t *testing.T) {
	provider := NewSolanaClient(configloader.ChainConfig{
		Type:        configloader.ChainTypeSolana,
		Name:        "Solana Devnet",
		RPC:         "https://example.invalid",
		NativeToken: configloader.TokenInfo{Symbol: "SOL", Decimals: 9},
	}, defaultRPCCallTimeout)

	_, err := provider.GetNativeBalance(t.Context(), "definitely-not-base58!!!")
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrInvalidAddress)
}

func TestEVMClientRejectsInvalidAddress(t *testing.T) {
	provider, err := NewEVMClient(configloader.ChainConfig{
		Type:        configloader.ChainTypeEVM,
		Name:        "Ethereum Sepolia",
		RPC:         "https://example.invalid",
		NativeToken: configloader.TokenInfo{Symbol: "ETH", Decimals: 18},
	}, defaultConnectionTimeout, defaultRPCCallTimeout)
	require.NoError(t, err)

	_, err = provider.GetNativeBalance(t.Context(), "not-an-address")
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrInvalidAddress)

	_, err = provider.GetTokenBalance(t.Context(), "not-an-address",
		entity.NewFungibleToken("0x1c7D4B196Cb0C7B01d743Fbc6116a902379C7238", "USDC", 6))
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrInvalidAddress)
}
