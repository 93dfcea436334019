package service

import (
	"context"
	"sync"
	"testing"

	"balance_aggregator/internal/app/port"
	"balance_aggregator/internal/domain/entity"
	"balance_aggregator/internal/infrastructure/configloader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider returns canned balances and can be scripted to fail for
// specific token symbols.
type stubProvider struct {
	nativeSymbol string
	failNative   bool
	failSymbols  map[string]error

	mu         sync.Mutex
	tokenCalls []string
}

func (s *stubProvider) GetNativeBalance(_ context.Context, _ string) (entity.Balance, error) {
	if s.failNative {
		return entity.Balance{}, entity.ErrProviderUnavailable
	}
	return entity.NewBalance(s.nativeSymbol, "1000000000000000000", 18), nil
}

func (s *stubProvider) GetTokenBalance(_ context.Context, _ string, token entity.Token) (entity.Balance, error) {
	s.mu.Lock()
	s.tokenCalls = append(s.tokenCalls, token.Symbol)
	s.mu.Unlock()

	if err, ok := s.failSymbols[token.Symbol]; ok {
		return entity.Balance{}, err
	}
	return entity.NewBalance(token.Symbol, "1500000", token.Decimals), nil
}

type stubClientProvider struct {
	provider port.ChainProvider
	err      error
}

func (s *stubClientProvider) GetClient(_ configloader.ChainConfig) (port.ChainProvider, error) {
	return s.provider, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func testConfig(tokens map[string]configloader.TokenInfo) *configloader.Config {
	return &configloader.Config{
		Chains: map[string]configloader.ChainConfig{
			"testnet": {
				Type: configloader.ChainTypeEVM,
				Name: "Test Network",
				RPC:  "https://example.invalid",
				NativeToken: configloader.TokenInfo{
					Symbol:   "ETH",
					Decimals: 18,
				},
				Tokens: tokens,
			},
		},
	}
}

func threeTokens() map[string]configloader.TokenInfo {
	return map[string]configloader.TokenInfo{
		"AAA": {Address: "0x0000000000000000000000000000000000000001", Decimals: 6},
		"BBB": {Address: "0x0000000000000000000000000000000000000002", Decimals: 6},
		"CCC": {Address: "0x0000000000000000000000000000000000000003", Decimals: 6},
	}
}

func TestGetBalancesUnknownChain(t *testing.T) {
	svc := NewBalanceService(testConfig(nil), &stubClientProvider{provider: &stubProvider{nativeSymbol: "ETH"}}, nopLogger{})

	balances, err := svc.GetBalances(context.Background(), "not-a-real-chain", "0xabc")
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrUnknownChain)
	assert.Nil(t, balances)
}

func TestGetBalancesNativeFirstAndSorted(t *testing.T) {
	provider := &stubProvider{nativeSymbol: "ETH"}
	svc := NewBalanceService(testConfig(threeTokens()), &stubClientProvider{provider: provider}, nopLogger{})

	balances, err := svc.GetBalances(context.Background(), "testnet", "0xabc")
	require.NoError(t, err)
	require.Len(t, balances, 4)

	assert.Equal(t, "ETH", balances[0].Token)
	assert.Equal(t, "AAA", balances[1].Token)
	assert.Equal(t, "BBB", balances[2].Token)
	assert.Equal(t, "CCC", balances[3].Token)
}

func TestGetBalancesEmptyTokenMap(t *testing.T) {
	provider := &stubProvider{nativeSymbol: "ETH"}
	svc := NewBalanceService(testConfig(nil), &stubClientProvider{provider: provider}, nopLogger{})

	balances, err := svc.GetBalances(context.Background(), "testnet", "0xabc")
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, "ETH", balances[0].Token)
	assert.NotEmpty(t, balances[0].Formatted)
}

func TestGetBalancesSkipsTokensWithoutAddress(t *testing.T) {
	tokens := threeTokens()
	tokens["NOADDR"] = configloader.TokenInfo{Decimals: 8}

	provider := &stubProvider{nativeSymbol: "ETH"}
	svc := NewBalanceService(testConfig(tokens), &stubClientProvider{provider: provider}, nopLogger{})

	balances, err := svc.GetBalances(context.Background(), "testnet", "0xabc")
	require.NoError(t, err)
	require.Len(t, balances, 4)
	for _, balance := range balances {
		assert.NotEqual(t, "NOADDR", balance.Token)
	}
}

func TestGetBalancesFailFast(t *testing.T) {
	provider := &stubProvider{
		nativeSymbol: "ETH",
		failSymbols:  map[string]error{"BBB": entity.ErrDecodeFailure},
	}
	svc := NewBalanceService(testConfig(threeTokens()), &stubClientProvider{provider: provider}, nopLogger{})

	balances, err := svc.GetBalances(context.Background(), "testnet", "0xabc")
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrDecodeFailure)
	assert.Nil(t, balances, "no partial result may leak out of a failed aggregate")
}

func TestGetBalancesNativeFailureShortCircuits(t *testing.T) {
	provider := &stubProvider{nativeSymbol: "ETH", failNative: true}
	svc := NewBalanceService(testConfig(threeTokens()), &stubClientProvider{provider: provider}, nopLogger{})

	balances, err := svc.GetBalances(context.Background(), "testnet", "0xabc")
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrProviderUnavailable)
	assert.Nil(t, balances)

	provider.mu.Lock()
	defer provider.mu.Unlock()
	assert.Empty(t, provider.tokenCalls, "token fetches must not start when the native fetch fails")
}

func TestGetBalancesClientProviderError(t *testing.T) {
	svc := NewBalanceService(testConfig(nil), &stubClientProvider{err: entity.ErrUnsupportedChainType}, nopLogger{})

	balances, err := svc.GetBalances(context.Background(), "testnet", "0xabc")
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrUnsupportedChainType)
	assert.Nil(t, balances)
}

func TestFetchAllBalancesPreservesTokenOrder(t *testing.T) {
	provider := &stubProvider{nativeSymbol: "SOL"}
	tokens := []entity.Token{
		entity.NewFungibleToken("mint1", "ZZZ", 6),
		entity.NewFungibleToken("mint2", "MMM", 6),
		entity.NewFungibleToken("mint3", "AAA", 6),
	}

	balances, err := FetchAllBalances(context.Background(), provider, "addr", tokens)
	require.NoError(t, err)
	require.Len(t, balances, 4)

	// The caller's order wins, regardless of goroutine completion order.
	assert.Equal(t, "SOL", balances[0].Token)
	assert.Equal(t, "ZZZ", balances[1].Token)
	assert.Equal(t, "MMM", balances[2].Token)
	assert.Equal(t, "AAA", balances[3].Token)
}
