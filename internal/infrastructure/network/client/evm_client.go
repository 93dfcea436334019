package client

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"balance_aggregator/internal/app/port"
	"balance_aggregator/internal/domain/entity"
	"balance_aggregator/internal/infrastructure/configloader"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// EVMClient implements port.ChainProvider for EVM-compatible chains.
type EVMClient struct {
	ethClient      *ethclient.Client
	chainCfg       configloader.ChainConfig
	rpcCallTimeout time.Duration
}

// ERC20 ABI minimal part for balanceOf
const erc20ABI = `[{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}]`

var (
	parsedERC20ABI  abi.ABI
	parsedERC20Once sync.Once
	erc20MethodID   []byte
)

func initParsedERC20ABI() {
	parsedERC20Once.Do(func() {
		var err error
		parsedERC20ABI, err = abi.JSON(strings.NewReader(erc20ABI))
		if err != nil {
			// This is a critical error during initialization, panic is appropriate
			panic(fmt.Sprintf("failed to parse ERC20 ABI: %v", err))
		}
		balanceOfMethod, ok := parsedERC20ABI.Methods["balanceOf"]
		if !ok {
			panic("balanceOf method not found in parsed ERC20 ABI")
		}
		erc20MethodID = balanceOfMethod.ID
	})
}

// NewEVMClient dials the chain's RPC endpoint and returns a provider bound to it.
func NewEVMClient(chainCfg configloader.ChainConfig, connectionTimeout, rpcCallTimeout time.Duration) (port.ChainProvider, error) {
	initParsedERC20ABI()

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	ethClient, err := ethclient.DialContext(ctx, chainCfg.RPC)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to RPC %s: %v", entity.ErrProviderUnavailable, chainCfg.RPC, err)
	}

	return &EVMClient{ethClient: ethClient, chainCfg: chainCfg, rpcCallTimeout: rpcCallTimeout}, nil
}

// GetNativeBalance fetches the account balance at the latest block.
func (c *EVMClient) GetNativeBalance(ctx context.Context, address string) (entity.Balance, error) {
	if !common.IsHexAddress(address) {
		return entity.Balance{}, fmt.Errorf("%w: %q is not a valid EVM address", entity.ErrInvalidAddress, address)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	// nil block number means latest
	amount, err := c.ethClient.BalanceAt(callCtx, common.HexToAddress(address), nil)
	if err != nil {
		return entity.Balance{}, fmt.Errorf("%w: eth_getBalance failed for %s: %v", entity.ErrProviderUnavailable, address, err)
	}

	return entity.NewBalance(c.chainCfg.NativeToken.Symbol, amount.String(), c.chainCfg.NativeToken.Decimals), nil
}

// GetTokenBalance performs an eth_call of the ERC-20 balanceOf method and
// decodes the result as an unsigned 256-bit integer.
func (c *EVMClient) GetTokenBalance(ctx context.Context, address string, token entity.Token) (entity.Balance, error) {
	switch token.Kind {
	case entity.TokenKindFungible:
		// fall through to the contract call below
	default:
		return entity.Balance{}, fmt.Errorf("unsupported token kind %d for EVM chain %s", token.Kind, c.chainCfg.Name)
	}

	if !common.IsHexAddress(address) {
		return entity.Balance{}, fmt.Errorf("%w: %q is not a valid EVM address", entity.ErrInvalidAddress, address)
	}
	if !common.IsHexAddress(token.ContractAddress) {
		return entity.Balance{}, fmt.Errorf("%w: token contract %q is not a valid EVM address", entity.ErrInvalidAddress, token.ContractAddress)
	}

	paddedWalletAddress := common.LeftPadBytes(common.HexToAddress(address).Bytes(), 32)
	callData := append(append([]byte{}, erc20MethodID...), paddedWalletAddress...)
	contractAddress := common.HexToAddress(token.ContractAddress)

	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	result, err := c.ethClient.CallContract(callCtx, ethereum.CallMsg{
		To:   &contractAddress,
		Data: callData,
	}, nil)
	if err != nil {
		return entity.Balance{}, fmt.Errorf("%w: balanceOf call failed for %s on %s: %v",
			entity.ErrProviderUnavailable, token.Symbol, c.chainCfg.Name, err)
	}

	// Some RPC nodes return empty bytes for contracts without code.
	if len(result) == 0 {
		return entity.NewBalance(token.Symbol, "0", token.Decimals), nil
	}

	unpacked, err := parsedERC20ABI.Unpack("balanceOf", result)
	if err != nil {
		return entity.Balance{}, fmt.Errorf("%w: failed to unpack balanceOf result for %s: %v",
			entity.ErrDecodeFailure, token.Symbol, err)
	}
	if len(unpacked) == 0 {
		return entity.Balance{}, fmt.Errorf("%w: balanceOf unpack returned no data for %s", entity.ErrDecodeFailure, token.Symbol)
	}
	amount, ok := unpacked[0].(*big.Int)
	if !ok {
		return entity.Balance{}, fmt.Errorf("%w: failed to assert unpacked balanceOf result to *big.Int for %s, got %T",
			entity.ErrDecodeFailure, token.Symbol, unpacked[0])
	}

	return entity.NewBalance(token.Symbol, amount.String(), token.Decimals), nil
}
