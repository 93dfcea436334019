package client

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"balance_aggregator/internal/app/port"
	"balance_aggregator/internal/domain/entity"
	"balance_aggregator/internal/infrastructure/configloader"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SolanaClient implements port.ChainProvider for Solana-style chains.
type SolanaClient struct {
	rpcClient      *rpc.Client
	chainCfg       configloader.ChainConfig
	rpcCallTimeout time.Duration
}

// NewSolanaClient returns a provider bound to the chain's RPC endpoint.
func NewSolanaClient(chainCfg configloader.ChainConfig, rpcCallTimeout time.Duration) port.ChainProvider {
	return &SolanaClient{
		rpcClient:      rpc.New(chainCfg.RPC),
		chainCfg:       chainCfg,
		rpcCallTimeout: rpcCallTimeout,
	}
}

// GetNativeBalance fetches the lamport balance of the account.
func (c *SolanaClient) GetNativeBalance(ctx context.Context, address string) (entity.Balance, error) {
	pubkey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return entity.Balance{}, fmt.Errorf("%w: %q is not a valid Solana address: %v", entity.ErrInvalidAddress, address, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	out, err := c.rpcClient.GetBalance(callCtx, pubkey, rpc.CommitmentFinalized)
	if err != nil {
		return entity.Balance{}, fmt.Errorf("%w: getBalance failed for %s: %v", entity.ErrProviderUnavailable, address, err)
	}

	lamports := new(big.Int).SetUint64(out.Value)
	return entity.NewBalance(c.chainCfg.NativeToken.Symbol, lamports.String(), c.chainCfg.NativeToken.Decimals), nil
}

// GetTokenBalance sums the amounts of every token account the address owns
// for the given mint. An owner can hold several accounts for one mint, so a
// single-account lookup would undercount.
func (c *SolanaClient) GetTokenBalance(ctx context.Context, address string, tok entity.Token) (entity.Balance, error) {
	switch tok.Kind {
	case entity.TokenKindFungible:
		// fall through to the token account scan below
	default:
		return entity.Balance{}, fmt.Errorf("unsupported token kind %d for Solana chain %s", tok.Kind, c.chainCfg.Name)
	}

	owner, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return entity.Balance{}, fmt.Errorf("%w: %q is not a valid Solana address: %v", entity.ErrInvalidAddress, address, err)
	}
	mint, err := solana.PublicKeyFromBase58(tok.ContractAddress)
	if err != nil {
		return entity.Balance{}, fmt.Errorf("%w: mint %q is not a valid Solana address: %v", entity.ErrInvalidAddress, tok.ContractAddress, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	accounts, err := c.rpcClient.GetTokenAccountsByOwner(
		callCtx,
		owner,
		&rpc.GetTokenAccountsConfig{Mint: &mint},
		&rpc.GetTokenAccountsOpts{Encoding: solana.EncodingBase64},
	)
	if err != nil {
		return entity.Balance{}, fmt.Errorf("%w: getTokenAccountsByOwner failed for %s mint %s: %v",
			entity.ErrProviderUnavailable, address, tok.ContractAddress, err)
	}

	total := new(big.Int)
	for _, acct := range accounts.Value {
		amount, err := tokenAccountAmount(acct)
		if err != nil {
			return entity.Balance{}, err
		}
		total.Add(total, new(big.Int).SetUint64(amount))
	}

	return entity.NewBalance(tok.Symbol, total.String(), tok.Decimals), nil
}

// parsedTokenAccount mirrors the jsonParsed shape some RPC endpoints return
// even when base64 encoding was requested.
type parsedTokenAccount struct {
	Parsed struct {
		Info struct {
			TokenAmount struct {
				Amount string `json:"amount"`
			} `json:"tokenAmount"`
		} `json:"info"`
	} `json:"parsed"`
}

// tokenAccountAmount extracts the raw amount from one token account, whether
// the endpoint returned the binary SPL account layout or a pre-parsed JSON
// representation.
func tokenAccountAmount(acct *rpc.TokenAccount) (uint64, error) {
	if acct == nil || acct.Account.Data == nil {
		return 0, fmt.Errorf("%w: token account response carries no data", entity.ErrDecodeFailure)
	}

	if raw := acct.Account.Data.GetBinary(); len(raw) > 0 {
		var decoded token.Account
		if err := bin.NewBinDecoder(raw).Decode(&decoded); err != nil {
			return 0, fmt.Errorf("%w: failed to decode SPL token account %s: %v",
				entity.ErrDecodeFailure, acct.Pubkey, err)
		}
		return decoded.Amount, nil
	}

	rawJSON := acct.Account.Data.GetRawJSON()
	if len(rawJSON) == 0 {
		return 0, fmt.Errorf("%w: token account %s has neither binary nor JSON data", entity.ErrDecodeFailure, acct.Pubkey)
	}

	var parsed parsedTokenAccount
	if err := json.Unmarshal(rawJSON, &parsed); err != nil {
		return 0, fmt.Errorf("%w: failed to parse token account JSON for %s: %v",
			entity.ErrDecodeFailure, acct.Pubkey, err)
	}

	amountStr := parsed.Parsed.Info.TokenAmount.Amount
	if amountStr == "" {
		return 0, fmt.Errorf("%w: token account JSON for %s is missing tokenAmount.amount", entity.ErrDecodeFailure, acct.Pubkey)
	}
	amount, ok := new(big.Int).SetString(amountStr, 10)
	if !ok || !amount.IsUint64() {
		return 0, fmt.Errorf("%w: token account amount %q for %s is not a valid u64",
			entity.ErrDecodeFailure, amountStr, acct.Pubkey)
	}
	return amount.Uint64(), nil
}
