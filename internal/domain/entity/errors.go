package entity

import "errors"

// Sentinel errors for the balance query pipeline. Callers wrap them with
// fmt.Errorf("...: %w", ...) and match with errors.Is. All of them are
// terminal for the current query; nothing is retried internally.
var (
	// ErrConfig indicates the chain configuration source is missing or malformed.
	ErrConfig = errors.New("invalid configuration")

	// ErrUnknownChain indicates the requested chain name has no configuration entry.
	ErrUnknownChain = errors.New("unknown chain")

	// ErrUnsupportedChainType indicates a configured chain type with no registered provider.
	ErrUnsupportedChainType = errors.New("unsupported chain type")

	// ErrInvalidAddress indicates the queried address does not parse for the chain.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrProviderUnavailable indicates an RPC transport or network failure.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrDecodeFailure indicates a malformed or undecodable on-chain response.
	ErrDecodeFailure = errors.New("failed to decode chain response")
)
