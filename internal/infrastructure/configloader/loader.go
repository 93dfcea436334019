package configloader

import (
	_ "embed"
	"fmt"
	"os"

	"balance_aggregator/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Chain type identifiers recognized by the dispatcher.
const (
	ChainTypeEVM    = "evm"
	ChainTypeSolana = "solana"
)

// maxTokenDecimals bounds the divisor exponent used when formatting amounts.
const maxTokenDecimals = 30

//go:embed config.yml
var embeddedConfig []byte

// Config is the top-level configuration structure: one entry per chain name.
type Config struct {
	Chains map[string]ChainConfig `yaml:"chains"`
}

// ChainConfig holds the configuration for a single chain.
type ChainConfig struct {
	Type        string               `yaml:"type"` // e.g., "evm", "solana"
	Name        string               `yaml:"name"`
	RPC         string               `yaml:"rpc"`
	ChainID     uint64               `yaml:"chainId,omitempty"`
	CanisterID  string               `yaml:"canisterId,omitempty"`
	NativeToken TokenInfo            `yaml:"nativeToken"`
	Tokens      map[string]TokenInfo `yaml:"tokens"`
}

// TokenInfo holds the details of a configured token. Address is empty for
// native tokens; Symbol may be empty when the map key already carries it.
type TokenInfo struct {
	Address  string `yaml:"address,omitempty"`
	Symbol   string `yaml:"symbol,omitempty"`
	Decimals uint8  `yaml:"decimals"`
}

// Load parses the embedded chain configuration. The document is bundled at
// build time and trusted, but a malformed one still surfaces as a typed
// error rather than a panic.
func Load() (*Config, error) {
	return parse(embeddedConfig, "embedded config")
}

// LoadFile reads a chain configuration from the given path, for deployments
// that override the bundled chain set.
func LoadFile(path string) (*Config, error) {
	logrus.Infof("Loading chain configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("%w: failed to read config file %s: %v", entity.ErrConfig, path, err)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", source, err)
		return nil, fmt.Errorf("%w: failed to unmarshal config data from %s: %v", entity.ErrConfig, source, err)
	}

	if len(cfg.Chains) == 0 {
		return nil, fmt.Errorf("%w: no chains defined in %s", entity.ErrConfig, source)
	}

	for name, chain := range cfg.Chains {
		if chain.Type == "" {
			return nil, fmt.Errorf("%w: chain %q is missing a type", entity.ErrConfig, name)
		}
		if chain.RPC == "" {
			return nil, fmt.Errorf("%w: chain %q is missing an RPC endpoint", entity.ErrConfig, name)
		}
		if chain.NativeToken.Decimals > maxTokenDecimals {
			return nil, fmt.Errorf("%w: chain %q native token decimals %d exceed %d",
				entity.ErrConfig, name, chain.NativeToken.Decimals, maxTokenDecimals)
		}
		for symbol, token := range chain.Tokens {
			if token.Decimals > maxTokenDecimals {
				return nil, fmt.Errorf("%w: chain %q token %q decimals %d exceed %d",
					entity.ErrConfig, name, symbol, token.Decimals, maxTokenDecimals)
			}
		}
	}

	logrus.Infof("Chain configuration loaded successfully: %d chains", len(cfg.Chains))
	return &cfg, nil
}

// GetChain returns the configuration for a chain name, if present.
// Pure lookup, no I/O.
func (c *Config) GetChain(name string) (ChainConfig, bool) {
	chain, ok := c.Chains[name]
	return chain, ok
}
