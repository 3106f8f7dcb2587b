package config

import (
	"fmt"
	"strconv"

	"github.com/spf13/viper"
)

// ChainConfig describes one supported chain. The RPC URL is only needed
// on chains where same-chain swaps are broadcast.
type ChainConfig struct {
	Name   string `mapstructure:"name"`
	RPCURL string `mapstructure:"rpc_url"`
}

// Config holds the application configuration.
type Config struct {
	APIKey             string
	AggregationBaseURL string
	CrossChainBaseURL  string
	PrivateKey         string
	Chains             map[int64]ChainConfig
}

// Load reads configuration from environment variables and an optional
// .fusion-swap.yaml file in $HOME or the working directory.
func Load() (*Config, error) {
	viper.SetConfigName(".fusion-swap")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	viper.SetDefault("aggregation_base_url", "https://api.1inch.dev")
	viper.SetDefault("crosschain_base_url", "https://api.1inch.dev/fusion-plus")

	viper.SetEnvPrefix("FUSION_SWAP")
	viper.AutomaticEnv()

	// Config file is optional; env vars alone are enough.
	_ = viper.ReadInConfig()

	cfg := &Config{
		APIKey:             viper.GetString("api_key"),
		AggregationBaseURL: viper.GetString("aggregation_base_url"),
		CrossChainBaseURL:  viper.GetString("crosschain_base_url"),
		PrivateKey:         viper.GetString("private_key"),
	}

	chains, err := loadChains()
	if err != nil {
		return nil, err
	}
	cfg.Chains = chains

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key not found. Set FUSION_SWAP_API_KEY or add api_key to .fusion-swap.yaml")
	}
	return cfg, nil
}

// loadChains parses the chain registry from config. Keys are decimal
// chain ids. When no chains are configured, a default EVM set is used.
func loadChains() (map[int64]ChainConfig, error) {
	raw := map[string]ChainConfig{}
	if err := viper.UnmarshalKey("chains", &raw); err != nil {
		return nil, fmt.Errorf("invalid chains config: %w", err)
	}

	if len(raw) == 0 {
		return defaultChains(), nil
	}

	chains := make(map[int64]ChainConfig, len(raw))
	for key, chain := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chain id %q in chains config", key)
		}
		if chain.Name == "" {
			return nil, fmt.Errorf("chain %d has no name in chains config", id)
		}
		chains[id] = chain
	}
	return chains, nil
}

func defaultChains() map[int64]ChainConfig {
	return map[int64]ChainConfig{
		1:     {Name: "ethereum"},
		10:    {Name: "optimism"},
		137:   {Name: "polygon"},
		8453:  {Name: "base"},
		42161: {Name: "arbitrum"},
	}
}

// ChainNames returns the registry mapping used by the quote router.
func (c *Config) ChainNames() map[int64]string {
	names := make(map[int64]string, len(c.Chains))
	for id, chain := range c.Chains {
		names[id] = chain.Name
	}
	return names
}

// RPCURLs returns the chains with a configured RPC endpoint.
func (c *Config) RPCURLs() map[int64]string {
	urls := make(map[int64]string, len(c.Chains))
	for id, chain := range c.Chains {
		if chain.RPCURL != "" {
			urls[id] = chain.RPCURL
		}
	}
	return urls
}
