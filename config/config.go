// Copyright 2018 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package config loads the deployment file of the rewards tool.
package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/frozenbread/nftrewards/rewards"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment overrides.
const (
	EnvRPC      = "NFTREWARDS_RPC"
	EnvKeyfile  = "NFTREWARDS_KEYFILE"
	EnvPassword = "NFTREWARDS_PASSWORD"
)

type ContractsConfig struct {
	NFT      string `yaml:"nft"`
	Splitter string `yaml:"splitter"`
	Token    string `yaml:"token"` // optional, enables fund/approve and USD values
}

type WalletConfig struct {
	Keyfile  string `yaml:"keyfile"`
	Password string `yaml:"password"` // prefer NFTREWARDS_PASSWORD
}

type TokenConfig struct {
	Decimals uint8 `yaml:"decimals"`

	// FromContract reads decimals() from the token when one is configured.
	FromContract bool `yaml:"from_contract"`
}

type DistributionConfig struct {
	BatchSize       int           `yaml:"batch_size"`
	GasLimit        uint64        `yaml:"gas_limit"`
	PoolFormula     string        `yaml:"pool_formula"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	Concurrency     int           `yaml:"concurrency"`
	ReadsPerSecond  float64       `yaml:"reads_per_second"` // 0 disables the cap
}

type MintConfig struct {
	MaxSupply uint64 `yaml:"max_supply"`
	Price     string `yaml:"price"` // native currency, 18 decimals
}

type PriceConfig struct {
	Endpoint string `yaml:"endpoint"`
	Network  string `yaml:"network"`
}

type ServeConfig struct {
	Listen  string `yaml:"listen"`
	Metrics string `yaml:"metrics"`
}

type LogConfig struct {
	Format    string `yaml:"format"`
	Verbosity int    `yaml:"verbosity"`
}

type Config struct {
	RPC          string             `yaml:"rpc"`
	Contracts    ContractsConfig    `yaml:"contracts"`
	Wallet       WalletConfig       `yaml:"wallet"`
	Token        TokenConfig        `yaml:"token"`
	Distribution DistributionConfig `yaml:"distribution"`
	Mint         MintConfig         `yaml:"mint"`
	Price        PriceConfig        `yaml:"price"`
	Serve        ServeConfig        `yaml:"serve"`
	Log          LogConfig          `yaml:"log"`
}

// Default returns the settings of the original BSC deployment.
func Default() *Config {
	return &Config{
		RPC:   "http://localhost:8545",
		Token: TokenConfig{Decimals: 9, FromContract: true},
		Distribution: DistributionConfig{
			BatchSize:       rewards.DefaultBatchSize,
			GasLimit:        rewards.DefaultGasLimit,
			PoolFormula:     string(rewards.FormulaBalance),
			RefreshInterval: rewards.DefaultRefreshInterval,
			Concurrency:     16,
		},
		Mint: MintConfig{
			MaxSupply: 150,
			Price:     "0.04",
		},
		Price: PriceConfig{
			Endpoint: rewards.DefaultPriceEndpoint,
			Network:  "bsc",
		},
		Serve: ServeConfig{
			Listen:  "127.0.0.1:8550",
			Metrics: "127.0.0.1:9100",
		},
		Log: LogConfig{
			Format:    "terminal",
			Verbosity: 3,
		},
	}
}

// Load reads a YAML file over the defaults and applies the environment.
// A missing file is not an error. Variables from a .env file in the working
// directory are loaded first and never replace ones already set.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}
	cfg, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromBytes parses YAML over the defaults and applies the environment.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := Default()
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvRPC); v != "" {
		c.RPC = v
	}
	if v := os.Getenv(EnvKeyfile); v != "" {
		c.Wallet.Keyfile = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		c.Wallet.Password = v
	}
}

// Validate checks the settings every command needs. Contract addresses are
// checked where they are used, since read-only commands need fewer of them.
func (c *Config) Validate() error {
	if c.RPC == "" {
		return errors.New("rpc endpoint is required")
	}
	for name, v := range map[string]string{"nft": c.Contracts.NFT, "splitter": c.Contracts.Splitter, "token": c.Contracts.Token} {
		if v != "" && !common.IsHexAddress(v) {
			return fmt.Errorf("invalid %s contract address %q", name, v)
		}
	}
	if c.Distribution.BatchSize <= 0 {
		return errors.New("distribution.batch_size must be greater than 0")
	}
	if c.Distribution.GasLimit == 0 {
		return errors.New("distribution.gas_limit must be greater than 0")
	}
	if _, err := rewards.ParsePoolFormula(c.Distribution.PoolFormula); err != nil {
		return err
	}
	if c.Distribution.RefreshInterval <= 0 {
		return errors.New("distribution.refresh_interval must be positive")
	}
	if c.Distribution.ReadsPerSecond < 0 {
		return errors.New("distribution.reads_per_second must not be negative")
	}
	if _, err := c.MintPrice(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "terminal", "json", "tint":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// MintPrice returns the mint price per NFT in wei.
func (c *Config) MintPrice() (*big.Int, error) {
	price, err := rewards.Units{Decimals: 18}.Parse(c.Mint.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid mint.price: %w", err)
	}
	if price.Sign() < 0 {
		return nil, errors.New("mint.price must not be negative")
	}
	return price, nil
}

// Address returns a configured contract address, failing when unset.
func Address(name, value string) (common.Address, error) {
	if value == "" {
		return common.Address{}, fmt.Errorf("%s contract address is not configured", name)
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("invalid %s contract address %q", name, value)
	}
	return common.HexToAddress(value), nil
}
