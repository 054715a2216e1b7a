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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 50, cfg.Distribution.BatchSize)
	require.Equal(t, uint64(1_500_000), cfg.Distribution.GasLimit)
	require.Equal(t, uint8(9), cfg.Token.Decimals)

	price, err := cfg.MintPrice()
	require.NoError(t, err)
	require.Equal(t, "40000000000000000", price.String())
}

func TestLoadFromBytes(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
rpc: https://bsc-dataseed.binance.org
contracts:
  nft: 0x1111111111111111111111111111111111111111
  splitter: 0x2222222222222222222222222222222222222222
token:
  decimals: 18
distribution:
  batch_size: 25
  pool_formula: claimed
  refresh_interval: 1m
`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, "https://bsc-dataseed.binance.org", cfg.RPC)
	require.Equal(t, uint8(18), cfg.Token.Decimals)
	require.Equal(t, 25, cfg.Distribution.BatchSize)
	require.Equal(t, "claimed", cfg.Distribution.PoolFormula)
	require.Equal(t, time.Minute, cfg.Distribution.RefreshInterval)

	// Untouched keys keep their defaults.
	require.Equal(t, uint64(1_500_000), cfg.Distribution.GasLimit)
	require.Equal(t, "bsc", cfg.Price.Network)
}

func TestLoadMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load(filepath.Join(t.TempDir(), "nftrewards.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default().RPC, cfg.RPC)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvPassword, "from-env")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("NFTREWARDS_KEYFILE=/keys/operator.json\nNFTREWARDS_PASSWORD=from-dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv(EnvKeyfile) })

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "/keys/operator.json", cfg.Wallet.Keyfile)
	require.Equal(t, "from-env", cfg.Wallet.Password)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv(EnvRPC, "http://node:8545")
	cfg, err := LoadFromBytes([]byte("rpc: http://other:8545\n"))
	require.NoError(t, err)
	require.Equal(t, "http://node:8545", cfg.RPC)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no rpc", func(c *Config) { c.RPC = "" }},
		{"bad address", func(c *Config) { c.Contracts.Splitter = "0x1234" }},
		{"zero batch", func(c *Config) { c.Distribution.BatchSize = 0 }},
		{"zero gas", func(c *Config) { c.Distribution.GasLimit = 0 }},
		{"formula", func(c *Config) { c.Distribution.PoolFormula = "net" }},
		{"refresh", func(c *Config) { c.Distribution.RefreshInterval = 0 }},
		{"rate", func(c *Config) { c.Distribution.ReadsPerSecond = -1 }},
		{"price", func(c *Config) { c.Mint.Price = "free" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestAddress(t *testing.T) {
	_, err := Address("splitter", "")
	require.ErrorContains(t, err, "not configured")

	_, err = Address("splitter", "nope")
	require.Error(t, err)

	a, err := Address("nft", "0x1111111111111111111111111111111111111111")
	require.NoError(t, err)
	require.Equal(t, "0x1111111111111111111111111111111111111111", a.Hex())
}
