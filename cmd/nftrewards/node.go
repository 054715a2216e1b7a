// Copyright 2018 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
	"github.com/frozenbread/nftrewards/config"
	rewardscontract "github.com/frozenbread/nftrewards/contracts/rewards"
	"github.com/frozenbread/nftrewards/rewards"
	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"
	cli "gopkg.in/urfave/cli.v1"
)

// cfg is loaded once in app.Before.
var cfg *config.Config

// loadConfig reads the deployment file and applies the global flags over it.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	c, err := config.Load(ctx.GlobalString(configFlag.Name))
	if err != nil {
		return nil, err
	}
	if ctx.GlobalIsSet(rpcFlag.Name) {
		c.RPC = ctx.GlobalString(rpcFlag.Name)
	}
	if ctx.GlobalIsSet(keyfileFlag.Name) {
		c.Wallet.Keyfile = ctx.GlobalString(keyfileFlag.Name)
	}
	if ctx.GlobalIsSet(nftFlag.Name) {
		c.Contracts.NFT = ctx.GlobalString(nftFlag.Name)
	}
	if ctx.GlobalIsSet(splitterFlag.Name) {
		c.Contracts.Splitter = ctx.GlobalString(splitterFlag.Name)
	}
	if ctx.GlobalIsSet(tokenFlag.Name) {
		c.Contracts.Token = ctx.GlobalString(tokenFlag.Name)
	}
	if ctx.GlobalIsSet(decimalsFlag.Name) {
		d := ctx.GlobalUint(decimalsFlag.Name)
		if d > 77 {
			return nil, fmt.Errorf("decimals %d out of range", d)
		}
		c.Token.Decimals = uint8(d)
		c.Token.FromContract = false
	}
	if ctx.GlobalIsSet(batchSizeFlag.Name) {
		c.Distribution.BatchSize = ctx.GlobalInt(batchSizeFlag.Name)
	}
	if ctx.GlobalIsSet(gasLimitFlag.Name) {
		c.Distribution.GasLimit = ctx.GlobalUint64(gasLimitFlag.Name)
	}
	if ctx.GlobalIsSet(formulaFlag.Name) {
		c.Distribution.PoolFormula = ctx.GlobalString(formulaFlag.Name)
	}
	if ctx.GlobalIsSet(logFormatFlag.Name) {
		c.Log.Format = ctx.GlobalString(logFormatFlag.Name)
	}
	if v := ctx.GlobalInt(verbosityFlag.Name); v >= 0 {
		c.Log.Verbosity = v
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	cfg = c
	return c, nil
}

// node bundles the chain connection and contract bindings.
type node struct {
	client   *ethclient.Client
	backend  *rewards.EthereumBackend
	wallet   rewards.WalletProvider
	units    rewards.Units
	splitter common.Address
	token    common.Address
}

// connect dials the node and binds the NFT collection, plus the splitter
// and the reward token when configured. withSplitter makes the splitter
// mandatory.
func connect(ctx context.Context, withSplitter bool) (*node, error) {
	nftAddr, err := config.Address("nft", cfg.Contracts.NFT)
	if err != nil {
		return nil, err
	}
	var splitterAddr common.Address
	if withSplitter || cfg.Contracts.Splitter != "" {
		if splitterAddr, err = config.Address("splitter", cfg.Contracts.Splitter); err != nil {
			return nil, err
		}
	}

	client, err := ethclient.DialContext(ctx, cfg.RPC)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.RPC, err)
	}
	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to read chain id: %w", err)
	}

	nft, err := rewardscontract.NewNFT(nftAddr, client)
	if err != nil {
		client.Close()
		return nil, err
	}
	var splitter *rewardscontract.Splitter
	if splitterAddr != (common.Address{}) {
		if splitter, err = rewardscontract.NewSplitter(splitterAddr, client); err != nil {
			client.Close()
			return nil, err
		}
	}

	n := &node{
		client:   client,
		wallet:   rewards.NewKeystoreWallet(cfg.Wallet.Keyfile, cfg.Wallet.Password, chainID),
		units:    rewards.Units{Decimals: cfg.Token.Decimals},
		splitter: splitterAddr,
	}
	var token *rewardscontract.Token
	if cfg.Contracts.Token != "" {
		if n.token, err = config.Address("token", cfg.Contracts.Token); err != nil {
			client.Close()
			return nil, err
		}
		if token, err = rewardscontract.NewToken(n.token, client); err != nil {
			client.Close()
			return nil, err
		}
		if cfg.Token.FromContract {
			decimals, err := token.Decimals(&bind.CallOpts{Context: ctx})
			if err != nil {
				client.Close()
				return nil, fmt.Errorf("failed to read token decimals: %w", err)
			}
			n.units.Decimals = decimals
		}
	}
	n.backend = rewards.NewEthereumBackend(client, nft, splitter, token)

	log.Debug("Connected", "rpc", cfg.RPC, "chainID", chainID, "nft", nftAddr, "splitter", splitterAddr, "decimals", n.units.Decimals)
	return n, nil
}

func (n *node) Close() { n.client.Close() }

func (n *node) censusOptions() rewards.CensusOptions {
	opts := rewards.CensusOptions{Concurrency: cfg.Distribution.Concurrency, Rate: rate.Inf, Burst: 1}
	if rps := cfg.Distribution.ReadsPerSecond; rps > 0 {
		opts.Rate = rate.Limit(rps)
		opts.Burst = max(1, int(rps))
	}
	return opts
}

func (n *node) distributor() (*rewards.Distributor, error) {
	return rewards.NewDistributor(rewards.DistributorConfig{
		Logger:          log.Root(),
		Clock:           clockwork.NewRealClock(),
		NFT:             n.backend,
		Splitter:        n.backend,
		Writer:          n.backend,
		Confirmer:       n.backend,
		Wallet:          n.wallet,
		Units:           n.units,
		Formula:         rewards.PoolFormula(cfg.Distribution.PoolFormula),
		BatchSize:       cfg.Distribution.BatchSize,
		GasLimit:        cfg.Distribution.GasLimit,
		Census:          n.censusOptions(),
		RefreshInterval: cfg.Distribution.RefreshInterval,
	})
}

func (n *node) claimView() (*rewards.ClaimView, error) {
	return rewards.NewClaimView(rewards.ClaimConfig{
		Logger:    log.Root(),
		Splitter:  n.backend,
		Writer:    n.backend,
		Confirmer: n.backend,
		Wallet:    n.wallet,
		Units:     n.units,
		Prices:    priceOracle(),
		Token:     n.token,
	})
}

func (n *node) mintView() (*rewards.MintView, error) {
	price, err := cfg.MintPrice()
	if err != nil {
		return nil, err
	}
	return rewards.NewMintView(rewards.MintConfig{
		Logger:          log.Root(),
		Clock:           clockwork.NewRealClock(),
		NFT:             n.backend,
		Minter:          n.backend,
		Confirmer:       n.backend,
		Wallet:          n.wallet,
		MaxSupply:       cfg.Mint.MaxSupply,
		Price:           price,
		RefreshInterval: cfg.Distribution.RefreshInterval,
	})
}

func (n *node) funder() *rewards.Funder {
	f := &rewards.Funder{
		Logger:    log.Root(),
		Confirmer: n.backend,
		Wallet:    n.wallet,
		Units:     n.units,
	}
	if n.token != (common.Address{}) {
		f.Token = n.backend
	}
	return f
}

func priceOracle() rewards.PriceOracle {
	return rewards.NewGeckoTerminal(cfg.Price.Endpoint, cfg.Price.Network, &http.Client{Timeout: 10 * time.Second})
}
