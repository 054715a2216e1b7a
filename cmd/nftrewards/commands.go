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
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/cmd/utils"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/frozenbread/nftrewards/rewards"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func infoCmd(ctx *cli.Context) error {
	c, cancel := signalContext()
	defer cancel()

	n, err := connect(c, true)
	if err != nil {
		return err
	}
	defer n.Close()

	d, err := n.distributor()
	if err != nil {
		return err
	}
	if err := d.Refresh(c); err != nil {
		return err
	}
	state, plan, _ := d.Snapshot()
	log.Info("Rewards splitter",
		"address", n.splitter,
		"balance", n.units.Format(state.ContractTokenBalance),
		"allocated", n.units.Format(state.TotalAllocated),
		"claimed", n.units.Format(state.TotalClaimed),
		"formula", cfg.Distribution.PoolFormula,
	)
	log.Info("Distribution ceiling",
		"supply", state.TotalSupply,
		"unallocated", n.units.Format(plan.Unallocated),
		"maxPerNFT", n.units.Format(plan.MaxPerUnit),
		"clamped", plan.Clamped,
	)
	return nil
}

func holdersCmd(ctx *cli.Context) error {
	c, cancel := signalContext()
	defer cancel()

	n, err := connect(c, false)
	if err != nil {
		return err
	}
	defer n.Close()

	set, err := rewards.TakeCensus(c, n.backend, n.censusOptions())
	if err != nil {
		return err
	}
	for _, h := range set.Holders {
		fmt.Printf("%s\t%d\n", h.Address.Hex(), h.NFTCount)
	}
	log.Info("Census complete", "supply", set.Supply, "holders", len(set.Holders))
	return nil
}

func distributeCmd(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		utils.Fatalf("Usage: nftrewards distribute <amount per NFT>")
	}
	c, cancel := signalContext()
	defer cancel()

	n, err := connect(c, true)
	if err != nil {
		return err
	}
	defer n.Close()

	d, err := n.distributor()
	if err != nil {
		return err
	}
	run, err := d.Distribute(c, ctx.Args().First())
	if run != nil {
		for i, hash := range run.Confirmed() {
			log.Info("Confirmed batch", "batch", i+1, "of", len(run.Batches()), "tx", hash)
		}
	}
	if err != nil {
		var verr *rewards.ValidationError
		if errors.As(err, &verr) {
			utils.Fatalf("%s", verr.Msg)
		}
		return err
	}
	log.Info("All rewards distributed successfully!", "batches", len(run.Batches()))
	return nil
}

func claimCmd(ctx *cli.Context) error {
	c, cancel := signalContext()
	defer cancel()

	n, err := connect(c, true)
	if err != nil {
		return err
	}
	defer n.Close()

	view, err := n.claimView()
	if err != nil {
		return err
	}
	if err := view.Refresh(c); err != nil {
		return err
	}
	usd, priced := view.USDValue()
	log.Info("Rewards", "account", view.Account(),
		"claimable", n.units.Format(view.Claimable()),
		"claimed", n.units.Format(view.Claimed()),
		"usd", usd, "priced", priced)

	receipt, err := view.Claim(c)
	if err != nil {
		return err
	}
	log.Info("Rewards claimed", "tx", receipt.TxHash, "block", receipt.BlockNumber)
	return nil
}

func withdrawCmd(ctx *cli.Context) error {
	c, cancel := signalContext()
	defer cancel()

	n, err := connect(c, true)
	if err != nil {
		return err
	}
	defer n.Close()

	view, err := n.claimView()
	if err != nil {
		return err
	}
	receipt, err := view.Withdraw(c)
	if err != nil {
		return err
	}
	log.Info("Splitter balance withdrawn", "tx", receipt.TxHash)
	return nil
}

func nftsCmd(ctx *cli.Context) error {
	c, cancel := signalContext()
	defer cancel()

	n, err := connect(c, false)
	if err != nil {
		return err
	}
	defer n.Close()

	var owner common.Address
	switch {
	case ctx.NArg() == 1 && common.IsHexAddress(ctx.Args().First()):
		owner = common.HexToAddress(ctx.Args().First())
	case ctx.NArg() == 0:
		if owner, err = n.wallet.RequestAccess(c); err != nil {
			return err
		}
	default:
		utils.Fatalf("Usage: nftrewards nfts [address]")
	}

	ids, err := rewards.OwnedTokens(c, n.backend, owner)
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	log.Info("Owned tokens", "owner", owner, "count", len(ids))
	return nil
}

func mintCmd(ctx *cli.Context) error {
	count, err := strconv.ParseUint(ctx.Args().First(), 10, 64)
	if ctx.NArg() != 1 || err != nil {
		utils.Fatalf("Usage: nftrewards mint <count>")
	}
	c, cancel := signalContext()
	defer cancel()

	n, err := connect(c, false)
	if err != nil {
		return err
	}
	defer n.Close()

	view, err := n.mintView()
	if err != nil {
		return err
	}
	if err := view.Refresh(c); err != nil {
		return err
	}
	log.Info("Minting", "count", count, "cost", rewards.Units{Decimals: 18}.Format(view.Quote(count)),
		"supply", view.Supply(), "max", view.MaxSupply())

	receipt, err := view.Mint(c, count)
	if err != nil {
		return err
	}
	log.Info("Mint successful!", "tx", receipt.TxHash, "supply", view.Supply())
	return nil
}

func fundCmd(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		utils.Fatalf("Usage: nftrewards fund <amount>")
	}
	c, cancel := signalContext()
	defer cancel()

	n, err := connect(c, true)
	if err != nil {
		return err
	}
	defer n.Close()

	receipt, err := n.funder().Transfer(c, n.splitter, ctx.Args().First())
	if err != nil {
		return err
	}
	log.Info("Splitter funded", "tx", receipt.TxHash)
	return nil
}

func approveCmd(ctx *cli.Context) error {
	if ctx.NArg() != 2 || !common.IsHexAddress(ctx.Args().Get(0)) {
		utils.Fatalf("Usage: nftrewards approve <spender> <amount>")
	}
	c, cancel := signalContext()
	defer cancel()

	n, err := connect(c, false)
	if err != nil {
		return err
	}
	defer n.Close()

	receipt, err := n.funder().Approve(c, common.HexToAddress(ctx.Args().Get(0)), ctx.Args().Get(1))
	if err != nil {
		return err
	}
	log.Info("Allowance set", "tx", receipt.TxHash)
	return nil
}

func priceCmd(ctx *cli.Context) error {
	if cfg.Contracts.Token == "" {
		return rewards.ErrTokenNotConfigured
	}
	c, cancel := signalContext()
	defer cancel()

	token := common.HexToAddress(cfg.Contracts.Token)
	price, err := priceOracle().TokenPriceUSD(c, token)
	if err != nil {
		return err
	}
	log.Info("Reward token price", "token", token, "network", cfg.Price.Network, "usd", price.String())
	return nil
}

func serveCmd(ctx *cli.Context) error {
	listen, metricsAddr := cfg.Serve.Listen, cfg.Serve.Metrics
	if ctx.IsSet(listenFlag.Name) {
		listen = ctx.String(listenFlag.Name)
	}
	if ctx.IsSet(metricsFlag.Name) {
		metricsAddr = ctx.String(metricsFlag.Name)
	}

	c, cancel := signalContext()
	defer cancel()

	n, err := connect(c, true)
	if err != nil {
		return err
	}
	defer n.Close()

	d, err := n.distributor()
	if err != nil {
		return err
	}
	mint, err := n.mintView()
	if err != nil {
		return err
	}
	d.Start(c)
	mint.Start(c)

	server := rpc.NewServer()
	defer server.Stop()
	if err := server.RegisterName("rewards", rewards.NewAPI(d, n.backend, n.backend, mint)); err != nil {
		return err
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	servers := []*http.Server{
		{Addr: listen, Handler: server, ReadHeaderTimeout: 10 * time.Second},
		{Addr: metricsAddr, Handler: metricsMux, ReadHeaderTimeout: 10 * time.Second},
	}

	g, gctx := errgroup.WithContext(c)
	for _, srv := range servers {
		g.Go(func() error {
			log.Info("HTTP server started", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server %s: %w", srv.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down")
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, srv := range servers {
			srv.Shutdown(shutdown)
		}
		return nil
	})
	return g.Wait()
}
