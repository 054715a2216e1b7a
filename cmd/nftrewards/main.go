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

// nftrewards operates the NFT holder rewards program.
//
// It connects to an EVM node, counts the holders of the NFT collection and
// credits each of them through the rewards splitter in sequential batches.
// The same binary claims rewards, lists owned tokens, mints, funds the
// splitter and serves a JSON-RPC API with Prometheus metrics.
//
// Usage:
//
//	nftrewards [--config nftrewards.yaml] [--rpc <endpoint>] <command> [arguments]
package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	app = cli.NewApp()

	// Flags
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "YAML deployment file",
		Value: "nftrewards.yaml",
	}
	rpcFlag = cli.StringFlag{
		Name:  "rpc",
		Usage: "EVM JSON-RPC endpoint (e.g. https://bsc-dataseed.binance.org)",
	}
	keyfileFlag = cli.StringFlag{
		Name:  "keyfile",
		Usage: "Path to the JSON keyfile of the operator wallet",
	}
	nftFlag = cli.StringFlag{
		Name:  "nft",
		Usage: "NFT collection contract address",
	}
	splitterFlag = cli.StringFlag{
		Name:  "splitter",
		Usage: "Rewards splitter contract address",
	}
	tokenFlag = cli.StringFlag{
		Name:  "token",
		Usage: "Reward token contract address",
	}
	decimalsFlag = cli.UintFlag{
		Name:  "decimals",
		Usage: "Reward token decimals (read from the token when unset and a token is configured)",
	}
	batchSizeFlag = cli.IntFlag{
		Name:  "batchsize",
		Usage: "Holders credited per transaction",
	}
	gasLimitFlag = cli.Uint64Flag{
		Name:  "gaslimit",
		Usage: "Gas limit of each batch transaction",
	}
	formulaFlag = cli.StringFlag{
		Name:  "formula",
		Usage: `Unallocated pool formula: "balance" or "claimed"`,
	}
	logFormatFlag = cli.StringFlag{
		Name:  "log.format",
		Usage: `Log format: "terminal", "json" or "tint"`,
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: -1,
	}
	listenFlag = cli.StringFlag{
		Name:  "listen",
		Usage: "HTTP listen address for the JSON-RPC API",
	}
	metricsFlag = cli.StringFlag{
		Name:  "metrics.addr",
		Usage: "HTTP listen address for Prometheus metrics",
	}
)

func init() {
	app.Name = "nftrewards"
	app.Usage = "NFT holder rewards distributor"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		configFlag,
		rpcFlag,
		keyfileFlag,
		nftFlag,
		splitterFlag,
		tokenFlag,
		decimalsFlag,
		batchSizeFlag,
		gasLimitFlag,
		formulaFlag,
		logFormatFlag,
		verbosityFlag,
	}
	app.Before = func(ctx *cli.Context) error {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		return setupLogging(cfg.Log.Format, cfg.Log.Verbosity)
	}
	app.Commands = []cli.Command{
		{
			Name:   "info",
			Usage:  "Print the splitter books and the per-NFT maximum",
			Action: infoCmd,
		},
		{
			Name:   "holders",
			Usage:  "Count the holders of the collection",
			Action: holdersCmd,
		},
		{
			Name:      "distribute",
			Usage:     "Credit every holder the given reward per NFT held",
			ArgsUsage: "<amount per NFT>",
			Action:    distributeCmd,
		},
		{
			Name:   "claim",
			Usage:  "Claim the rewards of the wallet account",
			Action: claimCmd,
		},
		{
			Name:   "withdraw",
			Usage:  "Withdraw the splitter balance (owner only)",
			Action: withdrawCmd,
		},
		{
			Name:      "nfts",
			Usage:     "List the tokens an address holds",
			ArgsUsage: "[address]",
			Action:    nftsCmd,
		},
		{
			Name:      "mint",
			Usage:     "Mint NFTs to the wallet account",
			ArgsUsage: "<count>",
			Action:    mintCmd,
		},
		{
			Name:      "fund",
			Usage:     "Send reward tokens to the splitter",
			ArgsUsage: "<amount>",
			Action:    fundCmd,
		},
		{
			Name:      "approve",
			Usage:     "Allow a spender to move reward tokens of the wallet account",
			ArgsUsage: "<spender> <amount>",
			Action:    approveCmd,
		},
		{
			Name:   "price",
			Usage:  "Print the reward token USD price",
			Action: priceCmd,
		},
		{
			Name:   "serve",
			Usage:  "Serve the JSON-RPC API and Prometheus metrics",
			Action: serveCmd,
			Flags: []cli.Flag{
				listenFlag,
				metricsFlag,
			},
		},
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
