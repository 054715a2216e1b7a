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

package rewards

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	rewardscontract "github.com/frozenbread/nftrewards/contracts/rewards"
)

// EthereumBackend implements the chain interfaces of this package over the
// deployed contracts. Every call is recorded in the package metrics.
type EthereumBackend struct {
	client   bind.DeployBackend
	nft      *rewardscontract.NFT
	splitter *rewardscontract.Splitter
	token    *rewardscontract.Token
}

// NewEthereumBackend wires the contract bindings together. token may be nil
// when the deployment never funds or approves from this tool.
func NewEthereumBackend(client bind.DeployBackend, nft *rewardscontract.NFT, splitter *rewardscontract.Splitter, token *rewardscontract.Token) *EthereumBackend {
	return &EthereumBackend{client: client, nft: nft, splitter: splitter, token: token}
}

func callOpts(ctx context.Context) *bind.CallOpts {
	return &bind.CallOpts{Context: ctx}
}

func observed[T any](op string, read func() (T, error)) (T, error) {
	started := time.Now()
	v, err := read()
	observeRead(op, err, started)
	return v, err
}

// ──────────────────────────────────────────────
//  NFT collection
// ──────────────────────────────────────────────

func (e *EthereumBackend) TotalSupply(ctx context.Context) (uint64, error) {
	supply, err := observed("totalSupply", func() (*big.Int, error) { return e.nft.TotalSupply(callOpts(ctx)) })
	if err != nil {
		return 0, err
	}
	if !supply.IsUint64() {
		return 0, ErrSupplyOutOfRange
	}
	return supply.Uint64(), nil
}

func (e *EthereumBackend) TokenByIndex(ctx context.Context, index uint64) (*big.Int, error) {
	return observed("tokenByIndex", func() (*big.Int, error) {
		return e.nft.TokenByIndex(callOpts(ctx), new(big.Int).SetUint64(index))
	})
}

func (e *EthereumBackend) OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error) {
	return observed("ownerOf", func() (common.Address, error) { return e.nft.OwnerOf(callOpts(ctx), tokenID) })
}

func (e *EthereumBackend) BalanceOf(ctx context.Context, owner common.Address) (uint64, error) {
	bal, err := observed("balanceOf", func() (*big.Int, error) { return e.nft.BalanceOf(callOpts(ctx), owner) })
	if err != nil {
		return 0, err
	}
	return bal.Uint64(), nil
}

func (e *EthereumBackend) TokenOfOwnerByIndex(ctx context.Context, owner common.Address, index uint64) (*big.Int, error) {
	return observed("tokenOfOwnerByIndex", func() (*big.Int, error) {
		return e.nft.TokenOfOwnerByIndex(callOpts(ctx), owner, new(big.Int).SetUint64(index))
	})
}

func (e *EthereumBackend) Mint(opts *bind.TransactOpts, amount *big.Int) (*types.Transaction, error) {
	tx, err := e.nft.Mint(opts, amount)
	observeTx("mint", err)
	return tx, err
}

// ──────────────────────────────────────────────
//  Rewards splitter
// ──────────────────────────────────────────────

func (e *EthereumBackend) RewardTokenBalance(ctx context.Context) (*big.Int, error) {
	return observed("getRewardTokenBalance", func() (*big.Int, error) { return e.splitter.RewardTokenBalance(callOpts(ctx)) })
}

func (e *EthereumBackend) TotalAllocatedRewards(ctx context.Context) (*big.Int, error) {
	return observed("getTotalAllocatedRewards", func() (*big.Int, error) { return e.splitter.TotalAllocatedRewards(callOpts(ctx)) })
}

func (e *EthereumBackend) TotalClaimedRewards(ctx context.Context) (*big.Int, error) {
	return observed("getTotalClaimedRewards", func() (*big.Int, error) { return e.splitter.TotalClaimedRewards(callOpts(ctx)) })
}

func (e *EthereumBackend) ClaimedRewards(ctx context.Context, account common.Address) (*big.Int, error) {
	return observed("getClaimedRewards", func() (*big.Int, error) { return e.splitter.ClaimedRewards(callOpts(ctx), account) })
}

func (e *EthereumBackend) Rewards(ctx context.Context, account common.Address) (*big.Int, error) {
	return observed("rewards", func() (*big.Int, error) { return e.splitter.Rewards(callOpts(ctx), account) })
}

func (e *EthereumBackend) Owner(ctx context.Context) (common.Address, error) {
	return observed("owner", func() (common.Address, error) { return e.splitter.Owner(callOpts(ctx)) })
}

func (e *EthereumBackend) BatchRewardAddresses(opts *bind.TransactOpts, holders []common.Address, amounts []*big.Int) (*types.Transaction, error) {
	tx, err := e.splitter.BatchRewardAddresses(opts, holders, amounts)
	observeTx("batchRewardAddresses", err)
	return tx, err
}

func (e *EthereumBackend) ClaimRewards(opts *bind.TransactOpts) (*types.Transaction, error) {
	tx, err := e.splitter.ClaimRewards(opts)
	observeTx("claimRewards", err)
	return tx, err
}

func (e *EthereumBackend) WithdrawRewards(opts *bind.TransactOpts) (*types.Transaction, error) {
	tx, err := e.splitter.WithdrawRewards(opts)
	observeTx("withdrawRewards", err)
	return tx, err
}

// ──────────────────────────────────────────────
//  Reward token
// ──────────────────────────────────────────────

func (e *EthereumBackend) Approve(opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	if e.token == nil {
		return nil, ErrTokenNotConfigured
	}
	tx, err := e.token.Approve(opts, spender, amount)
	observeTx("approve", err)
	return tx, err
}

func (e *EthereumBackend) Transfer(opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Transaction, error) {
	if e.token == nil {
		return nil, ErrTokenNotConfigured
	}
	tx, err := e.token.Transfer(opts, to, amount)
	observeTx("transfer", err)
	return tx, err
}

// WaitMined blocks until tx is included and returns its receipt.
func (e *EthereumBackend) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, e.client, tx)
	if err == nil && receipt.Status != types.ReceiptStatusSuccessful {
		observeTx("receipt", ErrTxReverted)
	} else {
		observeTx("receipt", err)
	}
	return receipt, err
}
