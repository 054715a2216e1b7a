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
	"errors"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
)

var errRPC = errors.New("connection refused")

func testLogger() log.Logger {
	return log.NewLogger(slog.NewTextHandler(io.Discard, nil))
}

func addr(i int) common.Address {
	return common.BigToAddress(big.NewInt(int64(i + 1)))
}

// fakeNFT serves a collection where the token at enumeration index i has id
// i+1 and belongs to owners[i].
type fakeNFT struct {
	mu     sync.Mutex
	owners []common.Address

	supplyErr error
	failOwner map[uint64]error // token id -> error

	supplyCalls atomic.Int64
	indexCalls  atomic.Int64
	ownerCalls  atomic.Int64
}

func newFakeNFT(owners ...common.Address) *fakeNFT {
	return &fakeNFT{owners: owners, failOwner: make(map[uint64]error)}
}

func (f *fakeNFT) reads() int64 {
	return f.supplyCalls.Load() + f.indexCalls.Load() + f.ownerCalls.Load()
}

func (f *fakeNFT) TotalSupply(ctx context.Context) (uint64, error) {
	f.supplyCalls.Add(1)
	if f.supplyErr != nil {
		return 0, f.supplyErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint64(len(f.owners)), nil
}

func (f *fakeNFT) TokenByIndex(ctx context.Context, index uint64) (*big.Int, error) {
	f.indexCalls.Add(1)
	return new(big.Int).SetUint64(index + 1), nil
}

func (f *fakeNFT) OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error) {
	f.ownerCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOwner[tokenID.Uint64()]; err != nil {
		return common.Address{}, err
	}
	return f.owners[tokenID.Uint64()-1], nil
}

func (f *fakeNFT) BalanceOf(ctx context.Context, owner common.Address) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n uint64
	for _, o := range f.owners {
		if o == owner {
			n++
		}
	}
	return n, nil
}

func (f *fakeNFT) TokenOfOwnerByIndex(ctx context.Context, owner common.Address, index uint64) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var seen uint64
	for i, o := range f.owners {
		if o != owner {
			continue
		}
		if seen == index {
			return big.NewInt(int64(i + 1)), nil
		}
		seen++
	}
	return nil, errors.New("owner index out of bounds")
}

type fakeSplitter struct {
	mu        sync.Mutex
	balance   *big.Int
	allocated *big.Int
	claimed   *big.Int
	owner     common.Address
	rewards   map[common.Address]*big.Int
	claimedBy map[common.Address]*big.Int
	err       error

	reads atomic.Int64
}

func newFakeSplitter(balance, allocated, claimed int64) *fakeSplitter {
	return &fakeSplitter{
		balance:   big.NewInt(balance),
		allocated: big.NewInt(allocated),
		claimed:   big.NewInt(claimed),
		rewards:   make(map[common.Address]*big.Int),
		claimedBy: make(map[common.Address]*big.Int),
	}
}

func (f *fakeSplitter) read(v *big.Int) (*big.Int, error) {
	f.reads.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return new(big.Int).Set(v), nil
}

func (f *fakeSplitter) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeSplitter) RewardTokenBalance(ctx context.Context) (*big.Int, error) {
	return f.read(f.balance)
}

func (f *fakeSplitter) TotalAllocatedRewards(ctx context.Context) (*big.Int, error) {
	return f.read(f.allocated)
}

func (f *fakeSplitter) TotalClaimedRewards(ctx context.Context) (*big.Int, error) {
	return f.read(f.claimed)
}

func (f *fakeSplitter) ClaimedRewards(ctx context.Context, account common.Address) (*big.Int, error) {
	f.mu.Lock()
	v, ok := f.claimedBy[account]
	f.mu.Unlock()
	if !ok {
		v = new(big.Int)
	}
	return f.read(v)
}

func (f *fakeSplitter) Rewards(ctx context.Context, account common.Address) (*big.Int, error) {
	f.mu.Lock()
	v, ok := f.rewards[account]
	f.mu.Unlock()
	if !ok {
		v = new(big.Int)
	}
	return f.read(v)
}

func (f *fakeSplitter) Owner(ctx context.Context) (common.Address, error) {
	f.reads.Add(1)
	return f.owner, f.err
}

// fakeChain records every write and mines it on WaitMined. Writes listed in
// revert produce a failed receipt; writes listed in reject are refused
// before reaching the mempool.
type fakeChain struct {
	mu       sync.Mutex
	nonce    uint64
	reverted map[common.Hash]bool

	revert map[int]bool // call number -> reverts
	reject map[int]error

	batches  []batchCall
	claims   int
	withdraw int
	mints    []*bind.TransactOpts
	approves []*big.Int
	sends    []*big.Int
	mined    int

	// onBatch runs after a batch is accepted, before it is mined.
	onBatch func(holders []common.Address, amounts []*big.Int)
}

type batchCall struct {
	opts    bind.TransactOpts
	holders []common.Address
	amounts []*big.Int
}

func newFakeChain() *fakeChain {
	return &fakeChain{reverted: make(map[common.Hash]bool), revert: make(map[int]bool), reject: make(map[int]error)}
}

func (f *fakeChain) send() (*types.Transaction, error) {
	call := int(f.nonce)
	if err := f.reject[call]; err != nil {
		f.nonce++
		return nil, err
	}
	tx := types.NewTx(&types.LegacyTx{Nonce: f.nonce, GasPrice: big.NewInt(1), Gas: 21000})
	f.nonce++
	if f.revert[call] {
		f.reverted[tx.Hash()] = true
	}
	return tx, nil
}

func (f *fakeChain) BatchRewardAddresses(opts *bind.TransactOpts, holders []common.Address, amounts []*big.Int) (*types.Transaction, error) {
	f.mu.Lock()
	f.batches = append(f.batches, batchCall{opts: *opts, holders: holders, amounts: amounts})
	tx, err := f.send()
	hook := f.onBatch
	f.mu.Unlock()
	if err == nil && hook != nil {
		hook(holders, amounts)
	}
	return tx, err
}

func (f *fakeChain) ClaimRewards(opts *bind.TransactOpts) (*types.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.claims++
	return f.send()
}

func (f *fakeChain) WithdrawRewards(opts *bind.TransactOpts) (*types.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.withdraw++
	return f.send()
}

func (f *fakeChain) Mint(opts *bind.TransactOpts, amount *big.Int) (*types.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *opts
	f.mints = append(f.mints, &copied)
	return f.send()
}

func (f *fakeChain) Approve(opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.approves = append(f.approves, amount)
	return f.send()
}

func (f *fakeChain) Transfer(opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, amount)
	return f.send()
}

func (f *fakeChain) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mined++
	receipt := &types.Receipt{TxHash: tx.Hash(), Status: types.ReceiptStatusSuccessful}
	if f.reverted[tx.Hash()] {
		receipt.Status = types.ReceiptStatusFailed
	}
	return receipt, nil
}

func (f *fakeChain) writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int(f.nonce)
}

type fakeWallet struct {
	account  common.Address
	err      error
	requests atomic.Int64
}

func (w *fakeWallet) RequestAccess(ctx context.Context) (common.Address, error) {
	w.requests.Add(1)
	return w.account, w.err
}

func (w *fakeWallet) Signer(ctx context.Context) (*bind.TransactOpts, error) {
	if w.err != nil {
		return nil, w.err
	}
	return &bind.TransactOpts{From: w.account, Context: ctx}, nil
}
