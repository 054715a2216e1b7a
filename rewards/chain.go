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

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// NFTReader is the read side of the NFT collection.
type NFTReader interface {
	// TotalSupply returns the number of tokens currently in the enumeration.
	TotalSupply(ctx context.Context) (uint64, error)

	// TokenByIndex maps an enumeration index in [0, TotalSupply) to a token id.
	TokenByIndex(ctx context.Context, index uint64) (*big.Int, error)

	// OwnerOf returns the current owner of a token.
	OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error)

	// BalanceOf returns how many tokens owner holds.
	BalanceOf(ctx context.Context, owner common.Address) (uint64, error)

	// TokenOfOwnerByIndex maps an index in [0, BalanceOf(owner)) to a token id.
	TokenOfOwnerByIndex(ctx context.Context, owner common.Address, index uint64) (*big.Int, error)
}

// NFTMinter is the write side of the NFT collection.
type NFTMinter interface {
	Mint(opts *bind.TransactOpts, amount *big.Int) (*types.Transaction, error)
}

// SplitterReader is the read side of the rewards splitter. Amounts are in
// the reward token's smallest unit.
type SplitterReader interface {
	RewardTokenBalance(ctx context.Context) (*big.Int, error)
	TotalAllocatedRewards(ctx context.Context) (*big.Int, error)
	TotalClaimedRewards(ctx context.Context) (*big.Int, error)
	ClaimedRewards(ctx context.Context, account common.Address) (*big.Int, error)
	Rewards(ctx context.Context, account common.Address) (*big.Int, error)
	Owner(ctx context.Context) (common.Address, error)
}

// SplitterWriter is the write side of the rewards splitter.
type SplitterWriter interface {
	BatchRewardAddresses(opts *bind.TransactOpts, holders []common.Address, amounts []*big.Int) (*types.Transaction, error)
	ClaimRewards(opts *bind.TransactOpts) (*types.Transaction, error)
	WithdrawRewards(opts *bind.TransactOpts) (*types.Transaction, error)
}

// TokenWriter is the write side of the ERC-20 reward token.
type TokenWriter interface {
	Approve(opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Transaction, error)
	Transfer(opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Transaction, error)
}

// Confirmer blocks until a submitted transaction is mined.
type Confirmer interface {
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

// confirm waits for tx and turns a failed receipt into a TxError.
func confirm(ctx context.Context, c Confirmer, op string, batch int, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := c.WaitMined(ctx, tx)
	if err != nil {
		return nil, newTxError(op, batch, tx.Hash(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, &TxError{Op: op, Batch: batch, Hash: tx.Hash(), Reason: "transaction reverted", Err: ErrTxReverted}
	}
	return receipt, nil
}
