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
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/frozenbread/nftrewards/contracts/rewards/contract"
)

// Splitter is a wrapper around the on-chain rewards splitter. The splitter
// holds the reward token, records per-holder allocations and pays them out
// on claim.
type Splitter struct {
	bound
}

// NewSplitter connects to an already-deployed rewards splitter.
func NewSplitter(addr common.Address, backend bind.ContractBackend) (*Splitter, error) {
	b, err := newBound(addr, contract.SplitterABI, backend)
	if err != nil {
		return nil, err
	}
	return &Splitter{bound: b}, nil
}

// ──────────────────────────────────────────────
//  Write methods
// ──────────────────────────────────────────────

// BatchRewardAddresses credits amounts[i] to holders[i] (owner-only).
func (s *Splitter) BatchRewardAddresses(opts *bind.TransactOpts, holders []common.Address, amounts []*big.Int) (*types.Transaction, error) {
	return s.contract.Transact(opts, "batchRewardAddresses", holders, amounts)
}

// ClaimRewards pays the sender's allocation out in reward tokens.
func (s *Splitter) ClaimRewards(opts *bind.TransactOpts) (*types.Transaction, error) {
	return s.contract.Transact(opts, "claimRewards")
}

// WithdrawRewards returns the splitter's token balance to the owner (owner-only).
func (s *Splitter) WithdrawRewards(opts *bind.TransactOpts) (*types.Transaction, error) {
	return s.contract.Transact(opts, "withdrawRewards")
}

// ──────────────────────────────────────────────
//  Read methods
// ──────────────────────────────────────────────

// RewardTokenBalance returns the splitter's reward token balance.
func (s *Splitter) RewardTokenBalance(opts *bind.CallOpts) (*big.Int, error) {
	return s.callBig(opts, "getRewardTokenBalance")
}

// TotalAllocatedRewards returns the sum of all allocations ever recorded.
func (s *Splitter) TotalAllocatedRewards(opts *bind.CallOpts) (*big.Int, error) {
	return s.callBig(opts, "getTotalAllocatedRewards")
}

// TotalClaimedRewards returns the sum of all claims paid out.
func (s *Splitter) TotalClaimedRewards(opts *bind.CallOpts) (*big.Int, error) {
	return s.callBig(opts, "getTotalClaimedRewards")
}

// ClaimedRewards returns how much account has claimed so far.
func (s *Splitter) ClaimedRewards(opts *bind.CallOpts, account common.Address) (*big.Int, error) {
	return s.callBig(opts, "getClaimedRewards", account)
}

// Rewards returns the unclaimed allocation of account.
func (s *Splitter) Rewards(opts *bind.CallOpts, account common.Address) (*big.Int, error) {
	return s.callBig(opts, "rewards", account)
}

// Owner returns the splitter owner.
func (s *Splitter) Owner(opts *bind.CallOpts) (common.Address, error) {
	return s.callAddress(opts, "owner")
}
