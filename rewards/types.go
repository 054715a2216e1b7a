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

// Package rewards implements the off-chain side of the NFT holder rewards
// program: the holder census over the collection, the unallocated pool and
// per-NFT ceiling derived from the splitter's books, batch planning and the
// strictly sequential batch submission run. It also carries the smaller
// holder-facing flows (claiming, owned token listing, minting, funding).
//
// All state here is transient. The splitter contract owns the authoritative
// allocation totals; every snapshot held by this package is re-read before
// it is trusted.
package rewards

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// HolderRecord is one address and the number of NFTs it held at census time.
type HolderRecord struct {
	Address  common.Address `json:"address"`
	NFTCount uint64         `json:"nftCount"`
}

// HolderSet is the result of a census. Holders are unique and ordered by the
// lowest enumeration index of any token they own.
type HolderSet struct {
	Supply  uint64         `json:"supply"`
	Holders []HolderRecord `json:"holders"`
}

// Counted returns the number of tokens attributed to holders.
func (h *HolderSet) Counted() uint64 {
	var n uint64
	for _, r := range h.Holders {
		n += r.NFTCount
	}
	return n
}

// AllocationState is a cached copy of the splitter's books. All amounts are
// in the reward token's smallest unit.
type AllocationState struct {
	ContractTokenBalance *big.Int
	TotalAllocated       *big.Int
	TotalClaimed         *big.Int
	TotalSupply          uint64
	FetchedAt            time.Time
}

// RewardPlan is the per-NFT reward the operator is about to distribute and
// the ceiling it is checked against, both in smallest units.
type RewardPlan struct {
	PerUnit     *big.Int
	MaxPerUnit  *big.Int
	Unallocated *big.Int

	// Clamped is set when the pool formula went negative and was floored.
	Clamped bool
}

// Batch is a group of holders credited in a single batchRewardAddresses
// transaction. Holders, Counts and Amounts are positionally aligned.
type Batch struct {
	Index   int
	Holders []common.Address
	Counts  []uint64
	Amounts []*big.Int
}

// Total returns the sum of the batch amounts.
func (b Batch) Total() *big.Int {
	sum := new(big.Int)
	for _, a := range b.Amounts {
		sum.Add(sum, a)
	}
	return sum
}
