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

	"github.com/ethereum/go-ethereum/common"
)

// DefaultBatchSize is the number of holders credited per transaction.
const DefaultBatchSize = 50

// PlanBatches splits holders into contiguous batches of at most size,
// keeping census order. Each holder is credited perUnit times its count.
func PlanBatches(holders []HolderRecord, perUnit *big.Int, size int) []Batch {
	if size <= 0 {
		size = DefaultBatchSize
	}
	batches := make([]Batch, 0, (len(holders)+size-1)/size)
	for start := 0; start < len(holders); start += size {
		end := min(start+size, len(holders))
		b := Batch{
			Index:   len(batches),
			Holders: make([]common.Address, 0, end-start),
			Counts:  make([]uint64, 0, end-start),
			Amounts: make([]*big.Int, 0, end-start),
		}
		for _, h := range holders[start:end] {
			b.Holders = append(b.Holders, h.Address)
			b.Counts = append(b.Counts, h.NFTCount)
			b.Amounts = append(b.Amounts, new(big.Int).Mul(perUnit, new(big.Int).SetUint64(h.NFTCount)))
		}
		batches = append(batches, b)
	}
	return batches
}
