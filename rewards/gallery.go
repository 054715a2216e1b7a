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
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// OwnedTokens lists the token ids owner holds, in the collection's
// per-owner enumeration order. A failed lookup fails the listing.
func OwnedTokens(ctx context.Context, nft NFTReader, owner common.Address) ([]*big.Int, error) {
	balance, err := nft.BalanceOf(ctx, owner)
	if err != nil {
		return nil, &ReadError{Op: "balanceOf", Err: err}
	}
	ids := make([]*big.Int, 0, balance)
	for i := uint64(0); i < balance; i++ {
		id, err := nft.TokenOfOwnerByIndex(ctx, owner, i)
		if err != nil {
			return nil, &ReadError{Op: fmt.Sprintf("tokenOfOwnerByIndex(%d)", i), Err: err}
		}
		ids = append(ids, id)
	}
	return ids, nil
}
