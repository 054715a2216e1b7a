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
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// CensusOptions bounds the load a census puts on the RPC endpoint.
type CensusOptions struct {
	// Concurrency is the number of tokens resolved in parallel.
	Concurrency int

	// Rate caps contract reads per second; rate.Inf disables the cap.
	Rate  rate.Limit
	Burst int
}

// DefaultCensusOptions returns 16 parallel lookups with no rate cap.
func DefaultCensusOptions() CensusOptions {
	return CensusOptions{Concurrency: 16, Rate: rate.Inf, Burst: 1}
}

func (o CensusOptions) withDefaults() CensusOptions {
	if o.Concurrency <= 0 {
		o.Concurrency = 16
	}
	if o.Rate == 0 {
		o.Rate = rate.Inf
	}
	if o.Burst <= 0 {
		o.Burst = 1
	}
	return o
}

// TakeCensus enumerates every token of the collection and counts tokens per
// owner. The supply is read once; tokens minted while the census runs are not
// counted. Any failed lookup fails the whole census, since a silently
// skipped token would shortchange its holder.
func TakeCensus(ctx context.Context, nft NFTReader, opts CensusOptions) (*HolderSet, error) {
	opts = opts.withDefaults()
	started := time.Now()

	supply, err := nft.TotalSupply(ctx)
	if err != nil {
		return nil, &ReadError{Op: "totalSupply", Err: err}
	}

	owners := make([]common.Address, supply)
	limiter := rate.NewLimiter(opts.Rate, opts.Burst)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i := uint64(0); i < supply; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return err
			}
			id, err := nft.TokenByIndex(gctx, i)
			if err != nil {
				return &ReadError{Op: fmt.Sprintf("tokenByIndex(%d)", i), Err: err}
			}
			if err := limiter.Wait(gctx); err != nil {
				return err
			}
			owner, err := nft.OwnerOf(gctx, id)
			if err != nil {
				return &ReadError{Op: fmt.Sprintf("ownerOf(%s)", id), Err: err}
			}
			if owner == (common.Address{}) {
				return fmt.Errorf("%w: token %s", ErrCensusInconsistent, id)
			}
			owners[i] = owner
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var rerr *ReadError
		if errors.As(err, &rerr) || errors.Is(err, ErrCensusInconsistent) {
			return nil, err
		}
		return nil, &ReadError{Op: "census", Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &ReadError{Op: "census", Err: err}
	}

	set := &HolderSet{Supply: supply}
	index := make(map[common.Address]int)
	for _, owner := range owners {
		if pos, ok := index[owner]; ok {
			set.Holders[pos].NFTCount++
			continue
		}
		index[owner] = len(set.Holders)
		set.Holders = append(set.Holders, HolderRecord{Address: owner, NFTCount: 1})
	}
	censusHolders.Set(float64(len(set.Holders)))
	censusDuration.Observe(time.Since(started).Seconds())
	return set, nil
}
