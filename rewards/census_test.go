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
	"math/rand"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestTakeCensus(t *testing.T) {
	a, b, c := addr(0), addr(1), addr(2)
	nft := newFakeNFT(b, a, b, c, a, b)

	set, err := TakeCensus(context.Background(), nft, DefaultCensusOptions())
	require.NoError(t, err)
	require.Equal(t, uint64(6), set.Supply)
	require.Equal(t, uint64(6), set.Counted())
	require.Equal(t, []HolderRecord{
		{Address: b, NFTCount: 3},
		{Address: a, NFTCount: 2},
		{Address: c, NFTCount: 1},
	}, set.Holders)
	require.Equal(t, float64(3), testutil.ToFloat64(censusHolders))

	require.Equal(t, int64(1), nft.supplyCalls.Load())
	require.Equal(t, int64(6), nft.indexCalls.Load())
	require.Equal(t, int64(6), nft.ownerCalls.Load())
}

func TestTakeCensusCountsEveryToken(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	owners := make([]common.Address, 150)
	for i := range owners {
		owners[i] = addr(rng.Intn(40))
	}

	for _, concurrency := range []int{1, 4, 32} {
		set, err := TakeCensus(context.Background(), newFakeNFT(owners...), CensusOptions{Concurrency: concurrency})
		require.NoError(t, err)
		require.Equal(t, uint64(150), set.Counted())

		seen := make(map[common.Address]bool)
		for _, h := range set.Holders {
			require.False(t, seen[h.Address], "duplicate holder %s", h.Address)
			require.NotZero(t, h.NFTCount)
			seen[h.Address] = true
		}
	}
}

func TestTakeCensusOrderIsDeterministic(t *testing.T) {
	owners := make([]common.Address, 64)
	for i := range owners {
		owners[i] = addr((i * 7) % 13)
	}
	first, err := TakeCensus(context.Background(), newFakeNFT(owners...), CensusOptions{Concurrency: 1})
	require.NoError(t, err)
	second, err := TakeCensus(context.Background(), newFakeNFT(owners...), CensusOptions{Concurrency: 16})
	require.NoError(t, err)
	require.Equal(t, first.Holders, second.Holders)
}

func TestTakeCensusEmptyCollection(t *testing.T) {
	nft := newFakeNFT()
	set, err := TakeCensus(context.Background(), nft, DefaultCensusOptions())
	require.NoError(t, err)
	require.Empty(t, set.Holders)
	require.Zero(t, set.Supply)
	require.Zero(t, nft.indexCalls.Load())
}

func TestTakeCensusFailsOnAnyLookup(t *testing.T) {
	nft := newFakeNFT(addr(0), addr(1), addr(2), addr(3))
	nft.failOwner[3] = errRPC

	set, err := TakeCensus(context.Background(), nft, CensusOptions{Concurrency: 2})
	require.Nil(t, set)
	var rerr *ReadError
	require.ErrorAs(t, err, &rerr)
	require.ErrorIs(t, err, errRPC)
	require.Contains(t, rerr.Op, "ownerOf")
	require.True(t, rerr.Retryable())
}

func TestTakeCensusSupplyError(t *testing.T) {
	nft := newFakeNFT(addr(0))
	nft.supplyErr = errRPC

	_, err := TakeCensus(context.Background(), nft, DefaultCensusOptions())
	var rerr *ReadError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, "totalSupply", rerr.Op)
	require.Zero(t, nft.indexCalls.Load())
}

func TestTakeCensusCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := TakeCensus(ctx, newFakeNFT(addr(0), addr(1)), CensusOptions{Rate: rate.Limit(1), Burst: 1})
	require.ErrorIs(t, err, context.Canceled)
}

func TestTakeCensusRejectsUnownedToken(t *testing.T) {
	nft := newFakeNFT(addr(0), common.Address{}, addr(1))

	set, err := TakeCensus(context.Background(), nft, CensusOptions{Concurrency: 1})
	require.Nil(t, set)
	require.ErrorIs(t, err, ErrCensusInconsistent)
	require.ErrorContains(t, err, "token 2")
}
