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
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func newTestMintView(t *testing.T, nft *fakeNFT, chain *fakeChain, clock clockwork.Clock) *MintView {
	t.Helper()
	m, err := NewMintView(MintConfig{
		Logger:    testLogger(),
		Clock:     clock,
		NFT:       nft,
		Minter:    chain,
		Confirmer: chain,
		Wallet:    &fakeWallet{account: addr(3)},
		MaxSupply: 5,
		Price:     big.NewInt(40_000_000_000_000_000),
	})
	require.NoError(t, err)
	return m
}

func TestMintConfigValidate(t *testing.T) {
	chain := newFakeChain()
	cfg := MintConfig{NFT: newFakeNFT(), Minter: chain, Confirmer: chain, Price: big.NewInt(1)}
	require.Error(t, cfg.Validate())

	cfg.MaxSupply = 150
	require.NoError(t, cfg.Validate())
	require.Equal(t, DefaultRefreshInterval, cfg.RefreshInterval)

	cfg.Price = big.NewInt(-1)
	require.Error(t, cfg.Validate())
}

func TestMintViewCounters(t *testing.T) {
	m := newTestMintView(t, newFakeNFT(addr(0), addr(1)), newFakeChain(), clockwork.NewFakeClock())
	require.NoError(t, m.Refresh(context.Background()))
	require.Equal(t, uint64(2), m.Supply())
	require.Equal(t, uint64(5), m.MaxSupply())
	require.Equal(t, uint64(3), m.Remaining())
	require.Equal(t, "120000000000000000", m.Quote(3).String())
}

func TestMint(t *testing.T) {
	nft := newFakeNFT(addr(0))
	chain := newFakeChain()
	m := newTestMintView(t, nft, chain, clockwork.NewFakeClock())

	_, err := m.Mint(context.Background(), 0)
	require.ErrorIs(t, err, ErrMintAmount)

	_, err = m.Mint(context.Background(), 5)
	require.ErrorIs(t, err, ErrMintExceedsSupply)
	require.Zero(t, chain.writes())

	_, err = m.Mint(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, chain.mints, 1)
	require.Equal(t, "80000000000000000", chain.mints[0].Value.String())
	require.Equal(t, addr(3), chain.mints[0].From)
}

func TestMintViewStart(t *testing.T) {
	nft := newFakeNFT(addr(0))
	clock := clockwork.NewFakeClock()
	m := newTestMintView(t, nft, newFakeChain(), clock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	require.Equal(t, uint64(1), m.Supply())

	nft.mu.Lock()
	nft.owners = append(nft.owners, addr(1), addr(2))
	nft.mu.Unlock()

	clock.Advance(DefaultRefreshInterval)
	require.Eventually(t, func() bool { return m.Supply() == 3 }, time.Second, 5*time.Millisecond)
}
