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

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fixedPrice struct {
	price decimal.Decimal
	err   error
}

func (p fixedPrice) TokenPriceUSD(ctx context.Context, token common.Address) (decimal.Decimal, error) {
	return p.price, p.err
}

func newTestClaimView(t *testing.T, splitter *fakeSplitter, chain *fakeChain, wallet WalletProvider) *ClaimView {
	t.Helper()
	v, err := NewClaimView(ClaimConfig{
		Logger:    testLogger(),
		Splitter:  splitter,
		Writer:    chain,
		Confirmer: chain,
		Wallet:    wallet,
		Units:     Units{Decimals: 9},
		Prices:    fixedPrice{price: decimal.RequireFromString("0.25")},
		Token:     common.HexToAddress("0x5e0e0e0e0e0e0e0e0e0e0e0e0e0e0e0e0e0e0e0e"),
	})
	require.NoError(t, err)
	return v
}

func TestClaimViewRefresh(t *testing.T) {
	wallet := &fakeWallet{account: addr(7)}
	splitter := newFakeSplitter(0, 0, 0)
	splitter.rewards[addr(7)] = big.NewInt(12_000_000_000)
	splitter.claimedBy[addr(7)] = big.NewInt(3_000_000_000)

	v := newTestClaimView(t, splitter, newFakeChain(), wallet)
	require.NoError(t, v.Refresh(context.Background()))
	require.Equal(t, addr(7), v.Account())
	require.Equal(t, int64(12_000_000_000), v.Claimable().Int64())
	require.Equal(t, int64(3_000_000_000), v.Claimed().Int64())

	usd, ok := v.USDValue()
	require.True(t, ok)
	require.Equal(t, "3.00", usd)
}

func TestClaimViewPriceFailureIsNotFatal(t *testing.T) {
	splitter := newFakeSplitter(0, 0, 0)
	v, err := NewClaimView(ClaimConfig{
		Logger:    testLogger(),
		Splitter:  splitter,
		Writer:    newFakeChain(),
		Confirmer: newFakeChain(),
		Wallet:    &fakeWallet{account: addr(1)},
		Prices:    fixedPrice{err: ErrPriceNotFound},
		Token:     addr(9),
	})
	require.NoError(t, err)
	require.NoError(t, v.Refresh(context.Background()))

	usd, ok := v.USDValue()
	require.False(t, ok)
	require.Equal(t, "0.00", usd)
}

func TestClaim(t *testing.T) {
	wallet := &fakeWallet{account: addr(7)}
	splitter := newFakeSplitter(0, 0, 0)
	splitter.rewards[addr(7)] = big.NewInt(5)
	chain := newFakeChain()

	v := newTestClaimView(t, splitter, chain, wallet)
	receipt, err := v.Claim(context.Background())
	require.NoError(t, err)
	require.NotNil(t, receipt)
	require.Equal(t, 1, chain.claims)
	require.Equal(t, 1, chain.mined)
}

func TestClaimNothing(t *testing.T) {
	chain := newFakeChain()
	v := newTestClaimView(t, newFakeSplitter(0, 0, 0), chain, &fakeWallet{account: addr(7)})

	_, err := v.Claim(context.Background())
	require.ErrorIs(t, err, ErrNothingToClaim)
	require.Zero(t, chain.writes())
}

func TestClaimReverted(t *testing.T) {
	splitter := newFakeSplitter(0, 0, 0)
	splitter.rewards[addr(7)] = big.NewInt(5)
	chain := newFakeChain()
	chain.revert[0] = true

	v := newTestClaimView(t, splitter, chain, &fakeWallet{account: addr(7)})
	_, err := v.Claim(context.Background())
	require.ErrorIs(t, err, ErrTxReverted)
}

func TestClaimWithoutWallet(t *testing.T) {
	v := newTestClaimView(t, newFakeSplitter(0, 0, 0), newFakeChain(), nil)
	_, err := v.Claim(context.Background())
	require.ErrorIs(t, err, ErrWalletUnavailable)
}

func TestWithdraw(t *testing.T) {
	splitter := newFakeSplitter(0, 0, 0)
	splitter.owner = addr(1)
	chain := newFakeChain()

	v := newTestClaimView(t, splitter, chain, &fakeWallet{account: addr(2)})
	_, err := v.Withdraw(context.Background())
	require.ErrorIs(t, err, ErrNotOwner)
	require.Zero(t, chain.withdraw)

	v = newTestClaimView(t, splitter, chain, &fakeWallet{account: addr(1)})
	_, err = v.Withdraw(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, chain.withdraw)
}
