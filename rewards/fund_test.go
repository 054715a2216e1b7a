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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFunderTransfer(t *testing.T) {
	chain := newFakeChain()
	f := &Funder{Logger: testLogger(), Token: chain, Confirmer: chain, Wallet: &fakeWallet{account: addr(1)}, Units: Units{Decimals: 9}}

	_, err := f.Transfer(context.Background(), addr(2), "1.5")
	require.NoError(t, err)
	require.Len(t, chain.sends, 1)
	require.Equal(t, int64(1_500_000_000), chain.sends[0].Int64())
}

func TestFunderApprove(t *testing.T) {
	chain := newFakeChain()
	f := &Funder{Token: chain, Confirmer: chain, Wallet: &fakeWallet{account: addr(1)}, Units: Units{Decimals: 0}}

	_, err := f.Approve(context.Background(), addr(2), "1000")
	require.NoError(t, err)
	require.Len(t, chain.approves, 1)
	require.Equal(t, int64(1000), chain.approves[0].Int64())
}

func TestFunderValidation(t *testing.T) {
	chain := newFakeChain()
	f := &Funder{Token: chain, Confirmer: chain, Wallet: &fakeWallet{account: addr(1)}, Units: Units{Decimals: 9}}

	var verr *ValidationError
	_, err := f.Transfer(context.Background(), addr(2), "")
	require.ErrorAs(t, err, &verr)
	require.Equal(t, MsgAmountRequired, verr.Msg)

	_, err = f.Transfer(context.Background(), addr(2), "0")
	require.ErrorAs(t, err, &verr)
	require.Equal(t, MsgAmountNotPositive, verr.Msg)

	_, err = f.Approve(context.Background(), addr(2), "1.0000000001")
	require.ErrorAs(t, err, &verr)
	require.Zero(t, chain.writes())
}

func TestFunderWithoutToken(t *testing.T) {
	f := &Funder{Wallet: &fakeWallet{account: addr(1)}}
	_, err := f.Transfer(context.Background(), addr(2), "1")
	require.ErrorIs(t, err, ErrTokenNotConfigured)
}

func TestOwnedTokens(t *testing.T) {
	nft := newFakeNFT(addr(0), addr(1), addr(0), addr(0))

	ids, err := OwnedTokens(context.Background(), nft, addr(0))
	require.NoError(t, err)
	require.Len(t, ids, 3)
	require.Equal(t, "1", ids[0].String())
	require.Equal(t, "3", ids[1].String())
	require.Equal(t, "4", ids[2].String())

	ids, err = OwnedTokens(context.Background(), nft, addr(5))
	require.NoError(t, err)
	require.Empty(t, ids)
}
