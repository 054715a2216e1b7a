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
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveRead(t *testing.T) {
	ok := rpcReadsTotal.WithLabelValues("ownerOf", "success")
	failed := rpcReadsTotal.WithLabelValues("ownerOf", "error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	observeRead("ownerOf", nil, time.Now())
	observeRead("ownerOf", errRPC, time.Now())
	observeRead("ownerOf", nil, time.Now())

	require.Equal(t, okBefore+2, testutil.ToFloat64(ok))
	require.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}

func TestObserveTx(t *testing.T) {
	reverted := transactionsTotal.WithLabelValues("receipt", "error")
	before := testutil.ToFloat64(reverted)
	observeTx("receipt", ErrTxReverted)
	require.Equal(t, before+1, testutil.ToFloat64(reverted))
}
