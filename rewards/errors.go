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
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// Errors returned by the rewards flows.
var (
	ErrWalletUnavailable  = errors.New("rewards: no crypto wallet found")
	ErrNotOwner           = errors.New("rewards: account is not the splitter owner")
	ErrNothingToClaim     = errors.New("rewards: nothing to claim")
	ErrNoHolders          = errors.New("rewards: no NFT holders found")
	ErrRunInProgress      = errors.New("rewards: a distribution run is already in progress")
	ErrTxReverted         = errors.New("rewards: transaction reverted")
	ErrTokenNotConfigured = errors.New("rewards: reward token address not configured")
	ErrMintAmount         = errors.New("rewards: mint amount must be at least 1")
	ErrMintExceedsSupply  = errors.New("rewards: mint amount exceeds remaining supply")
	ErrCensusInconsistent = errors.New("rewards: census found a token without an owner")
	ErrSupplyOutOfRange   = errors.New("rewards: total supply does not fit in 64 bits")
	ErrPriceNotFound      = errors.New("rewards: token price not found")
)

// Operator-facing validation messages.
const (
	MsgAmountRequired    = "Please enter a reward amount."
	MsgAmountNotPositive = "Amount must be higher than zero"
)

// ValidationError rejects operator input before anything is sent on-chain.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ReadError wraps a failed contract read. Reads are idempotent, so the
// operation may be retried as is.
type ReadError struct {
	Op  string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("rewards: read %s failed: %v", e.Op, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Retryable reports whether repeating the failed operation is safe.
func (e *ReadError) Retryable() bool { return true }

// TxError wraps a rejected or reverted transaction. Batch is -1 outside of
// a distribution run.
type TxError struct {
	Op     string
	Batch  int
	Hash   common.Hash
	Reason string
	Err    error
}

func (e *TxError) Error() string {
	if e.Batch >= 0 {
		return fmt.Sprintf("rewards: %s (batch %d) failed: %s", e.Op, e.Batch+1, e.Reason)
	}
	return fmt.Sprintf("rewards: %s failed: %s", e.Op, e.Reason)
}

func (e *TxError) Unwrap() error { return e.Err }

func newTxError(op string, batch int, hash common.Hash, err error) *TxError {
	return &TxError{Op: op, Batch: batch, Hash: hash, Reason: revertReason(err), Err: err}
}

// revertReason extracts the Error(string) payload a node attaches to a
// failed call, falling back to the raw error text.
func revertReason(err error) string {
	var de rpc.DataError
	if errors.As(err, &de) {
		if s, ok := de.ErrorData().(string); ok {
			if data, derr := hexutil.Decode(s); derr == nil {
				if reason, uerr := abi.UnpackRevert(data); uerr == nil {
					return reason
				}
			}
		}
	}
	return err.Error()
}
