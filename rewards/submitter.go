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
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// DefaultGasLimit is the fixed gas ceiling attached to every batch.
const DefaultGasLimit = 1_500_000

// RunState is the phase of a distribution run.
type RunState uint8

const (
	StateIdle RunState = iota
	StateValidating
	StateInvalid
	StatePlanning
	StateSubmitting
	StateConfirming
	StateCompleted // every batch confirmed
	StateFailed    // a batch or a prerequisite failed; later batches abandoned
)

// String returns a human-readable state name.
func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateInvalid:
		return "invalid"
	case StatePlanning:
		return "planning"
	case StateSubmitting:
		return "submitting"
	case StateConfirming:
		return "confirming"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Run is one distribution attempt. It cannot be resumed: after a failure a
// new run starts over from a fresh census, which may move batch boundaries.
type Run struct {
	mu        sync.Mutex
	state     RunState
	batch     int
	batches   []Batch
	confirmed []common.Hash
	history   []RunState
	err       error
}

func newRun() *Run {
	return &Run{state: StateIdle, batch: -1, history: []RunState{StateIdle}}
}

func (r *Run) set(s RunState, batch int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = s
	r.batch = batch
	r.history = append(r.history, s)
}

func (r *Run) fail(err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = StateFailed
	r.err = err
	r.history = append(r.history, StateFailed)
	return err
}

// invalid records a rejected input; the run returns to idle.
func (r *Run) invalid(err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
	r.state = StateIdle
	r.history = append(r.history, StateInvalid, StateIdle)
	return err
}

func (r *Run) setBatches(b []Batch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = b
}

func (r *Run) confirm(hash common.Hash) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.confirmed = append(r.confirmed, hash)
}

// State returns the current phase.
func (r *Run) State() RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Batch returns the zero-based index of the batch being worked on, or -1.
func (r *Run) Batch() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.batch
}

// Batches returns the planned batches.
func (r *Run) Batches() []Batch {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Batch(nil), r.batches...)
}

// Confirmed returns the hashes of the batches confirmed so far, in order.
func (r *Run) Confirmed() []common.Hash {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]common.Hash(nil), r.confirmed...)
}

// History returns every state the run passed through.
func (r *Run) History() []RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RunState(nil), r.history...)
}

// Err returns the error that ended the run, if any.
func (r *Run) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// SubmitterConfig wires a Submitter.
type SubmitterConfig struct {
	Logger    log.Logger
	Writer    SplitterWriter
	Confirmer Confirmer
	GasLimit  uint64

	// OnConfirmed runs after each confirmed batch. Its error is logged and
	// does not stop the run.
	OnConfirmed func(ctx context.Context, b Batch) error
}

func (cfg *SubmitterConfig) Validate() error {
	if cfg.Writer == nil {
		return errors.New("splitter writer is required")
	}
	if cfg.Confirmer == nil {
		return errors.New("confirmer is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Root()
	}
	if cfg.GasLimit == 0 {
		cfg.GasLimit = DefaultGasLimit
	}
	return nil
}

// Submitter sends planned batches one at a time, waiting for each to be
// mined before sending the next.
type Submitter struct {
	log log.Logger
	cfg SubmitterConfig
}

func NewSubmitter(cfg SubmitterConfig) (*Submitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Submitter{log: cfg.Logger, cfg: cfg}, nil
}

// Submit runs the batches planned on run. The first rejected or reverted
// batch ends the run in StateFailed; batches already confirmed stay applied.
func (s *Submitter) Submit(ctx context.Context, run *Run, opts *bind.TransactOpts) error {
	batches := run.Batches()
	for i, b := range batches {
		run.set(StateSubmitting, i)
		s.log.Info("Sending batch reward transaction", "batch", i+1, "of", len(batches), "holders", len(b.Holders), "total", b.Total())

		txOpts := *opts
		txOpts.Context = ctx
		txOpts.GasLimit = s.cfg.GasLimit
		tx, err := s.cfg.Writer.BatchRewardAddresses(&txOpts, b.Holders, b.Amounts)
		if err != nil {
			s.log.Error("Batch reward transaction rejected", "batch", i+1, "err", err)
			return run.fail(newTxError("batchRewardAddresses", i, common.Hash{}, err))
		}

		run.set(StateConfirming, i)
		if _, err := confirm(ctx, s.cfg.Confirmer, "batchRewardAddresses", i, tx); err != nil {
			s.log.Error("Batch reward transaction failed", "batch", i+1, "tx", tx.Hash(), "err", err)
			return run.fail(err)
		}
		run.confirm(tx.Hash())
		s.log.Info("Batch reward transaction confirmed", "batch", i+1, "tx", tx.Hash())

		if s.cfg.OnConfirmed != nil {
			if err := s.cfg.OnConfirmed(ctx, b); err != nil {
				s.log.Warn("Refresh after batch failed", "batch", i+1, "err", err)
			}
		}
	}
	run.set(StateCompleted, len(batches)-1)
	return nil
}
