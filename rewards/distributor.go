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
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/jonboulle/clockwork"
)

// DefaultRefreshInterval is how often controllers re-read on-chain state.
const DefaultRefreshInterval = 30 * time.Second

// DistributorConfig wires a Distributor.
type DistributorConfig struct {
	Logger    log.Logger
	Clock     clockwork.Clock
	NFT       NFTReader
	Splitter  SplitterReader
	Writer    SplitterWriter
	Confirmer Confirmer
	Wallet    WalletProvider // nil makes every write fail with ErrWalletUnavailable

	Units           Units
	Formula         PoolFormula
	BatchSize       int
	GasLimit        uint64
	Census          CensusOptions
	RefreshInterval time.Duration
}

func (cfg *DistributorConfig) Validate() error {
	if cfg.NFT == nil {
		return errors.New("nft reader is required")
	}
	if cfg.Splitter == nil {
		return errors.New("splitter reader is required")
	}
	if cfg.Writer == nil {
		return errors.New("splitter writer is required")
	}
	if cfg.Confirmer == nil {
		return errors.New("confirmer is required")
	}
	formula, err := ParsePoolFormula(string(cfg.Formula))
	if err != nil {
		return err
	}
	cfg.Formula = formula
	if cfg.BatchSize < 0 {
		return errors.New("batch size must not be negative")
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.GasLimit == 0 {
		cfg.GasLimit = DefaultGasLimit
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultRefreshInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Root()
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	return nil
}

// Distributor is the controller behind the rewards distribution screen. It
// owns the cached allocation snapshot and runs distributions against it.
type Distributor struct {
	log       log.Logger
	cfg       DistributorConfig
	submitter *Submitter

	mu      sync.RWMutex
	state   AllocationState
	plan    RewardPlan
	loaded  bool
	lastErr error

	runMu sync.Mutex
}

func NewDistributor(cfg DistributorConfig) (*Distributor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Distributor{log: cfg.Logger, cfg: cfg}

	submitter, err := NewSubmitter(SubmitterConfig{
		Logger:    cfg.Logger,
		Writer:    cfg.Writer,
		Confirmer: cfg.Confirmer,
		GasLimit:  cfg.GasLimit,
		OnConfirmed: func(ctx context.Context, _ Batch) error {
			return d.Refresh(ctx)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create submitter: %w", err)
	}
	d.submitter = submitter
	return d, nil
}

// Units returns the reward token's units.
func (d *Distributor) Units() Units { return d.cfg.Units }

// Refresh re-reads the splitter's books and the collection supply. On
// failure the previous snapshot is kept and a *ReadError is returned.
func (d *Distributor) Refresh(ctx context.Context) error {
	state, err := d.read(ctx)
	if err != nil {
		d.mu.Lock()
		d.lastErr = err
		d.mu.Unlock()
		return err
	}

	plan := ResolvePlan(state, d.cfg.Formula)
	if plan.Clamped {
		poolClampedTotal.Inc()
		d.log.Warn("Unallocated pool below zero, treating as empty",
			"balance", state.ContractTokenBalance, "allocated", state.TotalAllocated, "claimed", state.TotalClaimed)
	}
	pool, _ := new(big.Float).SetInt(plan.Unallocated).Float64()
	unallocatedPool.Set(pool)

	d.mu.Lock()
	d.state = state
	d.plan = plan
	d.loaded = true
	d.lastErr = nil
	d.mu.Unlock()

	d.log.Debug("Allocation state refreshed",
		"supply", state.TotalSupply,
		"unallocated", d.cfg.Units.Format(plan.Unallocated),
		"maxPerNFT", d.cfg.Units.Format(plan.MaxPerUnit))
	return nil
}

func (d *Distributor) read(ctx context.Context) (AllocationState, error) {
	balance, err := d.cfg.Splitter.RewardTokenBalance(ctx)
	if err != nil {
		return AllocationState{}, &ReadError{Op: "getRewardTokenBalance", Err: err}
	}
	allocated, err := d.cfg.Splitter.TotalAllocatedRewards(ctx)
	if err != nil {
		return AllocationState{}, &ReadError{Op: "getTotalAllocatedRewards", Err: err}
	}
	claimed := new(big.Int)
	if d.cfg.Formula == FormulaClaimed {
		if claimed, err = d.cfg.Splitter.TotalClaimedRewards(ctx); err != nil {
			return AllocationState{}, &ReadError{Op: "getTotalClaimedRewards", Err: err}
		}
	}
	supply, err := d.cfg.NFT.TotalSupply(ctx)
	if err != nil {
		return AllocationState{}, &ReadError{Op: "totalSupply", Err: err}
	}
	return AllocationState{
		ContractTokenBalance: balance,
		TotalAllocated:       allocated,
		TotalClaimed:         claimed,
		TotalSupply:          supply,
		FetchedAt:            d.cfg.Clock.Now(),
	}, nil
}

// Snapshot returns the cached state and plan, and whether a refresh has ever
// succeeded.
func (d *Distributor) Snapshot() (AllocationState, RewardPlan, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state, d.plan, d.loaded
}

// LastError returns the error of the most recent refresh, nil if it succeeded.
func (d *Distributor) LastError() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastErr
}

// Start refreshes immediately and then every RefreshInterval until ctx ends.
func (d *Distributor) Start(ctx context.Context) {
	go func() {
		d.log.Info("Starting allocation refresh loop", "interval", d.cfg.RefreshInterval)

		d.safeRefresh(ctx)

		ticker := d.cfg.Clock.NewTicker(d.cfg.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				d.safeRefresh(ctx)
			}
		}
	}()
}

func (d *Distributor) safeRefresh(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("Allocation refresh panicked", "panic", r)
		}
	}()
	if err := d.Refresh(ctx); err != nil {
		d.log.Warn("Allocation refresh failed", "err", err)
	}
}

// Holders runs a census with the configured options.
func (d *Distributor) Holders(ctx context.Context) (*HolderSet, error) {
	return TakeCensus(ctx, d.cfg.NFT, d.cfg.Census)
}

// Distribute credits every holder perUnit (a display amount) per NFT held.
// The input is checked against the cached ceiling before anything else is
// read; then the wallet is unlocked, holders are counted, and the batches
// are submitted in order. The returned run is non-nil whenever the input
// got past the concurrency guard.
func (d *Distributor) Distribute(ctx context.Context, perUnit string) (*Run, error) {
	if !d.runMu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer d.runMu.Unlock()

	run := newRun()
	run.set(StateValidating, -1)

	if _, _, loaded := d.Snapshot(); !loaded {
		if err := d.Refresh(ctx); err != nil {
			return run, run.fail(err)
		}
	}
	_, plan, _ := d.Snapshot()
	amount, err := ValidatePerUnit(perUnit, plan.MaxPerUnit, d.cfg.Units)
	if err != nil {
		return run, run.invalid(err)
	}

	_, opts, err := signerFor(ctx, d.cfg.Wallet)
	if err != nil {
		return run, run.fail(err)
	}

	run.set(StatePlanning, -1)
	d.log.Info("Starting batch reward process", "perNFT", d.cfg.Units.Format(amount))
	holders, err := TakeCensus(ctx, d.cfg.NFT, d.cfg.Census)
	if err != nil {
		return run, run.fail(err)
	}
	if len(holders.Holders) == 0 {
		return run, run.fail(ErrNoHolders)
	}
	run.setBatches(PlanBatches(holders.Holders, amount, d.cfg.BatchSize))
	d.log.Info("Fetched NFT holders", "holders", len(holders.Holders), "supply", holders.Supply, "batches", len(run.Batches()))

	if err := d.submitter.Submit(ctx, run, opts); err != nil {
		return run, err
	}
	return run, nil
}
