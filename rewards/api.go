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
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ──────────────────────────────────────────────
//  JSON-RPC API
// ──────────────────────────────────────────────

// API exposes the rewards controllers over JSON-RPC when registered with a
// go-ethereum rpc.Server. Method namespace: "rewards".
type API struct {
	distributor *Distributor
	nft         NFTReader
	splitter    SplitterReader
	mint        *MintView
}

// NewAPI creates a JSON-RPC API. mint may be nil when the deployment has no
// public mint.
func NewAPI(distributor *Distributor, nft NFTReader, splitter SplitterReader, mint *MintView) *API {
	return &API{distributor: distributor, nft: nft, splitter: splitter, mint: mint}
}

// StateResult is the distribution screen in display units.
type StateResult struct {
	Loaded         bool      `json:"loaded"`
	TokenBalance   string    `json:"tokenBalance"`
	TotalAllocated string    `json:"totalAllocated"`
	TotalClaimed   string    `json:"totalClaimed"`
	TotalSupply    uint64    `json:"totalSupply"`
	Unallocated    string    `json:"unallocated"`
	MaxPerNFT      string    `json:"maxPerNFT"`
	Clamped        bool      `json:"clamped"`
	FetchedAt      time.Time `json:"fetchedAt"`
	LastError      string    `json:"lastError,omitempty"`
}

// RunResult summarises a distribution run.
type RunResult struct {
	State     string        `json:"state"`
	Batches   int           `json:"batches"`
	Confirmed []common.Hash `json:"confirmed"`
	Error     string        `json:"error,omitempty"`
}

// MintStatus is the mint screen counters.
type MintStatus struct {
	Supply    uint64 `json:"supply"`
	MaxSupply uint64 `json:"maxSupply"`
	Remaining uint64 `json:"remaining"`
	Price     string `json:"price"`
}

// State handles "rewards_state" RPC calls.
func (api *API) State() *StateResult {
	state, plan, loaded := api.distributor.Snapshot()
	units := api.distributor.Units()
	res := &StateResult{
		Loaded:         loaded,
		TokenBalance:   units.Format(state.ContractTokenBalance),
		TotalAllocated: units.Format(state.TotalAllocated),
		TotalClaimed:   units.Format(state.TotalClaimed),
		TotalSupply:    state.TotalSupply,
		Unallocated:    units.Format(plan.Unallocated),
		MaxPerNFT:      units.Format(plan.MaxPerUnit),
		Clamped:        plan.Clamped,
		FetchedAt:      state.FetchedAt,
	}
	if err := api.distributor.LastError(); err != nil {
		res.LastError = err.Error()
	}
	return res
}

// Refresh handles "rewards_refresh" RPC calls.
func (api *API) Refresh(ctx context.Context) (*StateResult, error) {
	if err := api.distributor.Refresh(ctx); err != nil {
		return nil, err
	}
	return api.State(), nil
}

// Holders handles "rewards_holders" RPC calls.
func (api *API) Holders(ctx context.Context) (*HolderSet, error) {
	return api.distributor.Holders(ctx)
}

// Distribute handles "rewards_distribute" RPC calls. A run that started is
// reported in the result even when it failed. The run outlives the request:
// a disconnecting client must not strand sent batches.
func (api *API) Distribute(ctx context.Context, perNFT string) (*RunResult, error) {
	run, err := api.distributor.Distribute(context.WithoutCancel(ctx), perNFT)
	if run == nil {
		return nil, err
	}
	res := &RunResult{
		State:     run.State().String(),
		Batches:   len(run.Batches()),
		Confirmed: run.Confirmed(),
	}
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return nil, err
		}
		res.Error = err.Error()
	}
	return res, nil
}

// Claimable handles "rewards_claimable" RPC calls.
func (api *API) Claimable(ctx context.Context, account common.Address) (string, error) {
	amount, err := api.splitter.Rewards(ctx, account)
	if err != nil {
		return "", &ReadError{Op: "rewards", Err: err}
	}
	return api.distributor.Units().Format(amount), nil
}

// OwnedTokens handles "rewards_ownedTokens" RPC calls.
func (api *API) OwnedTokens(ctx context.Context, owner common.Address) ([]string, error) {
	ids, err := OwnedTokens(ctx, api.nft, owner)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out, nil
}

// MintStatus handles "rewards_mintStatus" RPC calls.
func (api *API) MintStatus() (*MintStatus, error) {
	if api.mint == nil {
		return nil, errors.New("mint not configured")
	}
	return &MintStatus{
		Supply:    api.mint.Supply(),
		MaxSupply: api.mint.MaxSupply(),
		Remaining: api.mint.Remaining(),
		Price:     Units{Decimals: 18}.Format(api.mint.Quote(1)),
	}, nil
}
