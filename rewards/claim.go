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
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	"github.com/shopspring/decimal"
)

// ClaimConfig wires a ClaimView.
type ClaimConfig struct {
	Logger    log.Logger
	Splitter  SplitterReader
	Writer    SplitterWriter
	Confirmer Confirmer
	Wallet    WalletProvider
	Units     Units

	// Prices and Token are optional; together they enable USD valuation.
	Prices PriceOracle
	Token  common.Address
}

func (cfg *ClaimConfig) Validate() error {
	if cfg.Splitter == nil {
		return errors.New("splitter reader is required")
	}
	if cfg.Writer == nil {
		return errors.New("splitter writer is required")
	}
	if cfg.Confirmer == nil {
		return errors.New("confirmer is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Root()
	}
	return nil
}

// ClaimView is the holder-facing claim screen: what the wallet can claim,
// what it has claimed, and the claim and owner withdraw actions.
type ClaimView struct {
	log log.Logger
	cfg ClaimConfig

	mu        sync.RWMutex
	account   common.Address
	claimable *big.Int
	claimed   *big.Int
	priceUSD  decimal.Decimal
	priced    bool
}

func NewClaimView(cfg ClaimConfig) (*ClaimView, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &ClaimView{log: cfg.Logger, cfg: cfg, claimable: new(big.Int), claimed: new(big.Int)}, nil
}

// Refresh reads the wallet account's claimable and claimed amounts. A price
// lookup failure is logged and leaves the USD value unknown.
func (v *ClaimView) Refresh(ctx context.Context) error {
	if v.cfg.Wallet == nil {
		return ErrWalletUnavailable
	}
	account, err := v.cfg.Wallet.RequestAccess(ctx)
	if err != nil {
		return err
	}
	claimable, err := v.cfg.Splitter.Rewards(ctx, account)
	if err != nil {
		return &ReadError{Op: "rewards", Err: err}
	}
	claimed, err := v.cfg.Splitter.ClaimedRewards(ctx, account)
	if err != nil {
		return &ReadError{Op: "getClaimedRewards", Err: err}
	}

	var (
		price  decimal.Decimal
		priced bool
	)
	if v.cfg.Prices != nil && v.cfg.Token != (common.Address{}) {
		if price, err = v.cfg.Prices.TokenPriceUSD(ctx, v.cfg.Token); err != nil {
			v.log.Warn("Error fetching token price", "token", v.cfg.Token, "err", err)
		} else {
			priced = true
		}
	}

	v.mu.Lock()
	v.account = account
	v.claimable = claimable
	v.claimed = claimed
	v.priceUSD = price
	v.priced = priced
	v.mu.Unlock()
	return nil
}

// Account returns the account of the last refresh.
func (v *ClaimView) Account() common.Address {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.account
}

// Claimable returns the unclaimed allocation in smallest units.
func (v *ClaimView) Claimable() *big.Int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return new(big.Int).Set(v.claimable)
}

// Claimed returns what the account has claimed so far in smallest units.
func (v *ClaimView) Claimed() *big.Int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return new(big.Int).Set(v.claimed)
}

// USDValue renders the claimable amount in USD with two decimals, and
// reports false when no price is known.
func (v *ClaimView) USDValue() (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if !v.priced {
		return "0.00", false
	}
	return v.cfg.Units.Decimal(v.claimable).Mul(v.priceUSD).StringFixed(2), true
}

// Claim pays the account's allocation out and refreshes the view.
func (v *ClaimView) Claim(ctx context.Context) (*types.Receipt, error) {
	if err := v.Refresh(ctx); err != nil {
		return nil, err
	}
	if v.Claimable().Sign() == 0 {
		return nil, ErrNothingToClaim
	}
	_, opts, err := signerFor(ctx, v.cfg.Wallet)
	if err != nil {
		return nil, err
	}
	tx, err := v.cfg.Writer.ClaimRewards(opts)
	if err != nil {
		return nil, newTxError("claimRewards", -1, common.Hash{}, err)
	}
	receipt, err := confirm(ctx, v.cfg.Confirmer, "claimRewards", -1, tx)
	if err != nil {
		return receipt, err
	}
	v.log.Info("Rewards claimed successfully", "account", v.Account(), "tx", tx.Hash())

	if err := v.Refresh(ctx); err != nil {
		v.log.Warn("Refresh after claim failed", "err", err)
	}
	return receipt, nil
}

// Withdraw returns the splitter's token balance to its owner. Only the
// owner account may call it.
func (v *ClaimView) Withdraw(ctx context.Context) (*types.Receipt, error) {
	from, opts, err := signerFor(ctx, v.cfg.Wallet)
	if err != nil {
		return nil, err
	}
	owner, err := v.cfg.Splitter.Owner(ctx)
	if err != nil {
		return nil, &ReadError{Op: "owner", Err: err}
	}
	if owner != from {
		return nil, ErrNotOwner
	}
	tx, err := v.cfg.Writer.WithdrawRewards(opts)
	if err != nil {
		return nil, newTxError("withdrawRewards", -1, common.Hash{}, err)
	}
	receipt, err := confirm(ctx, v.cfg.Confirmer, "withdrawRewards", -1, tx)
	if err != nil {
		return receipt, err
	}
	v.log.Info("Rewards withdrawn", "owner", owner, "tx", tx.Hash())
	return receipt, nil
}
