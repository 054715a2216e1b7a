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
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	"github.com/jonboulle/clockwork"
)

// MintConfig wires a MintView.
type MintConfig struct {
	Logger    log.Logger
	Clock     clockwork.Clock
	NFT       NFTReader
	Minter    NFTMinter
	Confirmer Confirmer
	Wallet    WalletProvider

	MaxSupply       uint64
	Price           *big.Int // native currency per NFT, smallest unit
	RefreshInterval time.Duration
}

func (cfg *MintConfig) Validate() error {
	if cfg.NFT == nil {
		return errors.New("nft reader is required")
	}
	if cfg.Minter == nil {
		return errors.New("minter is required")
	}
	if cfg.Confirmer == nil {
		return errors.New("confirmer is required")
	}
	if cfg.MaxSupply == 0 {
		return errors.New("max supply must be greater than 0")
	}
	if cfg.Price == nil || cfg.Price.Sign() < 0 {
		return errors.New("mint price must not be negative")
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

// MintView is the minting screen: supply counters and the payable mint.
type MintView struct {
	log log.Logger
	cfg MintConfig

	mu     sync.RWMutex
	supply uint64
}

func NewMintView(cfg MintConfig) (*MintView, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &MintView{log: cfg.Logger, cfg: cfg}, nil
}

// Refresh re-reads the minted supply.
func (m *MintView) Refresh(ctx context.Context) error {
	supply, err := m.cfg.NFT.TotalSupply(ctx)
	if err != nil {
		return &ReadError{Op: "totalSupply", Err: err}
	}
	m.mu.Lock()
	m.supply = supply
	m.mu.Unlock()
	return nil
}

// Supply returns the minted supply of the last refresh.
func (m *MintView) Supply() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.supply
}

// MaxSupply returns the collection cap.
func (m *MintView) MaxSupply() uint64 { return m.cfg.MaxSupply }

// Remaining returns how many tokens can still be minted.
func (m *MintView) Remaining() uint64 {
	supply := m.Supply()
	if supply >= m.cfg.MaxSupply {
		return 0
	}
	return m.cfg.MaxSupply - supply
}

// Quote returns the value to attach when minting amount tokens.
func (m *MintView) Quote(amount uint64) *big.Int {
	return new(big.Int).Mul(m.cfg.Price, new(big.Int).SetUint64(amount))
}

// Mint mints amount tokens to the wallet account, paying Quote(amount).
func (m *MintView) Mint(ctx context.Context, amount uint64) (*types.Receipt, error) {
	if amount == 0 {
		return nil, ErrMintAmount
	}
	if err := m.Refresh(ctx); err != nil {
		return nil, err
	}
	if amount > m.Remaining() {
		return nil, ErrMintExceedsSupply
	}
	from, opts, err := signerFor(ctx, m.cfg.Wallet)
	if err != nil {
		return nil, err
	}
	opts.Value = m.Quote(amount)

	tx, err := m.cfg.Minter.Mint(opts, new(big.Int).SetUint64(amount))
	if err != nil {
		return nil, newTxError("mint", -1, common.Hash{}, err)
	}
	receipt, err := confirm(ctx, m.cfg.Confirmer, "mint", -1, tx)
	if err != nil {
		return receipt, err
	}
	m.log.Info("Mint successful", "to", from, "amount", amount, "tx", tx.Hash())

	if err := m.Refresh(ctx); err != nil {
		m.log.Warn("Refresh after mint failed", "err", err)
	}
	return receipt, nil
}

// Start refreshes immediately and then every RefreshInterval until ctx ends.
func (m *MintView) Start(ctx context.Context) {
	go func() {
		if err := m.Refresh(ctx); err != nil {
			m.log.Warn("Error fetching contract data", "err", err)
		}
		ticker := m.cfg.Clock.NewTicker(m.cfg.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				if err := m.Refresh(ctx); err != nil {
					m.log.Warn("Error fetching contract data", "err", err)
				}
			}
		}
	}()
}
