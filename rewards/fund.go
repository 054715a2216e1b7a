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

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
)

// Funder moves reward tokens from the operator wallet, typically into the
// splitter before a distribution.
type Funder struct {
	Logger    log.Logger
	Token     TokenWriter
	Confirmer Confirmer
	Wallet    WalletProvider
	Units     Units
}

func (f *Funder) logger() log.Logger {
	if f.Logger == nil {
		return log.Root()
	}
	return f.Logger
}

// Transfer sends amount (a display amount) of the reward token to to.
func (f *Funder) Transfer(ctx context.Context, to common.Address, amount string) (*types.Receipt, error) {
	value, err := f.positive(amount)
	if err != nil {
		return nil, err
	}
	if f.Token == nil {
		return nil, ErrTokenNotConfigured
	}
	_, opts, err := signerFor(ctx, f.Wallet)
	if err != nil {
		return nil, err
	}
	tx, err := f.Token.Transfer(opts, to, value)
	if err != nil {
		return nil, newTxError("transfer", -1, common.Hash{}, err)
	}
	receipt, err := confirm(ctx, f.Confirmer, "transfer", -1, tx)
	if err != nil {
		return receipt, err
	}
	f.logger().Info("Reward tokens transferred", "to", to, "amount", amount, "tx", tx.Hash())
	return receipt, nil
}

// Approve lets spender move up to amount (a display amount) of the reward
// token on the operator's behalf.
func (f *Funder) Approve(ctx context.Context, spender common.Address, amount string) (*types.Receipt, error) {
	value, err := f.positive(amount)
	if err != nil {
		return nil, err
	}
	if f.Token == nil {
		return nil, ErrTokenNotConfigured
	}
	_, opts, err := signerFor(ctx, f.Wallet)
	if err != nil {
		return nil, err
	}
	tx, err := f.Token.Approve(opts, spender, value)
	if err != nil {
		return nil, newTxError("approve", -1, common.Hash{}, err)
	}
	receipt, err := confirm(ctx, f.Confirmer, "approve", -1, tx)
	if err != nil {
		return receipt, err
	}
	f.logger().Info("Reward token allowance set", "spender", spender, "amount", amount, "tx", tx.Hash())
	return receipt, nil
}

func (f *Funder) positive(amount string) (*big.Int, error) {
	value, err := f.Units.Parse(amount)
	if err != nil {
		if errors.Is(err, ErrEmptyAmount) {
			return nil, &ValidationError{Msg: MsgAmountRequired}
		}
		return nil, &ValidationError{Msg: err.Error()}
	}
	if value.Sign() <= 0 {
		return nil, &ValidationError{Msg: MsgAmountNotPositive}
	}
	return value, nil
}
