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
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/frozenbread/nftrewards/contracts/rewards/contract"
)

// Token is a wrapper around the ERC-20 reward token.
type Token struct {
	bound
}

// NewToken connects to an already-deployed ERC-20 token.
func NewToken(addr common.Address, backend bind.ContractBackend) (*Token, error) {
	b, err := newBound(addr, contract.TokenABI, backend)
	if err != nil {
		return nil, err
	}
	return &Token{bound: b}, nil
}

// Approve allows spender to move up to amount of the sender's tokens.
func (t *Token) Approve(opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	return t.contract.Transact(opts, "approve", spender, amount)
}

// Transfer moves amount of the sender's tokens to to.
func (t *Token) Transfer(opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Transaction, error) {
	return t.contract.Transact(opts, "transfer", to, amount)
}

// Decimals returns the token's declared decimal count.
func (t *Token) Decimals(opts *bind.CallOpts) (uint8, error) {
	v, err := t.call(opts, "decimals")
	if err != nil {
		return 0, err
	}
	d, ok := v.(uint8)
	if !ok {
		return 0, fmt.Errorf("decimals: unexpected result type %T", v)
	}
	return d, nil
}

// Symbol returns the token ticker.
func (t *Token) Symbol(opts *bind.CallOpts) (string, error) {
	v, err := t.call(opts, "symbol")
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("symbol: unexpected result type %T", v)
	}
	return s, nil
}

// BalanceOf returns the token balance of account.
func (t *Token) BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error) {
	return t.callBig(opts, "balanceOf", account)
}
