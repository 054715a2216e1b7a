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

// Package rewards provides Go bindings for the contracts behind the NFT
// rewards program: the enumerable NFT collection, the rewards splitter that
// allocates and pays out the reward token, and the reward token itself.
package rewards

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// bound is the shared core of every wrapper in this package.
type bound struct {
	address  common.Address
	contract *bind.BoundContract
}

func newBound(addr common.Address, definition string, backend bind.ContractBackend) (bound, error) {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		return bound{}, err
	}
	return bound{
		address:  addr,
		contract: bind.NewBoundContract(addr, parsed, backend, backend, backend),
	}, nil
}

// Address returns the address the wrapper is bound to.
func (b bound) Address() common.Address { return b.address }

func (b bound) call(opts *bind.CallOpts, method string, params ...interface{}) (interface{}, error) {
	var out []interface{}
	if err := b.contract.Call(opts, &out, method, params...); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: empty result", method)
	}
	return out[0], nil
}

func (b bound) callBig(opts *bind.CallOpts, method string, params ...interface{}) (*big.Int, error) {
	v, err := b.call(opts, method, params...)
	if err != nil {
		return nil, err
	}
	n, ok := v.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected result type %T", method, v)
	}
	return n, nil
}

func (b bound) callAddress(opts *bind.CallOpts, method string, params ...interface{}) (common.Address, error) {
	v, err := b.call(opts, method, params...)
	if err != nil {
		return common.Address{}, err
	}
	addr, ok := v.(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("%s: unexpected result type %T", method, v)
	}
	return addr, nil
}
