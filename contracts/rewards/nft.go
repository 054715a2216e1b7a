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
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/frozenbread/nftrewards/contracts/rewards/contract"
)

// NFT is a wrapper around the on-chain enumerable NFT collection.
type NFT struct {
	bound
}

// NewNFT connects to an already-deployed NFT collection.
func NewNFT(addr common.Address, backend bind.ContractBackend) (*NFT, error) {
	b, err := newBound(addr, contract.NFTABI, backend)
	if err != nil {
		return nil, err
	}
	return &NFT{bound: b}, nil
}

// ──────────────────────────────────────────────
//  Write methods
// ──────────────────────────────────────────────

// Mint mints amount tokens to the sender. The caller attaches the price in
// opts.Value.
func (n *NFT) Mint(opts *bind.TransactOpts, amount *big.Int) (*types.Transaction, error) {
	return n.contract.Transact(opts, "mint", amount)
}

// ──────────────────────────────────────────────
//  Read methods
// ──────────────────────────────────────────────

// TotalSupply returns the number of minted tokens.
func (n *NFT) TotalSupply(opts *bind.CallOpts) (*big.Int, error) {
	return n.callBig(opts, "totalSupply")
}

// TokenByIndex returns the token id stored at index of the global enumeration.
func (n *NFT) TokenByIndex(opts *bind.CallOpts, index *big.Int) (*big.Int, error) {
	return n.callBig(opts, "tokenByIndex", index)
}

// OwnerOf returns the current owner of a token.
func (n *NFT) OwnerOf(opts *bind.CallOpts, tokenID *big.Int) (common.Address, error) {
	return n.callAddress(opts, "ownerOf", tokenID)
}

// BalanceOf returns how many tokens an address owns.
func (n *NFT) BalanceOf(opts *bind.CallOpts, owner common.Address) (*big.Int, error) {
	return n.callBig(opts, "balanceOf", owner)
}

// TokenOfOwnerByIndex returns the token id at index of the owner's enumeration.
func (n *NFT) TokenOfOwnerByIndex(opts *bind.CallOpts, owner common.Address, index *big.Int) (*big.Int, error) {
	return n.callBig(opts, "tokenOfOwnerByIndex", owner, index)
}
