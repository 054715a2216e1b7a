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
	"fmt"
	"math/big"
	"os"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// WalletProvider is the signing capability behind every write. Reads never
// need it.
type WalletProvider interface {
	// RequestAccess unlocks the wallet and returns its account.
	RequestAccess(ctx context.Context) (common.Address, error)

	// Signer returns transaction options bound to ctx. Callers own the
	// returned value and may set gas or value fields on it.
	Signer(ctx context.Context) (*bind.TransactOpts, error)
}

// KeystoreWallet signs with a single encrypted JSON key file.
type KeystoreWallet struct {
	keyfile    string
	passphrase string
	chainID    *big.Int

	mu   sync.Mutex
	opts *bind.TransactOpts
}

// NewKeystoreWallet creates a wallet for keyfile. The key is decrypted on
// first access.
func NewKeystoreWallet(keyfile, passphrase string, chainID *big.Int) *KeystoreWallet {
	return &KeystoreWallet{keyfile: keyfile, passphrase: passphrase, chainID: chainID}
}

func (w *KeystoreWallet) unlock() (*bind.TransactOpts, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.opts != nil {
		return w.opts, nil
	}
	if w.keyfile == "" {
		return nil, fmt.Errorf("%w: no keyfile configured", ErrWalletUnavailable)
	}
	f, err := os.Open(w.keyfile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWalletUnavailable, err)
	}
	defer f.Close()

	opts, err := bind.NewTransactorWithChainID(f, w.passphrase, w.chainID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWalletUnavailable, err)
	}
	w.opts = opts
	return opts, nil
}

func (w *KeystoreWallet) RequestAccess(ctx context.Context) (common.Address, error) {
	opts, err := w.unlock()
	if err != nil {
		return common.Address{}, err
	}
	return opts.From, nil
}

func (w *KeystoreWallet) Signer(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := w.unlock()
	if err != nil {
		return nil, err
	}
	signer := *opts
	signer.Context = ctx
	return &signer, nil
}

// signerFor unlocks wallet for a write, mapping a missing wallet to
// ErrWalletUnavailable.
func signerFor(ctx context.Context, wallet WalletProvider) (common.Address, *bind.TransactOpts, error) {
	if wallet == nil {
		return common.Address{}, nil, ErrWalletUnavailable
	}
	from, err := wallet.RequestAccess(ctx)
	if err != nil {
		return common.Address{}, nil, err
	}
	opts, err := wallet.Signer(ctx)
	if err != nil {
		return common.Address{}, nil, err
	}
	return from, opts, nil
}
