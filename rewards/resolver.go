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
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// MaxPerUnit is the largest per-NFT reward the pool covers for every token:
// floor(unallocated / supply), or zero for an empty collection.
func MaxPerUnit(unallocated *big.Int, supply uint64) *big.Int {
	if supply == 0 || unallocated == nil || unallocated.Sign() <= 0 {
		return new(big.Int)
	}
	return new(big.Int).Quo(unallocated, new(big.Int).SetUint64(supply))
}

// ResolvePlan derives the plan for state. PerUnit defaults to the maximum.
func ResolvePlan(state AllocationState, formula PoolFormula) RewardPlan {
	pool, clamped := Unallocated(state, formula)
	ceiling := MaxPerUnit(pool, state.TotalSupply)
	return RewardPlan{
		PerUnit:     new(big.Int).Set(ceiling),
		MaxPerUnit:  ceiling,
		Unallocated: pool,
		Clamped:     clamped,
	}
}

// ValidatePerUnit parses the operator's per-NFT reward and checks it lies in
// (0, ceiling]. It makes no external calls.
func ValidatePerUnit(input string, ceiling *big.Int, units Units) (*big.Int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, &ValidationError{Msg: MsgAmountRequired}
	}
	amount, err := units.Parse(input)
	switch {
	case errors.Is(err, ErrExcessPrecision):
		return nil, &ValidationError{Msg: fmt.Sprintf("Amount cannot have more than %d decimals", units.Decimals)}
	case err != nil:
		return nil, &ValidationError{Msg: fmt.Sprintf("Invalid amount: %q", input)}
	}
	if amount.Sign() <= 0 {
		return nil, &ValidationError{Msg: MsgAmountNotPositive}
	}
	if ceiling == nil || amount.Cmp(ceiling) > 0 {
		return nil, &ValidationError{Msg: fmt.Sprintf("Amount exceeds the maximum of %s per NFT", units.Format(ceiling))}
	}
	return amount, nil
}
