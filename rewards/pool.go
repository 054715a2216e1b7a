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
)

// PoolFormula selects how the unallocated pool is derived from the
// splitter's books. Splitter versions differ: older ones deduct claims from
// the balance without tracking them, newer ones report the claimed total.
type PoolFormula string

const (
	// FormulaBalance is balance - allocated.
	FormulaBalance PoolFormula = "balance"

	// FormulaClaimed is balance + claimed - allocated.
	FormulaClaimed PoolFormula = "claimed"
)

// ParsePoolFormula validates a formula name; the empty string selects
// FormulaBalance.
func ParsePoolFormula(s string) (PoolFormula, error) {
	switch PoolFormula(s) {
	case "", FormulaBalance:
		return FormulaBalance, nil
	case FormulaClaimed:
		return FormulaClaimed, nil
	default:
		return "", fmt.Errorf("rewards: unknown pool formula %q", s)
	}
}

// Unallocated returns the part of the splitter balance not yet earmarked for
// any holder. The reads behind state are not atomic, so the formula can dip
// below zero; the result is then floored at zero and clamped is set.
func Unallocated(state AllocationState, formula PoolFormula) (amount *big.Int, clamped bool) {
	amount = new(big.Int)
	if state.ContractTokenBalance != nil {
		amount.Set(state.ContractTokenBalance)
	}
	if formula == FormulaClaimed && state.TotalClaimed != nil {
		amount.Add(amount, state.TotalClaimed)
	}
	if state.TotalAllocated != nil {
		amount.Sub(amount, state.TotalAllocated)
	}
	if amount.Sign() < 0 {
		return new(big.Int), true
	}
	return amount, false
}
