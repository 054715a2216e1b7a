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

	"github.com/shopspring/decimal"
)

// Errors returned when parsing display amounts.
var (
	ErrEmptyAmount     = errors.New("rewards: empty amount")
	ErrMalformedAmount = errors.New("rewards: malformed amount")
	ErrExcessPrecision = errors.New("rewards: amount has more decimals than the token")
)

// Units converts between display amounts ("12.5") and integer amounts in a
// token's smallest denomination.
type Units struct {
	Decimals uint8
}

// Parse converts a display amount into smallest units. The conversion is
// exact: inputs with more fractional digits than Decimals are rejected.
func (u Units) Parse(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyAmount
	}
	if !isDecimal(s) {
		return nil, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	scaled := d.Shift(int32(u.Decimals))
	if !scaled.IsInteger() {
		return nil, fmt.Errorf("%w: %q has more than %d decimals", ErrExcessPrecision, s, u.Decimals)
	}
	return scaled.BigInt(), nil
}

// Format renders an amount in smallest units as a display string without
// trailing zeros.
func (u Units) Format(v *big.Int) string {
	return u.Decimal(v).String()
}

// Decimal returns v in display units.
func (u Units) Decimal(v *big.Int) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(v, -int32(u.Decimals))
}

// isDecimal accepts an optional minus sign, digits and at most one decimal
// point. Exponents are rejected.
func isDecimal(s string) bool {
	if s[0] == '-' {
		s = s[1:]
	}
	digits, dots := 0, 0
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
