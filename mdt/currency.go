// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package mdt implements the fixed-point currency units of LuxTensor.
//
// LTS is the smallest indivisible unit; all balances are stored in LTS.
// MDT is the display denomination. 1 MDT = 10^18 LTS.
package mdt

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// MDTDecimals is the number of decimal places of MDT.
const MDTDecimals = 18

// Common denominations, in LTS.
var (
	LTSPerMDT  = mustFromDecimal("1000000000000000000")       // 10^18
	LTSPerKMDT = mustFromDecimal("1000000000000000000000")    // 10^21 (1000 MDT)
	LTSPerMMDT = mustFromDecimal("1000000000000000000000000") // 10^24 (1M MDT)
)

// Parse errors. All of them unwrap to ErrMalformedAmount, except overflow
// which unwraps to ErrOverflow.
var (
	ErrMalformedAmount = fmt.Errorf("malformed amount string")
	ErrTooManyDecimals = fmt.Errorf("%w: too many decimal places (max %d)", ErrMalformedAmount, MDTDecimals)
	ErrNegativeAmount  = fmt.Errorf("%w: negative sign", ErrMalformedAmount)
	ErrNonDigit        = fmt.Errorf("%w: non-digit character", ErrMalformedAmount)
)

// ToBase converts whole MDT units into LTS.
// It returns ErrOverflow if the scaled value exceeds 128 bits.
func ToBase(mdt Amount) (Amount, error) {
	var base Amount
	// 128-bit by 60-bit product never wraps 256 bits
	base.i.Mul(&mdt.i, &LTSPerMDT.i)
	if !fits128(&base.i) {
		return Amount{}, ErrOverflow
	}
	return base, nil
}

// ToDisplayTruncated converts LTS into whole MDT units,
// discarding the fractional remainder. It never fails.
func ToDisplayTruncated(lts Amount) Amount {
	var mdt Amount
	mdt.i.Div(&lts.i, &LTSPerMDT.i)
	return mdt
}

// ParseDisplayString parses a decimal MDT string like "1", "1.5" or
// "0.000000000000000001" into LTS. The fractional part may have at most
// 18 digits; longer fractions are rejected, not rounded.
func ParseDisplayString(s string) (Amount, error) {
	if len(s) == 0 {
		return Amount{}, fmt.Errorf("%w: empty string", ErrMalformedAmount)
	}
	if s[0] == '-' {
		return Amount{}, ErrNegativeAmount
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if !isDigits(whole) || (hasFrac && !isDigits(frac)) {
		return Amount{}, ErrNonDigit
	}
	if hasFrac && len(frac) > MDTDecimals {
		return Amount{}, ErrTooManyDecimals
	}

	w, err := uint256.FromDecimal(whole)
	if err != nil {
		return Amount{}, ErrOverflow
	}
	if !fits128(w) {
		return Amount{}, ErrOverflow
	}
	lts, err := ToBase(Amount{*w})
	if err != nil {
		return Amount{}, err
	}

	if hasFrac {
		// right-zero-pad to exactly 18 digits
		padded := frac + strings.Repeat("0", MDTDecimals-len(frac))
		f, err := uint256.FromDecimal(padded)
		if err != nil {
			return Amount{}, ErrOverflow
		}
		if lts, err = lts.Add(Amount{*f}); err != nil {
			return Amount{}, err
		}
	}
	return lts, nil
}

// MustParseDisplayString parses a decimal MDT string, panicking on error.
func MustParseDisplayString(s string) Amount {
	a, err := ParseDisplayString(s)
	if err != nil {
		panic(err)
	}
	return a
}

// isDigits reports whether s is non-empty and all ASCII digits.
func isDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatAsDisplay renders an LTS amount as a human-readable MDT string,
// always with exactly 18 fractional digits, e.g. "1.500000000000000000 MDT".
func FormatAsDisplay(lts Amount) string {
	var q, r uint256.Int
	q.DivMod(&lts.i, &LTSPerMDT.i, &r)

	frac := r.Dec()
	return q.Dec() + "." + strings.Repeat("0", MDTDecimals-len(frac)) + frac + " MDT"
}

// FormatLTS renders an amount as a raw LTS string, e.g. "1500000000000000000 LTS".
func FormatLTS(lts Amount) string {
	return lts.i.Dec() + " LTS"
}
