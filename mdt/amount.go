// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package mdt

import (
	"errors"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

var (
	// ErrOverflow returned when an arithmetic result leaves the 128-bit range.
	ErrOverflow = errors.New("amount overflow")
	// ErrUnderflow returned when a subtraction would go negative.
	ErrUnderflow = errors.New("amount underflow")
)

// Amount is a non-negative quantity of LTS, the base currency unit.
// It is bounded to 128 bits. The zero value is 0 LTS.
//
// All ledger-affecting arithmetic is checked: results outside the
// 128-bit range are errors, never wrapped or saturated values.
type Amount struct {
	i uint256.Int
}

var _ rlp.Encoder = (*Amount)(nil)
var _ rlp.Decoder = (*Amount)(nil)

// NewAmount creates an amount of n LTS.
func NewAmount(n uint64) Amount {
	var a Amount
	a.i.SetUint64(n)
	return a
}

// FromBig converts a big integer LTS quantity into an Amount.
// Negative or >128-bit values are rejected.
func FromBig(b *big.Int) (Amount, error) {
	if b.Sign() < 0 {
		return Amount{}, ErrUnderflow
	}
	var a Amount
	if overflow := a.i.SetFromBig(b); overflow || !fits128(&a.i) {
		return Amount{}, ErrOverflow
	}
	return a, nil
}

// mustFromDecimal parses a decimal LTS literal, panicking on error.
// For package-level constants only.
func mustFromDecimal(s string) Amount {
	i, err := uint256.FromDecimal(s)
	if err != nil {
		panic(err)
	}
	if !fits128(i) {
		panic(ErrOverflow)
	}
	return Amount{*i}
}

func fits128(i *uint256.Int) bool {
	return i.BitLen() <= 128
}

// Add returns a+b, or ErrOverflow if the sum exceeds 128 bits.
func (a Amount) Add(b Amount) (Amount, error) {
	var sum Amount
	// two 128-bit values never wrap 256 bits
	sum.i.Add(&a.i, &b.i)
	if !fits128(&sum.i) {
		return Amount{}, ErrOverflow
	}
	return sum, nil
}

// Sub returns a-b, or ErrUnderflow if b > a.
func (a Amount) Sub(b Amount) (Amount, error) {
	if a.i.Lt(&b.i) {
		return Amount{}, ErrUnderflow
	}
	var diff Amount
	diff.i.Sub(&a.i, &b.i)
	return diff, nil
}

// SaturatingAdd returns a+b clamped to the 128-bit maximum.
//
// It exists for display and estimation computations only. Values written
// into accounts must come from the checked ops, a saturated credit would
// fabricate value.
func (a Amount) SaturatingAdd(b Amount) Amount {
	sum, err := a.Add(b)
	if err != nil {
		return Amount{max128}
	}
	return sum
}

var max128 = func() uint256.Int {
	var i uint256.Int
	i.SetAllOne()
	i.Rsh(&i, 128)
	return i
}()

// MaxAmount returns the largest representable amount, 2^128-1 LTS.
func MaxAmount() Amount {
	return Amount{max128}
}

// Cmp compares a and b, returning -1, 0 or +1.
func (a Amount) Cmp(b Amount) int {
	return a.i.Cmp(&b.i)
}

// IsZero returns whether the amount is 0 LTS.
func (a Amount) IsZero() bool {
	return a.i.IsZero()
}

// Uint64 returns the amount as uint64. ok is false if it does not fit.
func (a Amount) Uint64() (v uint64, ok bool) {
	if !a.i.IsUint64() {
		return 0, false
	}
	return a.i.Uint64(), true
}

// Big returns the amount as a new big integer.
func (a Amount) Big() *big.Int {
	return a.i.ToBig()
}

// String returns the decimal LTS quantity.
func (a Amount) String() string {
	return a.i.Dec()
}

// EncodeRLP implements rlp.Encoder.
func (a *Amount) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &a.i)
}

// DecodeRLP implements rlp.Decoder.
func (a *Amount) DecodeRLP(s *rlp.Stream) error {
	var i uint256.Int
	if err := s.Decode(&i); err != nil {
		return err
	}
	if !fits128(&i) {
		return ErrOverflow
	}
	a.i = i
	return nil
}
