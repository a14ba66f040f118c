// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package mdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToBase(t *testing.T) {
	tests := []struct {
		mdt uint64
		lts string
	}{
		{0, "0"},
		{1, "1000000000000000000"},
		{10, "10000000000000000000"},
		{32, "32000000000000000000"},
		{100, "100000000000000000000"},
	}
	for _, tt := range tests {
		lts, err := ToBase(NewAmount(tt.mdt))
		assert.NoError(t, err)
		assert.Equal(t, tt.lts, lts.String())
	}
}

func TestToBaseOverflow(t *testing.T) {
	// max128 / 10^18 is just above 3.4e20 whole units
	limit := ToDisplayTruncated(Amount{max128})

	_, err := ToBase(limit)
	assert.NoError(t, err)

	over, err := limit.Add(NewAmount(1))
	assert.NoError(t, err)
	_, err = ToBase(over)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestToDisplayTruncated(t *testing.T) {
	assert.Equal(t, "0", ToDisplayTruncated(NewAmount(0)).String())
	assert.Equal(t, "1", ToDisplayTruncated(MustParseDisplayString("1")).String())
	assert.Equal(t, "10", ToDisplayTruncated(MustParseDisplayString("10")).String())

	// truncates fractional
	assert.Equal(t, "1", ToDisplayTruncated(NewAmount(1_500_000_000_000_000_000)).String())
}

func TestRoundTrip(t *testing.T) {
	for _, n := range []uint64{0, 1, 7, 1000, 1 << 40, 1<<63 + 12345} {
		lts, err := ToBase(NewAmount(n))
		assert.NoError(t, err)
		got, ok := ToDisplayTruncated(lts).Uint64()
		assert.True(t, ok)
		assert.Equal(t, n, got)
	}
}

func TestFormatAsDisplay(t *testing.T) {
	assert.Equal(t, "1.000000000000000000 MDT", FormatAsDisplay(NewAmount(1_000_000_000_000_000_000)))
	assert.Equal(t, "1.500000000000000000 MDT", FormatAsDisplay(NewAmount(1_500_000_000_000_000_000)))
	assert.Equal(t, "0.000000000000000000 MDT", FormatAsDisplay(NewAmount(0)))
	assert.Equal(t, "0.000000000000000001 MDT", FormatAsDisplay(NewAmount(1)))
}

func TestFormatLTS(t *testing.T) {
	assert.Equal(t, "1000000000000000000 LTS", FormatLTS(NewAmount(1_000_000_000_000_000_000)))
	assert.Equal(t, "0 LTS", FormatLTS(NewAmount(0)))
}

func TestParseDisplayString(t *testing.T) {
	tests := []struct {
		in  string
		lts uint64
	}{
		{"1", 1_000_000_000_000_000_000},
		{"1.5", 1_500_000_000_000_000_000},
		{"0.5", 500_000_000_000_000_000},
		{"10", 10_000_000_000_000_000_000},
		{"10.5", 10_500_000_000_000_000_000},
		{"0.1", 100_000_000_000_000_000},
		{"1.000000000000000001", 1_000_000_000_000_000_001},
	}
	for _, tt := range tests {
		got, err := ParseDisplayString(tt.in)
		assert.NoError(t, err, tt.in)
		assert.Equal(t, NewAmount(tt.lts), got, tt.in)
	}
}

func TestParseDisplayStringRejects(t *testing.T) {
	tests := []struct {
		in  string
		err error
	}{
		{"", ErrMalformedAmount},
		{"invalid", ErrNonDigit},
		{"1.1.1", ErrNonDigit},
		{"1.1234567890123456789", ErrTooManyDecimals}, // 19 decimals
		{"-1", ErrNegativeAmount},
		{"-0.5", ErrNegativeAmount},
		{"+1", ErrNonDigit},
		{"1.", ErrNonDigit},
		{".5", ErrNonDigit},
		{"1 000", ErrNonDigit},
		{"400000000000000000000", ErrOverflow}, // 4e20 MDT > 128-bit LTS range
	}
	for _, tt := range tests {
		_, err := ParseDisplayString(tt.in)
		assert.ErrorIs(t, err, tt.err, tt.in)
	}
}

func TestCheckedArithmetic(t *testing.T) {
	a := NewAmount(10)
	b := NewAmount(3)

	sum, err := a.Add(b)
	assert.NoError(t, err)
	assert.Equal(t, NewAmount(13), sum)

	diff, err := a.Sub(b)
	assert.NoError(t, err)
	assert.Equal(t, NewAmount(7), diff)

	_, err = b.Sub(a)
	assert.ErrorIs(t, err, ErrUnderflow)

	_, err = Amount{max128}.Add(NewAmount(1))
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestSaturatingAdd(t *testing.T) {
	assert.Equal(t, NewAmount(3), NewAmount(1).SaturatingAdd(NewAmount(2)))
	assert.Equal(t, Amount{max128}, Amount{max128}.SaturatingAdd(NewAmount(1)))
}

func TestConstants(t *testing.T) {
	assert.Equal(t, "1000000000000000000", LTSPerMDT.String())
	assert.Equal(t, "1000000000000000000000", LTSPerKMDT.String())
	assert.Equal(t, "1000000000000000000000000", LTSPerMMDT.String())
}
