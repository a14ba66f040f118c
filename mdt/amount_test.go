// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package mdt

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
)

func TestFromBig(t *testing.T) {
	a, err := FromBig(big.NewInt(42))
	assert.NoError(t, err)
	assert.Equal(t, NewAmount(42), a)

	_, err = FromBig(big.NewInt(-1))
	assert.ErrorIs(t, err, ErrUnderflow)

	tooBig := new(big.Int).Lsh(big.NewInt(1), 129)
	_, err = FromBig(tooBig)
	assert.ErrorIs(t, err, ErrOverflow)

	rt, err := FromBig(NewAmount(7).Big())
	assert.NoError(t, err)
	assert.Equal(t, NewAmount(7), rt)
}

func TestAmountRLP(t *testing.T) {
	for _, a := range []Amount{
		{},
		NewAmount(1),
		NewAmount(1_500_000_000_000_000_000),
		LTSPerMMDT,
		{max128},
	} {
		data, err := rlp.EncodeToBytes(&a)
		assert.NoError(t, err)

		var decoded Amount
		assert.NoError(t, rlp.DecodeBytes(data, &decoded))
		assert.Equal(t, a, decoded)
	}

	// zero encodes like the canonical empty integer
	zero, _ := rlp.EncodeToBytes(&Amount{})
	canonical, _ := rlp.EncodeToBytes(new(big.Int))
	assert.Equal(t, canonical, zero)
}
