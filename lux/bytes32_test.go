// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lux

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytes32MarshalUnmarshal(t *testing.T) {
	originalHex := `"0x00000000000000000000000000000000000000000000000000006d6173746572"`

	var unmarshaled Bytes32
	err := json.Unmarshal([]byte(originalHex), &unmarshaled)
	assert.NoError(t, err)

	marshaled, err := json.Marshal(unmarshaled)
	assert.NoError(t, err)
	assert.Equal(t, originalHex, string(marshaled))
}

func TestParseBytes32(t *testing.T) {
	b32 := MustParseBytes32("0x00000000000000000000000000000000000000000000000000006d6173746572")
	assert.Equal(t, "0x00000000000000000000000000000000000000000000000000006d6173746572", b32.String())

	_, err := ParseBytes32("0x123")
	assert.Error(t, err)
	_, err = ParseBytes32("1z000000000000000000000000000000000000000000000000000000006d617374")
	assert.Error(t, err)
}

func TestBytes32IsZero(t *testing.T) {
	assert.True(t, Bytes32{}.IsZero())
	assert.False(t, BytesToBytes32([]byte{1}).IsZero())
}
