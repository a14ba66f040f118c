// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxtensor/go-luxtensor/lux"
	"github.com/luxtensor/go-luxtensor/lvldb"
	"github.com/luxtensor/go-luxtensor/mdt"
)

func TestStage(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st, err := New(lux.Bytes32{}, db)
	require.NoError(t, err)

	addr := lux.BytesToAddress([]byte("acc1"))

	balance := mdt.NewAmount(10)
	code := []byte{1, 2, 3}

	storage := map[lux.Bytes32]lux.Bytes32{
		lux.BytesToBytes32([]byte("s1")): lux.BytesToBytes32([]byte("v1")),
		lux.BytesToBytes32([]byte("s2")): lux.BytesToBytes32([]byte("v2")),
		lux.BytesToBytes32([]byte("s3")): lux.BytesToBytes32([]byte("v3"))}

	require.NoError(t, st.SetBalance(addr, balance))
	require.NoError(t, st.SetNonce(addr, 3))
	require.NoError(t, st.SetCode(addr, code))
	for k, v := range storage {
		st.SetStorage(addr, k, v)
	}

	stage, err := st.Stage()
	require.NoError(t, err)

	hash := stage.Hash()
	root, err := stage.Commit()
	require.NoError(t, err)

	assert.Equal(t, hash, root)

	st, err = New(root, db)
	require.NoError(t, err)

	gotBalance, _ := st.GetBalance(addr)
	assert.Equal(t, balance, gotBalance)
	gotNonce, _ := st.GetNonce(addr)
	assert.Equal(t, uint64(3), gotNonce)
	gotCode, _ := st.GetCode(addr)
	assert.Equal(t, code, gotCode)
	gotCodeHash, _ := st.GetCodeHash(addr)
	assert.Equal(t, lux.Keccak256(code), gotCodeHash)
	for k, v := range storage {
		got, _ := st.GetStorage(addr, k)
		assert.Equal(t, v, got)
	}
}

func TestStageHashStability(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st, err := New(lux.Bytes32{}, db)
	require.NoError(t, err)

	addrs := []lux.Address{
		lux.BytesToAddress([]byte("acc1")),
		lux.BytesToAddress([]byte("acc2")),
		lux.BytesToAddress([]byte("acc3")),
	}
	for i, addr := range addrs {
		require.NoError(t, st.SetBalance(addr, mdt.NewAmount(uint64(i+1))))
	}

	stage, err := st.Stage()
	require.NoError(t, err)

	// Hash must not write and must agree with the later commit
	hash := stage.Hash()
	assert.Equal(t, hash, stage.Hash())

	root, err := stage.Commit()
	require.NoError(t, err)
	assert.Equal(t, hash, root)
}
