// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxtensor/go-luxtensor/genesis"
	"github.com/luxtensor/go-luxtensor/lux"
	"github.com/luxtensor/go-luxtensor/lvldb"
	"github.com/luxtensor/go-luxtensor/mdt"
	"github.com/luxtensor/go-luxtensor/state"
)

func TestBuilderAlloc(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	stater := state.NewStater(db)

	addr := lux.BytesToAddress([]byte("acc1"))
	root, err := new(genesis.Builder).
		GasLimit(lux.InitialGasLimit).
		Alloc(addr, mdt.NewAmount(10)).
		Build(stater)
	require.NoError(t, err)

	st, err := stater.NewState(root)
	require.NoError(t, err)
	balance, err := st.GetBalance(addr)
	require.NoError(t, err)
	assert.Equal(t, mdt.MustParseDisplayString("10"), balance)
}

func TestRootReproducibility(t *testing.T) {
	build := func() lux.Bytes32 {
		root, err := new(genesis.Builder).
			Timestamp(1735689600).
			GasLimit(lux.InitialGasLimit).
			Alloc(lux.BytesToAddress([]byte("acc1")), mdt.NewAmount(1)).
			Alloc(lux.BytesToAddress([]byte("acc2")), mdt.NewAmount(2)).
			ComputeRoot()
		require.NoError(t, err)
		return root
	}
	assert.Equal(t, build(), build())
}

func TestDevnet(t *testing.T) {
	gene := genesis.NewDevnet()
	assert.Equal(t, "devnet", gene.Name())

	db, err := lvldb.NewMem()
	require.NoError(t, err)
	stater := state.NewStater(db)
	root, err := gene.Build(stater)
	require.NoError(t, err)
	assert.Equal(t, gene.Root(), root)

	st, err := stater.NewState(root)
	require.NoError(t, err)
	for _, a := range genesis.DevAccounts() {
		balance, err := st.GetBalance(a.Address)
		require.NoError(t, err)
		assert.Equal(t, mdt.MustParseDisplayString("1000000"), balance)
	}
}
