// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxtensor/go-luxtensor/lux"
	"github.com/luxtensor/go-luxtensor/lvldb"
	"github.com/luxtensor/go-luxtensor/mdt"
	"github.com/luxtensor/go-luxtensor/runtime"
	"github.com/luxtensor/go-luxtensor/state"
	"github.com/luxtensor/go-luxtensor/tx"
)

var (
	alice = lux.BytesToAddress([]byte("alice"))
	bob   = lux.BytesToAddress([]byte("bob"))
)

func newTestRuntime(t *testing.T, balance mdt.Amount) *runtime.Runtime {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st, err := state.New(lux.Bytes32{}, db)
	require.NoError(t, err)
	require.NoError(t, st.SetBalance(alice, balance))
	return runtime.New(st)
}

func transfer(amount, fee uint64, nonce, gas uint64) *tx.Transaction {
	return new(tx.Builder).
		Sender(alice).
		Recipient(bob).
		Amount(mdt.NewAmount(amount)).
		Fee(mdt.NewAmount(fee)).
		Nonce(nonce).
		Gas(gas).
		Build()
}

func TestExecuteTransfer(t *testing.T) {
	rt := newTestRuntime(t, mdt.NewAmount(1000))

	output, err := rt.ExecuteTransaction(transfer(100, 10, 0, lux.TxGas))
	require.NoError(t, err)
	assert.Nil(t, output.Err)
	assert.Equal(t, lux.TxGas, output.GasUsed)

	st := rt.State()
	balance, _ := st.GetBalance(alice)
	assert.Equal(t, mdt.NewAmount(890), balance)
	balance, _ = st.GetBalance(bob)
	assert.Equal(t, mdt.NewAmount(100), balance)
	balance, _ = st.GetBalance(lux.RewardsAccumulator)
	assert.Equal(t, mdt.NewAmount(10), balance)
	nonce, _ := st.GetNonce(alice)
	assert.Equal(t, uint64(1), nonce)
}

func TestNonceStrictness(t *testing.T) {
	rt := newTestRuntime(t, mdt.NewAmount(1000))

	// gap
	output, err := rt.ExecuteTransaction(transfer(1, 0, 5, lux.TxGas))
	require.NoError(t, err)
	assert.ErrorIs(t, output.Err, runtime.ErrInvalidNonce)

	// correct nonce applies
	trx := transfer(1, 0, 0, lux.TxGas)
	output, err = rt.ExecuteTransaction(trx)
	require.NoError(t, err)
	assert.Nil(t, output.Err)

	// replay of the used nonce must reject
	output, err = rt.ExecuteTransaction(transfer(2, 0, 0, lux.TxGas))
	require.NoError(t, err)
	assert.ErrorIs(t, output.Err, runtime.ErrInvalidNonce)

	// rejection leaves no trace
	balance, _ := rt.State().GetBalance(bob)
	assert.Equal(t, mdt.NewAmount(1), balance)
}

func TestInsufficientBalance(t *testing.T) {
	rt := newTestRuntime(t, mdt.NewAmount(100))

	// amount alone fits but amount+fee does not
	output, err := rt.ExecuteTransaction(transfer(95, 10, 0, lux.TxGas))
	require.NoError(t, err)
	assert.ErrorIs(t, output.Err, runtime.ErrInsufficientBalance)

	st := rt.State()
	balance, _ := st.GetBalance(alice)
	assert.Equal(t, mdt.NewAmount(100), balance)
	nonce, _ := st.GetNonce(alice)
	assert.Zero(t, nonce)
}

func TestOverflowingDeclaration(t *testing.T) {
	rt := newTestRuntime(t, mdt.NewAmount(100))

	trx := new(tx.Builder).
		Sender(alice).
		Recipient(bob).
		Amount(mdt.MaxAmount()).
		Fee(mdt.MaxAmount()).
		Nonce(0).
		Gas(lux.TxGas).
		Build()
	output, err := rt.ExecuteTransaction(trx)
	require.NoError(t, err)
	assert.ErrorIs(t, output.Err, runtime.ErrInsufficientBalance)
}

func TestGasExhaustion(t *testing.T) {
	rt := newTestRuntime(t, mdt.NewAmount(1000))

	// declared gas below the intrinsic requirement: the attempt is paid
	// for, the transfer is not
	output, err := rt.ExecuteTransaction(transfer(100, 10, 0, lux.TxGas-1))
	require.NoError(t, err)
	assert.ErrorIs(t, output.Err, runtime.ErrGasExhausted)
	assert.Equal(t, lux.TxGas-1, output.GasUsed)

	st := rt.State()
	balance, _ := st.GetBalance(alice)
	assert.Equal(t, mdt.NewAmount(990), balance)
	balance, _ = st.GetBalance(bob)
	assert.True(t, balance.IsZero())
	balance, _ = st.GetBalance(lux.RewardsAccumulator)
	assert.Equal(t, mdt.NewAmount(10), balance)
	nonce, _ := st.GetNonce(alice)
	assert.Equal(t, uint64(1), nonce)

	// the sequence continues from the bumped nonce
	output, err = rt.ExecuteTransaction(transfer(100, 10, 1, lux.TxGas))
	require.NoError(t, err)
	assert.Nil(t, output.Err)
}

func TestExecuteBatchConservation(t *testing.T) {
	rt := newTestRuntime(t, mdt.NewAmount(10_000))

	sum := func() *big.Int {
		total := new(big.Int)
		for _, addr := range []lux.Address{alice, bob, lux.RewardsAccumulator} {
			balance, err := rt.State().GetBalance(addr)
			require.NoError(t, err)
			total.Add(total, balance.Big())
		}
		return total
	}
	before := sum()

	outputs, err := rt.ExecuteBatch([]*tx.Transaction{
		transfer(100, 10, 0, lux.TxGas),
		transfer(200, 10, 1, lux.TxGas),
		transfer(1, 0, 99, lux.TxGas),     // invalid nonce, excluded
		transfer(300, 10, 2, lux.TxGas-1), // gas exhausted
	})
	require.NoError(t, err)
	require.Len(t, outputs, 4)

	assert.Nil(t, outputs[0].Err)
	assert.Nil(t, outputs[1].Err)
	assert.ErrorIs(t, outputs[2].Err, runtime.ErrInvalidNonce)
	assert.ErrorIs(t, outputs[3].Err, runtime.ErrGasExhausted)

	// fees are forwarded, not destroyed: totals are conserved
	assert.Equal(t, before, sum())

	balance, _ := rt.State().GetBalance(bob)
	assert.Equal(t, mdt.NewAmount(300), balance)
	balance, _ = rt.State().GetBalance(lux.RewardsAccumulator)
	assert.Equal(t, mdt.NewAmount(30), balance)
}

func TestExecuteAndCommitRoot(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	stater := state.NewStater(db)

	st, err := stater.NewState(lux.Bytes32{})
	require.NoError(t, err)
	require.NoError(t, st.SetBalance(alice, mdt.NewAmount(1000)))

	rt := runtime.New(st)
	_, err = rt.ExecuteBatch([]*tx.Transaction{
		transfer(100, 10, 0, lux.TxGas),
		transfer(50, 10, 1, lux.TxGas),
	})
	require.NoError(t, err)

	stage, err := st.Stage()
	require.NoError(t, err)
	root, err := stage.Commit()
	require.NoError(t, err)

	// the committed root reflects every applied tx
	st, err = stater.NewState(root)
	require.NoError(t, err)
	balance, _ := st.GetBalance(alice)
	assert.Equal(t, mdt.NewAmount(830), balance)
	balance, _ = st.GetBalance(bob)
	assert.Equal(t, mdt.NewAmount(150), balance)
	nonce, _ := st.GetNonce(alice)
	assert.Equal(t, uint64(2), nonce)
}
