// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime validates and applies transactions against the world
// state.
package runtime

import (
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/luxtensor/go-luxtensor/lux"
	"github.com/luxtensor/go-luxtensor/state"
	"github.com/luxtensor/go-luxtensor/tx"
)

var (
	// ErrInvalidNonce rejects a tx whose nonce does not equal the
	// sender's current nonce exactly. No gaps, no replay.
	ErrInvalidNonce = errors.New("invalid nonce")
	// ErrInsufficientBalance rejects a tx whose sender cannot cover
	// amount plus fee.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrGasExhausted marks a tx that ran past its declared gas budget.
	// The transfer is reverted but nonce and fee stay committed, the
	// attempt is paid for.
	ErrGasExhausted = errors.New("gas exhausted")
)

// Output is the outcome of executing one transaction.
type Output struct {
	TxID    lux.Bytes32
	GasUsed uint64
	// Err is nil when the tx is fully applied. ErrGasExhausted means
	// nonce and fee landed but the transfer did not; any other error
	// means the tx left no trace on state.
	Err error
}

// Runtime executes transactions against a state.
//
// A Runtime owns its State exclusively while executing, state mutation is
// single-writer. Readers of previously committed roots are unaffected.
type Runtime struct {
	state   *state.State
	rewards lux.Address
}

// New create a Runtime object over the given state.
// Fees are forwarded to lux.RewardsAccumulator.
func New(st *state.State) *Runtime {
	return &Runtime{
		state:   st,
		rewards: lux.RewardsAccumulator,
	}
}

// SetRewards overrides the fee sink address.
// Returns this runtime.
func (rt *Runtime) SetRewards(addr lux.Address) *Runtime {
	rt.rewards = addr
	return rt
}

// State returns the underlying state.
func (rt *Runtime) State() *state.State { return rt.state }

// ExecuteTransaction validates and applies one transaction.
//
// Transaction-level failures are reported in Output.Err and leave the
// state as documented there. The returned error is non-nil only for
// state access failures, which are fatal since the trie can no longer
// be trusted.
func (rt *Runtime) ExecuteTransaction(trx *tx.Transaction) (*Output, error) {
	output := &Output{TxID: trx.ID()}

	sender := trx.Sender()

	intrinsicGas, err := trx.IntrinsicGas()
	if err != nil {
		return rt.reject(output, err), nil
	}

	// validate nonce, strict equality
	nonce, err := rt.state.GetNonce(sender)
	if err != nil {
		return nil, err
	}
	if trx.Nonce() != nonce {
		return rt.reject(output, ErrInvalidNonce), nil
	}

	// validate balance covers amount + fee. a total overflowing 128 bits
	// cannot be covered by any balance.
	total, err := trx.Amount().Add(trx.Fee())
	if err != nil {
		return rt.reject(output, ErrInsufficientBalance), nil
	}
	balance, err := rt.state.GetBalance(sender)
	if err != nil {
		return nil, err
	}
	if balance.Cmp(total) < 0 {
		return rt.reject(output, ErrInsufficientBalance), nil
	}

	// charge for the attempt: fee and nonce commit even if the transfer
	// below runs out of gas.
	baseCheckpoint := rt.state.NewCheckpoint()
	if err := rt.state.SubBalance(sender, trx.Fee()); err != nil {
		return nil, err
	}
	if err := rt.state.AddBalance(rt.rewards, trx.Fee()); err != nil {
		rt.state.RevertTo(baseCheckpoint)
		return rt.reject(output, err), nil
	}
	if err := rt.state.IncrementNonce(sender); err != nil {
		return nil, err
	}

	// the transfer itself
	transferCheckpoint := rt.state.NewCheckpoint()
	if err := rt.state.SubBalance(sender, trx.Amount()); err != nil {
		return nil, err
	}
	if err := rt.state.AddBalance(trx.Recipient(), trx.Amount()); err != nil {
		// crediting past the 128-bit range. reject the whole tx.
		rt.state.RevertTo(baseCheckpoint)
		return rt.reject(output, err), nil
	}

	if intrinsicGas > trx.Gas() {
		// budget exhausted, revert the transfer only
		rt.state.RevertTo(transferCheckpoint)
		output.GasUsed = trx.Gas()
		output.Err = ErrGasExhausted
		log.Debug("tx gas exhausted", "id", output.TxID, "gas", trx.Gas(), "needed", intrinsicGas)
		metricTxCounter().AddWithLabel(1, map[string]string{"outcome": "gas_exhausted"})
		return output, nil
	}

	output.GasUsed = intrinsicGas
	metricTxCounter().AddWithLabel(1, map[string]string{"outcome": "applied"})
	return output, nil
}

func (rt *Runtime) reject(output *Output, cause error) *Output {
	output.Err = cause
	log.Debug("tx rejected", "id", output.TxID, "err", cause)
	metricTxCounter().AddWithLabel(1, map[string]string{"outcome": "rejected"})
	return output
}

// ExecuteBatch executes the transactions in the given order, which is
// part of the root determinism contract. A rejected tx is excluded and
// execution continues with the rest of the batch.
func (rt *Runtime) ExecuteBatch(txs []*tx.Transaction) ([]*Output, error) {
	outputs := make([]*Output, len(txs))
	for i, trx := range txs {
		output, err := rt.ExecuteTransaction(trx)
		if err != nil {
			return nil, errors.Wrapf(err, "tx #%d", i)
		}
		outputs[i] = output
	}
	return outputs, nil
}
