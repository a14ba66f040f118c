// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/luxtensor/go-luxtensor/lux"
	"github.com/luxtensor/go-luxtensor/mdt"
)

// DeltaOp is the kind of mutation a Delta applies to an account.
type DeltaOp int

const (
	// OpCredit adds value to the account balance.
	OpCredit DeltaOp = iota
	// OpDebit removes value from the account balance.
	OpDebit
	// OpNonceBump increases the account nonce by exactly 1.
	OpNonceBump
	// OpMint adds value not debited from any other account, e.g. block
	// rewards. Identical to OpCredit in effect, distinct for accounting.
	OpMint
)

func (op DeltaOp) String() string {
	switch op {
	case OpCredit:
		return "credit"
	case OpDebit:
		return "debit"
	case OpNonceBump:
		return "noncebump"
	case OpMint:
		return "mint"
	}
	return "unknown"
}

// Delta is a single account mutation. Value is ignored by OpNonceBump.
type Delta struct {
	Addr  lux.Address
	Op    DeltaOp
	Value mdt.Amount
}

// Committer owns the current state root and serializes batches of account
// deltas onto it. All ApplyBatch calls go through one mutex, so no two
// callers can race to produce two different next roots from the same
// parent. Readers holding a previously returned root keep a stable view,
// committed trie nodes are immutable.
type Committer struct {
	mu     sync.Mutex
	stater *Stater
	root   lux.Bytes32
	fatal  error
}

// NewCommitter creates a committer over the given root.
func NewCommitter(stater *Stater, root lux.Bytes32) *Committer {
	return &Committer{stater: stater, root: root}
}

// Root returns the current state root.
func (c *Committer) Root() lux.Bytes32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.root
}

// ApplyBatch applies the ordered deltas atomically and returns the new
// root. Later deltas observe the effects of earlier ones.
//
// The batch is all-or-nothing: if any delta would underflow a balance or
// overflow the 128-bit range, the whole batch is rejected, the prior root
// is returned unchanged and no write reaches the store. Structural trie
// failures are fatal, the committer refuses further batches since state
// integrity can no longer be trusted.
func (c *Committer) ApplyBatch(deltas []Delta) (lux.Bytes32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fatal != nil {
		return c.root, errors.WithMessage(c.fatal, "state corrupt")
	}

	st, err := c.stater.NewState(c.root)
	if err != nil {
		c.fatal = err
		return c.root, err
	}

	for i, d := range deltas {
		switch d.Op {
		case OpCredit, OpMint:
			err = st.AddBalance(d.Addr, d.Value)
		case OpDebit:
			err = st.SubBalance(d.Addr, d.Value)
		case OpNonceBump:
			err = st.IncrementNonce(d.Addr)
		default:
			err = errors.Errorf("unknown delta op %d", d.Op)
		}
		if err != nil {
			if _, ok := err.(*Error); ok {
				c.fatal = err
			}
			metricBatchCounter().AddWithLabel(1, map[string]string{"outcome": "rejected"})
			return c.root, errors.Wrapf(err, "delta #%d", i)
		}
		metricDeltaCounter().AddWithLabel(1, map[string]string{"op": d.Op.String()})
	}

	stage, err := st.Stage()
	if err != nil {
		c.fatal = err
		return c.root, err
	}
	root, err := stage.Commit()
	if err != nil {
		c.fatal = err
		return c.root, err
	}
	c.root = root
	metricBatchCounter().AddWithLabel(1, map[string]string{"outcome": "committed"})
	return root, nil
}
