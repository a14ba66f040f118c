// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds the initial world state.
package genesis

import (
	"github.com/pkg/errors"

	"github.com/luxtensor/go-luxtensor/lux"
	"github.com/luxtensor/go-luxtensor/lvldb"
	"github.com/luxtensor/go-luxtensor/mdt"
	"github.com/luxtensor/go-luxtensor/state"
)

// Builder helper to build the genesis state.
type Builder struct {
	timestamp uint64
	gasLimit  uint64

	allocs     []alloc
	stateProcs []func(state *state.State) error
}

type alloc struct {
	addr       lux.Address
	balanceMDT mdt.Amount
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// GasLimit set gas limit.
func (b *Builder) GasLimit(limit uint64) *Builder {
	b.gasLimit = limit
	return b
}

// Alloc funds an address with a balance denominated in whole MDT.
// The conversion to LTS happens at build time.
func (b *Builder) Alloc(addr lux.Address, balanceMDT mdt.Amount) *Builder {
	b.allocs = append(b.allocs, alloc{addr, balanceMDT})
	return b
}

// State add a state process
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// ComputeRoot computes the genesis state root over a throwaway store.
func (b *Builder) ComputeRoot() (lux.Bytes32, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return lux.Bytes32{}, err
	}
	return b.Build(state.NewStater(db))
}

// Build builds the genesis state according to presets and returns its root.
func (b *Builder) Build(stater *state.Stater) (lux.Bytes32, error) {
	st, err := stater.NewState(lux.Bytes32{})
	if err != nil {
		return lux.Bytes32{}, err
	}

	for _, a := range b.allocs {
		balance, err := mdt.ToBase(a.balanceMDT)
		if err != nil {
			return lux.Bytes32{}, errors.Wrapf(err, "alloc %v", a.addr)
		}
		if err := st.SetBalance(a.addr, balance); err != nil {
			return lux.Bytes32{}, errors.Wrap(err, "alloc")
		}
	}

	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return lux.Bytes32{}, errors.Wrap(err, "state process")
		}
	}

	stage, err := st.Stage()
	if err != nil {
		return lux.Bytes32{}, errors.Wrap(err, "stage")
	}
	root, err := stage.Commit()
	if err != nil {
		return lux.Bytes32{}, errors.Wrap(err, "commit state")
	}
	return root, nil
}
