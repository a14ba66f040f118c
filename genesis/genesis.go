// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/ethereum/go-ethereum/log"

	"github.com/luxtensor/go-luxtensor/lux"
	"github.com/luxtensor/go-luxtensor/state"
)

// Genesis is a named preset of the initial state.
type Genesis struct {
	builder *Builder
	root    lux.Bytes32
	name    string
}

func newGenesis(builder *Builder, name string) *Genesis {
	// the root is a pure function of the presets, compute it eagerly so
	// two nodes with the same preset can cross-check before syncing
	root, err := builder.ComputeRoot()
	if err != nil {
		panic(err)
	}
	return &Genesis{builder, root, name}
}

// Build builds the genesis state into the given store.
func (g *Genesis) Build(stater *state.Stater) (lux.Bytes32, error) {
	root, err := g.builder.Build(stater)
	if err != nil {
		return lux.Bytes32{}, err
	}
	log.Debug("genesis state built", "name", g.name, "root", root)
	return root, nil
}

// Root returns the genesis state root.
func (g *Genesis) Root() lux.Bytes32 {
	return g.root
}

// Name returns the name of the preset.
func (g *Genesis) Name() string {
	return g.name
}
