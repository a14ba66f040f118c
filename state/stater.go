// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/luxtensor/go-luxtensor/lux"
)

// Stater is the state creator.
type Stater struct {
	db Database
}

// NewStater create a new stater.
func NewStater(db Database) *Stater {
	return &Stater{db}
}

// NewState create a new state object at the given root.
func (s *Stater) NewState(root lux.Bytes32) (*State, error) {
	return New(root, s.db)
}
