// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"fmt"

	"github.com/luxtensor/go-luxtensor/lux"
)

// MissingNodeError is returned by the trie functions (Get, Update, Delete)
// in the case where a trie node is not present in the local database. It
// signals structural corruption: the root can no longer be trusted, so
// callers must not commit further state on top of it.
type MissingNodeError struct {
	NodeHash lux.Bytes32 // hash of the missing node
	Path     []byte      // hex-encoded path to the missing node
	Err      error       // the store error, if any
}

func (err *MissingNodeError) Error() string {
	return fmt.Sprintf("missing trie node %v (path %x)", err.NodeHash, err.Path)
}

func (err *MissingNodeError) Unwrap() error {
	return err.Err
}
