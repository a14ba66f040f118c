// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

// Committed nodes are content-addressed: the store key is the blake2b hash
// of the node encoding. Any kv store satisfying these interfaces can back
// the trie; durability is the store's own concern.

// DatabaseReader wraps the Get and Has methods of a backing store for the trie.
type DatabaseReader interface {
	// Get retrieves the value of the given key.
	// An error is returned if the key is not found.
	Get(key []byte) (value []byte, err error)

	// Has returns whether the given key exists.
	Has(key []byte) (bool, error)
}

// DatabaseWriter wraps the Put method of a backing store for the trie.
type DatabaseWriter interface {
	// Put stores the given value under the key.
	Put(key, value []byte) error
}

// Database wraps the read and write sides of a node store.
type Database interface {
	DatabaseReader
	DatabaseWriter
}
