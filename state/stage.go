// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/luxtensor/go-luxtensor/lux"
	"github.com/luxtensor/go-luxtensor/trie"
)

// Stage abstracts changes on the main account trie.
// Hash computes the would-be root without touching the store; Commit
// writes all trie nodes and code in a single batch.
type Stage struct {
	db           Database
	accountTrie  *trie.Trie
	storageTries []*trie.Trie
	codes        []codeWithHash
}

type codeWithHash struct {
	code []byte
	hash []byte
}

// Hash computes hash of the main account trie.
func (s *Stage) Hash() lux.Bytes32 {
	return s.accountTrie.Hash()
}

// Commit commits all changes into main account trie and storage tries.
// Nodes and code go through one kv batch, so either the whole stage
// becomes durable or none of it does.
func (s *Stage) Commit() (lux.Bytes32, error) {
	batch := s.db.NewBatch()

	// commit storage tries
	for _, strie := range s.storageTries {
		if _, err := strie.Commit(batch); err != nil {
			return lux.Bytes32{}, &Error{err}
		}
	}

	// commit account trie
	root, err := s.accountTrie.Commit(batch)
	if err != nil {
		return lux.Bytes32{}, &Error{err}
	}

	// write codes
	codePutter := codeBucket.NewPutter(batch)
	for _, code := range s.codes {
		if err := codePutter.Put(code.hash, code.code); err != nil {
			return lux.Bytes32{}, &Error{err}
		}
	}

	if err := batch.Write(); err != nil {
		return lux.Bytes32{}, &Error{err}
	}
	return root, nil
}
