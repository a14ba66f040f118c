// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/luxtensor/go-luxtensor/lux"
)

// Prove constructs a merkle proof for key. The result contains all encoded
// nodes on the path to the value at key. The value itself is also included
// in the last node and can be retrieved by verifying the proof.
//
// If the trie does not contain a value for key, the returned proof contains
// all nodes of the longest existing prefix of the key (at least the root
// node), ending with the node that proves the absence of the key.
func (t *Trie) Prove(key []byte, fromLevel uint, proofDb DatabaseWriter) error {
	// Collect all nodes on the path to key.
	key = keybytesToHex(key)
	var nodes []node
	tn := t.root
	for len(key) > 0 && tn != nil {
		switch n := tn.(type) {
		case *shortNode:
			if len(key) < len(n.Key) || !bytes.Equal(n.Key, key[:len(n.Key)]) {
				// The trie doesn't contain the key.
				tn = nil
			} else {
				tn = n.Val
				key = key[len(n.Key):]
			}
			nodes = append(nodes, n)
		case *fullNode:
			tn = n.Children[key[0]]
			key = key[1:]
			nodes = append(nodes, n)
		case hashNode:
			var err error
			tn, err = t.resolveHash(n, nil)
			if err != nil {
				return err
			}
		default:
			panic(fmt.Sprintf("%T: invalid node: %v", tn, tn))
		}
	}
	hasher := newHasher()
	defer returnHasherToPool(hasher)

	for i, n := range nodes {
		// Don't bother checking for errors here since hasher panics
		// if encoding doesn't work and we're not writing to any database.
		n, _, _ = hasher.hashChildren(n, nil)
		hn, _ := hasher.store(n, nil, false)
		if hash, ok := hn.(hashNode); ok || i == 0 {
			// If the node's database encoding is a hash (or is the
			// root node), it becomes a proof element.
			if fromLevel > 0 {
				fromLevel--
			} else {
				enc, _ := rlp.EncodeToBytes(n)
				if !ok {
					hash = lux.Blake2b(enc).Bytes()
				}
				if err := proofDb.Put(hash, enc); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// VerifyProof checks merkle proofs. The given proof must contain the value
// for key in a trie with the given root hash. VerifyProof returns an error
// if the proof contains invalid trie nodes or the wrong value.
//
// A proof holder needs nothing but the root hash to verify.
func VerifyProof(rootHash lux.Bytes32, key []byte, proofDb DatabaseReader) (value []byte, err error) {
	key = keybytesToHex(key)
	wantHash := rootHash.Bytes()
	for i := 0; ; i++ {
		buf, _ := proofDb.Get(wantHash)
		if buf == nil {
			return nil, fmt.Errorf("proof node %d (hash %064x) missing", i, wantHash)
		}
		if h := lux.Blake2b(buf); !bytes.Equal(h.Bytes(), wantHash) {
			return nil, fmt.Errorf("proof node %d content does not hash to %064x", i, wantHash)
		}
		n, err := decodeNode(wantHash, buf)
		if err != nil {
			return nil, fmt.Errorf("bad proof node %d: %v", i, err)
		}
		keyrest, cld := get(n, key)
		switch cld := cld.(type) {
		case nil:
			// The trie doesn't contain the key.
			return nil, nil
		case hashNode:
			key = keyrest
			wantHash = cld
		case valueNode:
			return cld, nil
		}
	}
}

func get(tn node, key []byte) ([]byte, node) {
	for {
		switch n := tn.(type) {
		case *shortNode:
			if len(key) < len(n.Key) || !bytes.Equal(n.Key, key[:len(n.Key)]) {
				return nil, nil
			}
			tn = n.Val
			key = key[len(n.Key):]
		case *fullNode:
			tn = n.Children[key[0]]
			key = key[1:]
		case hashNode:
			return key, n
		case nil:
			return key, nil
		case valueNode:
			return nil, n
		default:
			panic(fmt.Sprintf("%T: invalid node: %v", tn, tn))
		}
	}
}
