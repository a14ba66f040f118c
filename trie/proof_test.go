// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"crypto/rand"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// proofDb is the ordered node bag produced by Prove.
type proofDb map[string][]byte

func (p proofDb) Get(key []byte) ([]byte, error) {
	if v, ok := p[string(key)]; ok {
		return v, nil
	}
	return nil, nil
}
func (p proofDb) Has(key []byte) (bool, error) {
	_, ok := p[string(key)]
	return ok, nil
}
func (p proofDb) Put(key, value []byte) error {
	p[string(key)] = value
	return nil
}

func randomTrie(t *testing.T, n int) (*Trie, map[string][]byte) {
	trie, _ := newEmpty(t)
	vals := make(map[string][]byte)
	for j := 0; j < n; j++ {
		k := make([]byte, 32)
		rand.Read(k)
		v := make([]byte, 20)
		rand.Read(v)
		trie.Update(k, v)
		vals[string(k)] = v
	}
	return trie, vals
}

func TestProof(t *testing.T) {
	trie, vals := randomTrie(t, 200)
	root := trie.Hash()

	for k, v := range vals {
		proof := proofDb{}
		require.NoError(t, trie.Prove([]byte(k), 0, proof))

		val, err := VerifyProof(root, []byte(k), proof)
		require.NoError(t, err)
		assert.Equal(t, v, val)
	}
}

func TestAbsenceProof(t *testing.T) {
	trie, _ := randomTrie(t, 100)
	root := trie.Hash()

	missing := make([]byte, 32)
	rand.Read(missing)

	proof := proofDb{}
	require.NoError(t, trie.Prove(missing, 0, proof))

	val, err := VerifyProof(root, missing, proof)
	assert.NoError(t, err)
	assert.Nil(t, val)
}

func TestOneElementProof(t *testing.T) {
	trie, _ := newEmpty(t)
	updateString(trie, "k", "v")

	proof := proofDb{}
	require.NoError(t, trie.Prove([]byte("k"), 0, proof))
	assert.Len(t, proof, 1)

	val, err := VerifyProof(trie.Hash(), []byte("k"), proof)
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)
}

func TestBadProof(t *testing.T) {
	trie, vals := randomTrie(t, 200)
	root := trie.Hash()

	for k := range vals {
		proof := proofDb{}
		require.NoError(t, trie.Prove([]byte(k), 0, proof))

		// mutate one random proof node
		var mutated bool
		for key, enc := range proof {
			cpy := append([]byte(nil), enc...)
			cpy[mrand.Intn(len(cpy))] ^= 0xff
			proof[key] = cpy
			mutated = true
			break
		}
		require.True(t, mutated)

		if _, err := VerifyProof(root, []byte(k), proof); err == nil {
			t.Fatal("expected proof to fail for mutated node")
		}
	}
}

func TestProofAfterCommit(t *testing.T) {
	db := newMemDatabase(t)
	trie, _ := New(emptyRoot, db)
	updateString(trie, "doe", "reindeer")
	updateString(trie, "dog", "puppy")
	updateString(trie, "dogglesworth", "cat")
	root, err := trie.Commit(db)
	require.NoError(t, err)

	// an external verifier holding only the root confirms content
	reloaded, err := New(root, db)
	require.NoError(t, err)
	proof := proofDb{}
	require.NoError(t, reloaded.Prove([]byte("dog"), 0, proof))

	val, err := VerifyProof(root, []byte("dog"), proof)
	require.NoError(t, err)
	assert.Equal(t, []byte("puppy"), val)
}
