// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type memStore map[string][]byte

var errNotFound = errors.New("not found")

func (m memStore) Get(key []byte) ([]byte, error) {
	if v, ok := m[string(key)]; ok {
		return v, nil
	}
	return nil, errNotFound
}
func (m memStore) Has(key []byte) (bool, error) {
	_, ok := m[string(key)]
	return ok, nil
}
func (m memStore) IsNotFound(err error) bool { return err == errNotFound }
func (m memStore) Put(key, val []byte) error {
	m[string(key)] = val
	return nil
}
func (m memStore) Delete(key []byte) error {
	delete(m, string(key))
	return nil
}

func TestBucket(t *testing.T) {
	store := memStore{}

	b1 := Bucket("b1").NewGetPutter(store)
	b2 := Bucket("b2").NewGetPutter(store)

	assert.NoError(t, b1.Put([]byte("key"), []byte("value1")))
	assert.NoError(t, b2.Put([]byte("key"), []byte("value2")))

	v1, err := b1.Get([]byte("key"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("value1"), v1)

	v2, err := b2.Get([]byte("key"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("value2"), v2)

	// raw keys are prefixed
	raw, err := store.Get([]byte("b1key"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("value1"), raw)

	assert.NoError(t, b1.Delete([]byte("key")))
	has, err := b1.Has([]byte("key"))
	assert.NoError(t, err)
	assert.False(t, has)

	// deleting from b1 leaves b2 untouched
	has, err = b2.Has([]byte("key"))
	assert.NoError(t, err)
	assert.True(t, has)

	_, err = b1.Get([]byte("key"))
	assert.True(t, b1.IsNotFound(err))
}
