// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/luxtensor/go-luxtensor/lux"
	"github.com/luxtensor/go-luxtensor/mdt"
	"github.com/luxtensor/go-luxtensor/trie"
)

// Account is the LuxTensor consensus representation of an account.
// RLP encoded objects are stored in the main account trie.
type Account struct {
	Nonce       uint64
	Balance     mdt.Amount
	StorageRoot []byte // merkle root of the storage trie
	CodeHash    []byte // hash of code
}

// IsEmpty returns if an account is empty.
// An empty account has zero nonce, zero balance and zero length code hash.
func (a *Account) IsEmpty() bool {
	return a.Nonce == 0 &&
		a.Balance.IsZero() &&
		len(a.CodeHash) == 0
}

func emptyAccount() *Account {
	return &Account{}
}

// accountKey hashes the raw address into the fixed-width trie key.
// Hashing keeps trie depth uniform and defeats adversarial address
// selection that would otherwise unbalance the tree.
func accountKey(addr lux.Address) []byte {
	h := lux.Blake2b(addr[:])
	return h[:]
}

// loadAccount load an account object by address in trie.
// It returns an empty account if no account found at the address.
func loadAccount(tr *trie.Trie, addr lux.Address) (*Account, error) {
	data, err := tr.Get(accountKey(addr))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return emptyAccount(), nil
	}
	var a Account
	if err := rlp.DecodeBytes(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// saveAccount save account into trie at given address.
// If the given account is empty, the value for given address is deleted.
func saveAccount(tr *trie.Trie, addr lux.Address, a *Account) error {
	if a.IsEmpty() {
		// delete empty account
		return tr.Delete(accountKey(addr))
	}
	data, err := rlp.EncodeToBytes(a)
	if err != nil {
		return err
	}
	return tr.Update(accountKey(addr), data)
}

// loadStorage load storage value for given key.
func loadStorage(tr *trie.Trie, key lux.Bytes32) (rlp.RawValue, error) {
	return tr.Get(key[:])
}

// saveStorage save value for given key.
// If the value is empty, the given key is deleted.
func saveStorage(tr *trie.Trie, key lux.Bytes32, value rlp.RawValue) error {
	if len(value) == 0 {
		// delete storage when value is empty
		return tr.Delete(key[:])
	}
	return tr.Update(key[:], value)
}
