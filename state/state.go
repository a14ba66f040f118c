// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/luxtensor/go-luxtensor/kv"
	"github.com/luxtensor/go-luxtensor/lux"
	"github.com/luxtensor/go-luxtensor/mdt"
	"github.com/luxtensor/go-luxtensor/stackedmap"
	"github.com/luxtensor/go-luxtensor/trie"
)

// codeBucket is the side store for contract code, keyed by keccak hash.
var codeBucket = kv.Bucket("state.code")

// Database is the kv store backing the account trie, storage tries and
// the code store.
type Database interface {
	kv.GetPutter
	NewBatch() kv.Batch
}

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the cause, so that errors.Is can see through state access
// failures to the underlying trie or store error.
func (e *Error) Unwrap() error {
	return e.cause
}

// State manages the world state.
// It is a journalled view over the account trie at a fixed root: reads are
// cached, writes accumulate in memory until staged.
type State struct {
	db    Database
	trie  *trie.Trie                    // the account trie
	cache map[lux.Address]*cachedObject // cache of account objects
	sm    *stackedmap.StackedMap        // keeps revisions of account state
}

// New create state object at the given root.
func New(root lux.Bytes32, db Database) (*State, error) {
	tr, err := trie.New(root, db)
	if err != nil {
		return nil, &Error{err}
	}

	state := State{
		db:    db,
		trie:  tr,
		cache: make(map[lux.Address]*cachedObject),
	}
	state.sm = stackedmap.New(func(key any) (any, bool, error) {
		return state.cacheGetter(key)
	})
	// base journal level, so that writes are legal before any checkpoint
	state.sm.Push()
	return &state, nil
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(key any) (value any, exist bool, err error) {
	switch k := key.(type) {
	case lux.Address: // get account
		obj, err := s.getCachedObject(k)
		if err != nil {
			return nil, false, err
		}
		return &obj.data, true, nil
	case codeKey: // get code
		obj, err := s.getCachedObject(lux.Address(k))
		if err != nil {
			return nil, false, err
		}
		code, err := obj.GetCode()
		if err != nil {
			return nil, false, err
		}
		return code, true, nil
	case storageKey: // get storage
		// the address was ever deleted in the life-cycle of this state
		// instance. treat its storage as an empty set.
		if k.barrier != 0 {
			return rlp.RawValue(nil), true, nil
		}

		obj, err := s.getCachedObject(k.addr)
		if err != nil {
			return nil, false, err
		}
		v, err := obj.GetStorage(k.key)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	case storageBarrierKey: // get barrier, 0 as initial value
		return 0, true, nil
	}
	panic(fmt.Errorf("unexpected key type %+v", key))
}

func (s *State) getCachedObject(addr lux.Address) (*cachedObject, error) {
	if co, ok := s.cache[addr]; ok {
		return co, nil
	}
	a, err := loadAccount(s.trie, addr)
	if err != nil {
		return nil, err
	}
	co := newCachedObject(s.db, addr, a)
	s.cache[addr] = co
	return co, nil
}

// getAccount gets account by address. the returned account should not be modified.
func (s *State) getAccount(addr lux.Address) (*Account, error) {
	v, _, err := s.sm.Get(addr)
	if err != nil {
		return nil, err
	}
	return v.(*Account), nil
}

// getAccountCopy get a copy of account by address.
func (s *State) getAccountCopy(addr lux.Address) (Account, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return Account{}, err
	}
	return *acc, nil
}

func (s *State) updateAccount(addr lux.Address, acc *Account) {
	s.sm.Put(addr, acc)
}

func (s *State) getStorageBarrier(addr lux.Address) int {
	b, _, _ := s.sm.Get(storageBarrierKey(addr))
	return b.(int)
}

func (s *State) setStorageBarrier(addr lux.Address, barrier int) {
	s.sm.Put(storageBarrierKey(addr), barrier)
}

// GetBalance returns balance for the given address.
func (s *State) GetBalance(addr lux.Address) (mdt.Amount, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return mdt.Amount{}, &Error{err}
	}
	return acc.Balance, nil
}

// SetBalance set balance for the given address.
func (s *State) SetBalance(addr lux.Address, balance mdt.Amount) error {
	cpy, err := s.getAccountCopy(addr)
	if err != nil {
		return &Error{err}
	}
	cpy.Balance = balance
	s.updateAccount(addr, &cpy)
	return nil
}

// AddBalance credits the given address. The addition is checked: an
// mdt.ErrOverflow is returned and nothing changes if the result would
// leave the 128-bit range.
func (s *State) AddBalance(addr lux.Address, v mdt.Amount) error {
	cpy, err := s.getAccountCopy(addr)
	if err != nil {
		return &Error{err}
	}
	balance, err := cpy.Balance.Add(v)
	if err != nil {
		return err
	}
	cpy.Balance = balance
	s.updateAccount(addr, &cpy)
	return nil
}

// SubBalance debits the given address. The subtraction is checked: an
// mdt.ErrUnderflow is returned and nothing changes if the balance is
// insufficient. Ledger values never go negative.
func (s *State) SubBalance(addr lux.Address, v mdt.Amount) error {
	cpy, err := s.getAccountCopy(addr)
	if err != nil {
		return &Error{err}
	}
	balance, err := cpy.Balance.Sub(v)
	if err != nil {
		return err
	}
	cpy.Balance = balance
	s.updateAccount(addr, &cpy)
	return nil
}

// GetNonce returns the nonce of the account at the given address.
func (s *State) GetNonce(addr lux.Address) (uint64, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return 0, &Error{err}
	}
	return acc.Nonce, nil
}

// SetNonce set the nonce for the given address.
func (s *State) SetNonce(addr lux.Address, nonce uint64) error {
	cpy, err := s.getAccountCopy(addr)
	if err != nil {
		return &Error{err}
	}
	cpy.Nonce = nonce
	s.updateAccount(addr, &cpy)
	return nil
}

// IncrementNonce increases the nonce of the given address by exactly 1.
func (s *State) IncrementNonce(addr lux.Address) error {
	cpy, err := s.getAccountCopy(addr)
	if err != nil {
		return &Error{err}
	}
	cpy.Nonce++
	s.updateAccount(addr, &cpy)
	return nil
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr lux.Address, key lux.Bytes32) (lux.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return lux.Bytes32{}, &Error{err}
	}
	if len(raw) == 0 {
		return lux.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return lux.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return lux.Blake2b(raw), nil
	}
	return lux.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr lux.Address, key, value lux.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr lux.Address, key lux.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, s.getStorageBarrier(addr), key})
	if err != nil {
		return nil, &Error{err}
	}
	return data.(rlp.RawValue), nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr lux.Address, key lux.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, s.getStorageBarrier(addr), key}, raw)
}

// GetCode returns code for the given address.
func (s *State) GetCode(addr lux.Address) ([]byte, error) {
	v, _, err := s.sm.Get(codeKey(addr))
	if err != nil {
		return nil, &Error{err}
	}
	return v.([]byte), nil
}

// GetCodeHash returns code hash for the given address.
func (s *State) GetCodeHash(addr lux.Address) (lux.Bytes32, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return lux.Bytes32{}, &Error{err}
	}
	return lux.BytesToBytes32(acc.CodeHash), nil
}

// GetStorageRoot returns the storage trie root for the given address. The
// zero Bytes32 is the sentinel for non-contract accounts.
func (s *State) GetStorageRoot(addr lux.Address) (lux.Bytes32, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return lux.Bytes32{}, &Error{err}
	}
	return lux.BytesToBytes32(acc.StorageRoot), nil
}

// SetCode set code for the given address.
func (s *State) SetCode(addr lux.Address, code []byte) error {
	var codeHash []byte
	if len(code) > 0 {
		s.sm.Put(codeKey(addr), code)
		hash := lux.Keccak256(code)
		codeHash = hash[:]
		codeCache.Add(string(codeHash), code)
	} else {
		s.sm.Put(codeKey(addr), []byte(nil))
	}
	cpy, err := s.getAccountCopy(addr)
	if err != nil {
		return &Error{err}
	}
	cpy.CodeHash = codeHash
	s.updateAccount(addr, &cpy)
	return nil
}

// Exists returns whether an account exists at the given address.
// See Account.IsEmpty()
func (s *State) Exists(addr lux.Address) (bool, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return false, &Error{err}
	}
	return !acc.IsEmpty(), nil
}

// Delete delete an account at the given address.
// That's set nonce, balance and code to zero value.
func (s *State) Delete(addr lux.Address) {
	s.sm.Put(codeKey(addr), []byte(nil))
	s.updateAccount(addr, emptyAccount())
	// increase the barrier value
	s.setStorageBarrier(addr, s.getStorageBarrier(addr)+1)
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
// The base journal level is never popped.
func (s *State) RevertTo(revision int) {
	if revision < 1 {
		revision = 1
	}
	s.sm.PopTo(revision)
}

// Prove builds the inclusion proof of the account at the given address,
// against the root this state was created at. The ordered node encodings
// are written into proofDb keyed by their content hash; a verifier holding
// only the root can confirm the account content via trie.VerifyProof.
//
// Uncommitted changes are not provable: proving an account with journalled
// writes would bind the proof to a root no verifier can check against.
func (s *State) Prove(addr lux.Address, proofDb trie.DatabaseWriter) error {
	if s.dirty(addr) {
		return errors.Errorf("prove: account %v has uncommitted changes", addr)
	}
	if err := s.trie.Prove(accountKey(addr), 0, proofDb); err != nil {
		return &Error{err}
	}
	return nil
}

// dirty reports whether the journal holds any write touching addr.
func (s *State) dirty(addr lux.Address) bool {
	found := false
	s.sm.Journal(func(key, _ any) bool {
		switch k := key.(type) {
		case lux.Address:
			found = k == addr
		case codeKey:
			found = lux.Address(k) == addr
		case storageKey:
			found = k.addr == addr
		case storageBarrierKey:
			found = lux.Address(k) == addr
		}
		return !found
	})
	return found
}

// Stage makes a stage object to compute hash of trie or commit all changes.
func (s *State) Stage() (*Stage, error) {
	type changed struct {
		data    Account
		storage map[lux.Bytes32]rlp.RawValue
	}

	var (
		changes = make(map[lux.Address]*changed)
		codes   = make(map[lux.Bytes32][]byte)
	)

	// get or create changed account
	getChanged := func(addr lux.Address) (*changed, error) {
		if obj, ok := changes[addr]; ok {
			return obj, nil
		}
		co, err := s.getCachedObject(addr)
		if err != nil {
			return nil, &Error{err}
		}
		c := &changed{data: co.data}
		changes[addr] = c
		return c, nil
	}

	var jerr error
	// traverse journal to build changes
	s.sm.Journal(func(k, v any) bool {
		var c *changed
		switch key := k.(type) {
		case lux.Address:
			if c, jerr = getChanged(key); jerr != nil {
				return false
			}
			c.data = *(v.(*Account))
		case codeKey:
			code := v.([]byte)
			if len(code) > 0 {
				codes[lux.Keccak256(code)] = code
			}
		case storageKey:
			if c, jerr = getChanged(key.addr); jerr != nil {
				return false
			}
			if c.storage == nil {
				c.storage = make(map[lux.Bytes32]rlp.RawValue)
			}
			c.storage[key.key] = v.(rlp.RawValue)
		case storageBarrierKey:
			if c, jerr = getChanged(lux.Address(key)); jerr != nil {
				return false
			}
			// discard storage updates and the base storage trie when
			// meeting the barrier.
			c.storage = nil
			c.data.StorageRoot = nil
		}
		return true
	})
	if jerr != nil {
		return nil, &Error{jerr}
	}

	// the account trie of the stage shares committed nodes with the
	// state's own trie; the prior root stays valid and readable.
	accountTrie := s.trie.Copy()

	stage := &Stage{
		db:          s.db,
		accountTrie: accountTrie,
	}

	for addr, c := range changes {
		// skip storage changes if account is empty
		if !c.data.IsEmpty() && len(c.storage) > 0 {
			strie, err := trie.New(lux.BytesToBytes32(c.data.StorageRoot), s.db)
			if err != nil {
				return nil, &Error{err}
			}
			for k, v := range c.storage {
				if err := saveStorage(strie, k, v); err != nil {
					return nil, &Error{err}
				}
			}
			sRoot := strie.Hash()
			if sRoot == trie.EmptyRoot() {
				// cleared storage returns to the non-contract sentinel
				c.data.StorageRoot = nil
			} else {
				c.data.StorageRoot = sRoot[:]
			}
			stage.storageTries = append(stage.storageTries, strie)
		}
		if err := saveAccount(accountTrie, addr, &c.data); err != nil {
			return nil, &Error{err}
		}
	}

	for hash, code := range codes {
		stage.codes = append(stage.codes, codeWithHash{code: code, hash: hash[:]})
	}
	return stage, nil
}

type (
	storageKey struct {
		addr    lux.Address
		barrier int
		key     lux.Bytes32
	}
	codeKey           lux.Address
	storageBarrierKey lux.Address
)
