// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package tx defines the transfer transaction type.
package tx

import (
	"fmt"
	"io"
	"math"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/luxtensor/go-luxtensor/lux"
	"github.com/luxtensor/go-luxtensor/mdt"
)

var errIntrinsicGasOverflow = errors.New("intrinsic gas overflow")

// Transaction is an immutable transfer. Use Builder to construct one.
type Transaction struct {
	body body

	cache struct {
		id *lux.Bytes32
	}
}

// body describes details of a tx.
type body struct {
	Sender    lux.Address
	Recipient lux.Address
	Amount    mdt.Amount
	Fee       mdt.Amount
	Nonce     uint64
	Gas       uint64
	Data      []byte
}

// ID returns the blake2b hash of the RLP encoded tx, which identifies it.
func (t *Transaction) ID() lux.Bytes32 {
	if cached := t.cache.id; cached != nil {
		return *cached
	}

	id := lux.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, &t.body)
	})
	t.cache.id = &id
	return id
}

// Sender returns the originating address.
func (t *Transaction) Sender() lux.Address {
	return t.body.Sender
}

// Recipient returns the destination address.
func (t *Transaction) Recipient() lux.Address {
	return t.body.Recipient
}

// Amount returns the transferred amount in LTS.
func (t *Transaction) Amount() mdt.Amount {
	return t.body.Amount
}

// Fee returns the declared fee in LTS.
func (t *Transaction) Fee() mdt.Amount {
	return t.body.Fee
}

// Nonce returns the declared sender nonce.
func (t *Transaction) Nonce() uint64 {
	return t.body.Nonce
}

// Gas returns the gas budget declared for this tx.
func (t *Transaction) Gas() uint64 {
	return t.body.Gas
}

// Data returns a copy of the call payload.
func (t *Transaction) Data() []byte {
	return append([]byte(nil), t.body.Data...)
}

// IntrinsicGas returns the gas this tx consumes before any execution,
// from its size alone.
func (t *Transaction) IntrinsicGas() (uint64, error) {
	dataLen := uint64(len(t.body.Data))
	if dataLen > (math.MaxUint64-lux.TxGas)/lux.TxDataGas {
		return 0, errIntrinsicGasOverflow
	}
	return lux.TxGas + dataLen*lux.TxDataGas, nil
}

// EncodeRLP implements rlp.Encoder.
func (t *Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &t.body)
}

// DecodeRLP implements rlp.Decoder.
func (t *Transaction) DecodeRLP(s *rlp.Stream) error {
	var b body
	if err := s.Decode(&b); err != nil {
		return err
	}
	*t = Transaction{body: b}
	return nil
}

func (t *Transaction) String() string {
	return fmt.Sprintf(`(Tx %v) %v -> %v: %v LTS, fee %v LTS, nonce %v, gas %v`,
		t.ID(), t.body.Sender, t.body.Recipient, t.body.Amount, t.body.Fee, t.body.Nonce, t.body.Gas)
}
