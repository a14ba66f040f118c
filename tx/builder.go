// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/luxtensor/go-luxtensor/lux"
	"github.com/luxtensor/go-luxtensor/mdt"
)

// Builder to make it easy to build transaction.
type Builder struct {
	body body
}

// Sender set the originating address.
func (b *Builder) Sender(addr lux.Address) *Builder {
	b.body.Sender = addr
	return b
}

// Recipient set the destination address.
func (b *Builder) Recipient(addr lux.Address) *Builder {
	b.body.Recipient = addr
	return b
}

// Amount set the transferred amount.
func (b *Builder) Amount(amount mdt.Amount) *Builder {
	b.body.Amount = amount
	return b
}

// Fee set the declared fee.
func (b *Builder) Fee(fee mdt.Amount) *Builder {
	b.body.Fee = fee
	return b
}

// Nonce set nonce.
func (b *Builder) Nonce(nonce uint64) *Builder {
	b.body.Nonce = nonce
	return b
}

// Gas set gas provision for tx.
func (b *Builder) Gas(gas uint64) *Builder {
	b.body.Gas = gas
	return b
}

// Data set the call payload.
func (b *Builder) Data(data []byte) *Builder {
	b.body.Data = append([]byte(nil), data...)
	return b
}

// Build build tx object.
func (b *Builder) Build() *Transaction {
	tx := Transaction{body: b.body}
	return &tx
}
