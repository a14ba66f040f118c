// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lux

// Constants of the ledger.
const (
	TxGas           uint64 = 21000 // base gas cost of a transfer.
	TxDataGas       uint64 = 68    // gas cost per byte of transaction payload.
	MaxTxGas        uint64 = 10 * 1000 * 1000
	InitialGasLimit uint64 = 10 * 1000 * 1000 // block gas limit in the genesis block.

	BlockInterval uint64 = 10 // time interval between two consecutive blocks.
)

// RewardsAccumulator is the account credited with transaction fees.
// Fees are not destroyed; the reward distribution schedule drains this
// account outside the state engine.
var RewardsAccumulator = BytesToAddress([]byte("rewards-accumulator"))
