// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the world state of accounts.
//
// A State is a journalled view over the account trie at a fixed root.
// Mutations accumulate in memory and are materialized by Stage, which
// computes the would-be root without writing, or commits all changes in
// one batch. Committer serializes whole batches of account deltas onto a
// single root lineage.
package state
