// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/luxtensor/go-luxtensor/metrics"

var (
	metricBatchCounter = metrics.LazyLoadCounterVec("state_batch_count", []string{"outcome"})
	metricDeltaCounter = metrics.LazyLoadCounterVec("state_delta_count", []string{"op"})
)
