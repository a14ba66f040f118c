// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/luxtensor/go-luxtensor/metrics"

var metricTxCounter = metrics.LazyLoadCounterVec("tx_executed_count", []string{"outcome"})
