// Copyright (c) 2025 The LuxTensor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics provides a lightweight observability facade.
// Meters are no-ops until a real backend is initialized, so library
// code can record measurements unconditionally.
package metrics

import (
	"net/http"
	"sync"
)

// metrics is the singleton implementation, a no-op until
// InitializePrometheusMetrics is called.
var metrics Metrics = &noopMetrics{}

// Metrics defines the interface to collect runtime measurements.
type Metrics interface {
	GetOrCreateCountMeter(name string) CountMeter
	GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter
	GetOrCreateGaugeMeter(name string) GaugeMeter
	GetOrCreateGaugeVecMeter(name string, labels []string) GaugeVecMeter
	GetOrCreateHistogramMeter(name string, buckets []int64) HistogramMeter
	GetOrCreateHandler() http.Handler
}

// HistogramMeter represents the type of metric that is calculated by aggregating
// as a histogram of all reported measurements over a time interval.
type HistogramMeter interface {
	Observe(i int64)
}

func Histogram(name string, buckets []int64) HistogramMeter {
	return metrics.GetOrCreateHistogramMeter(name, buckets)
}

// CountMeter is a cumulative metric that represents a single monotonically
// increasing counter whose value can only increase or be reset to zero on restart.
type CountMeter interface {
	Add(i int64)
}

func Counter(name string) CountMeter { return metrics.GetOrCreateCountMeter(name) }

// CountVecMeter is a CountMeter with a label dimension.
type CountVecMeter interface {
	AddWithLabel(i int64, labels map[string]string)
}

func CounterVec(name string, labels []string) CountVecMeter {
	return metrics.GetOrCreateCountVecMeter(name, labels)
}

// GaugeMeter is a metric that represents a single numerical value that can
// arbitrarily go up and down.
type GaugeMeter interface {
	Add(i int64)
	Set(i int64)
}

func Gauge(name string) GaugeMeter { return metrics.GetOrCreateGaugeMeter(name) }

// GaugeVecMeter is a GaugeMeter with a label dimension.
type GaugeVecMeter interface {
	AddWithLabel(i int64, labels map[string]string)
	SetWithLabel(i int64, labels map[string]string)
}

func GaugeVec(name string, labels []string) GaugeVecMeter {
	return metrics.GetOrCreateGaugeVecMeter(name, labels)
}

// HTTPHandler returns the handler serving the metrics endpoint of the
// configured backend.
func HTTPHandler() http.Handler { return metrics.GetOrCreateHandler() }

// LazyLoad defers the meter creation until its first use, so package-level
// meter variables pick up the backend chosen at startup.
func LazyLoad[T any](f func() T) func() T {
	var result T
	var once sync.Once
	return func() T {
		once.Do(func() {
			result = f()
		})
		return result
	}
}

func LazyLoadCounter(name string) func() CountMeter {
	return LazyLoad(func() CountMeter { return Counter(name) })
}

func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	return LazyLoad(func() CountVecMeter { return CounterVec(name, labels) })
}

func LazyLoadGauge(name string) func() GaugeMeter {
	return LazyLoad(func() GaugeMeter { return Gauge(name) })
}

func LazyLoadGaugeVec(name string, labels []string) func() GaugeVecMeter {
	return LazyLoad(func() GaugeVecMeter { return GaugeVec(name, labels) })
}

func LazyLoadHistogram(name string, buckets []int64) func() HistogramMeter {
	return LazyLoad(func() HistogramMeter { return Histogram(name, buckets) })
}
