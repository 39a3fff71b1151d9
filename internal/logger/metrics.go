package logger

import (
	"sync"
	"time"
)

// Metrics tracks operational metrics including counters, gauges, and timings.
// All operations are thread-safe.
//
// Timings are aggregated as they are recorded, so a long-running server keeps
// a fixed amount of state per metric name.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
	gauges   map[string]float64
	timings  map[string]*timing
}

type timing struct {
	count    int
	total    time.Duration
	min, max time.Duration
}

// TimingStats summarizes the durations recorded under one name
type TimingStats struct {
	Count   int    `json:"count"`
	Total   string `json:"total"`
	Average string `json:"average"`
	Min     string `json:"min"`
	Max     string `json:"max"`
}

// Snapshot is a point-in-time copy of all metrics
type Snapshot struct {
	Counters map[string]int64       `json:"counters"`
	Gauges   map[string]float64     `json:"gauges"`
	Timings  map[string]TimingStats `json:"timings"`
}

var defaultMetrics = NewMetrics()

// NewMetrics creates a new metrics tracker with empty counters, gauges, and timings.
func NewMetrics() *Metrics {
	return &Metrics{
		counters: make(map[string]int64),
		gauges:   make(map[string]float64),
		timings:  make(map[string]*timing),
	}
}

// IncrCounter increments a counter by 1, starting from 0.
func (m *Metrics) IncrCounter(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name]++
}

// SetGauge sets a gauge to the specified value, overwriting any previous value.
func (m *Metrics) SetGauge(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[name] = value
}

// RecordTiming adds a duration measurement to the named timing.
func (m *Metrics) RecordTiming(name string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.timings[name]
	if !ok {
		m.timings[name] = &timing{count: 1, total: d, min: d, max: d}
		return
	}
	t.count++
	t.total += d
	if d < t.min {
		t.min = d
	}
	if d > t.max {
		t.max = d
	}
}

// GetSnapshot returns a deep copy of all metrics, safe to use concurrently
// with metric updates.
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Counters: make(map[string]int64, len(m.counters)),
		Gauges:   make(map[string]float64, len(m.gauges)),
		Timings:  make(map[string]TimingStats, len(m.timings)),
	}
	for k, v := range m.counters {
		snap.Counters[k] = v
	}
	for k, v := range m.gauges {
		snap.Gauges[k] = v
	}
	for k, t := range m.timings {
		snap.Timings[k] = TimingStats{
			Count:   t.count,
			Total:   t.total.String(),
			Average: (t.total / time.Duration(t.count)).String(),
			Min:     t.min.String(),
			Max:     t.max.String(),
		}
	}
	return snap
}

// IncrCounter increments a counter on the default metrics tracker.
func IncrCounter(name string) {
	defaultMetrics.IncrCounter(name)
}

// SetGauge sets a gauge on the default metrics tracker.
func SetGauge(name string, value float64) {
	defaultMetrics.SetGauge(name, value)
}

// RecordTiming records a timing on the default metrics tracker.
func RecordTiming(name string, d time.Duration) {
	defaultMetrics.RecordTiming(name, d)
}

// GetMetricsSnapshot returns a snapshot of all metrics from the default tracker.
func GetMetricsSnapshot() Snapshot {
	return defaultMetrics.GetSnapshot()
}
