// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime counter registry for system-level monitoring.
// Counters register themselves on first increment.

package control

import (
	"sync"
	"time"
)

// MetricsRegistry holds named monotonic counters.
type MetricsRegistry struct {
	mu       sync.RWMutex
	counters map[string]int64
	updated  time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		counters: make(map[string]int64),
	}
}

// Inc adds delta to the named counter.
func (mr *MetricsRegistry) Inc(key string, delta int64) {
	mr.mu.Lock()
	mr.counters[key] += delta
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Get returns the current value of one counter.
func (mr *MetricsRegistry) Get(key string) int64 {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.counters[key]
}

// Snapshot returns a copy of all counters.
func (mr *MetricsRegistry) Snapshot() map[string]int64 {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]int64, len(mr.counters))
	for k, v := range mr.counters {
		out[k] = v
	}
	return out
}

// LastUpdated returns the time of the most recent increment.
func (mr *MetricsRegistry) LastUpdated() time.Time {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.updated
}
