// Package monitoring keeps operational counters for the API.
package monitoring

import (
	"sync"
	"time"
)

// Monitor keeps an in-process snapshot of service activity for the system
// status endpoint.
type Monitor struct {
	mu        sync.RWMutex
	counters  map[string]int64
	last      map[string]interface{}
	startTime time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		counters:  make(map[string]int64),
		last:      make(map[string]interface{}),
		startTime: time.Now(),
	}
}

// Inc adds one to a named counter.
func (m *Monitor) Inc(name string) {
	m.Add(name, 1)
}

// Add adds delta to a named counter.
func (m *Monitor) Add(name string, delta int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] += delta
}

// Set records the latest value of a gauge-like metric.
func (m *Monitor) Set(name string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last[name] = value
}

// Counter returns a counter's value.
func (m *Monitor) Counter(name string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counters[name]
}

// Snapshot returns a copy of all counters and values plus uptime.
func (m *Monitor) Snapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]interface{}, len(m.counters)+len(m.last)+2)
	for k, v := range m.counters {
		out[k] = v
	}
	for k, v := range m.last {
		out[k] = v
	}
	out["uptime_seconds"] = time.Since(m.startTime).Seconds()
	out["started_at"] = m.startTime.UTC().Format(time.RFC3339)
	return out
}

// Reset clears all counters and values.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = make(map[string]int64)
	m.last = make(map[string]interface{})
}
