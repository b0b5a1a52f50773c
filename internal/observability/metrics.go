package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps in-process counters per route: request totals by status and
// error totals by taxonomy code. Enough to eyeball traffic on the order and
// menu endpoints without an external metrics backend.
type Metrics struct {
	mu       sync.RWMutex
	requests map[string]int64
	errors   map[string]int64
	latency  map[string]time.Duration
}

// NewMetrics initializes counter storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]int64),
		errors:   make(map[string]int64),
		latency:  make(map[string]time.Duration),
	}
}

// RecordRequest counts one served request and accumulates its latency.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[routeKey(path, method)+" "+strconv.Itoa(status)]++
	m.latency[routeKey(path, method)] += duration
}

// RecordError counts one failed request under its taxonomy code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[routeKey(path, method)+" "+code]++
}

// RequestCount returns the running total for a route and status.
func (m *Metrics) RequestCount(path, method string, status int) int64 {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requests[routeKey(path, method)+" "+strconv.Itoa(status)]
}

// ErrorCount returns the running total for a route and taxonomy code.
func (m *Metrics) ErrorCount(path, method, code string) int64 {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.errors[routeKey(path, method)+" "+code]
}

// TotalLatency returns the accumulated handler time for a route.
func (m *Metrics) TotalLatency(path, method string) time.Duration {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latency[routeKey(path, method)]
}

func routeKey(path, method string) string {
	return method + " " + path
}
