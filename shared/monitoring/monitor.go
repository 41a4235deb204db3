package monitoring

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Monitor tracks the outcome of analysis requests for the health endpoint.
// Requests are handled concurrently, so all state is mutex-guarded.
type Monitor struct {
	mu          sync.Mutex
	requests    int64
	failures    int64
	lastSuccess bool
	lastRequest time.Time
}

func NewMonitor() *Monitor {
	return &Monitor{lastSuccess: true}
}

func (m *Monitor) RecordSuccess(route string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests++
	m.lastSuccess = true
	m.lastRequest = time.Now()

	log.Printf("%s completed successfully (took %v)", route, duration)
}

func (m *Monitor) RecordFailure(route string, err error, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests++
	m.failures++
	m.lastSuccess = false
	m.lastRequest = time.Now()

	log.Printf("%s failed: %v (took %v)", route, err, duration)
}

// IsHealthy reports whether the most recent upstream-facing request
// succeeded. A process that has served nothing yet is considered healthy.
func (m *Monitor) IsHealthy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lastRequest.IsZero() {
		return true
	}
	return m.lastSuccess
}

func (m *Monitor) StatusSummary() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lastRequest.IsZero() {
		return "No requests yet"
	}

	return fmt.Sprintf("%d requests, %d failures, last request %s",
		m.requests, m.failures, m.lastRequest.Format("Jan 2 15:04:05"))
}
