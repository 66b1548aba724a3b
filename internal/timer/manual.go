package timer

import "sync"

// Manual is a cadence driven by hand. Pulses are delivered synchronously on
// the caller's goroutine, which makes timer behaviour deterministic in tests.
type Manual struct {
	mu    sync.Mutex
	fn    func(uint64)
	pulse uint64
	arms  int
}

// NewManual creates a stopped manual cadence.
func NewManual() *Manual { return &Manual{} }

// Start arms the cadence.
func (m *Manual) Start(fn func(pulse uint64)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fn == nil {
		m.arms++
	}
	m.fn = fn
}

// Stop disarms the cadence.
func (m *Manual) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fn = nil
}

// Fire delivers n consecutive pulses. It stops early if the receiver
// disarms the cadence.
func (m *Manual) Fire(n int) {
	for i := 0; i < n; i++ {
		m.mu.Lock()
		fn := m.fn
		if fn == nil {
			m.mu.Unlock()
			return
		}
		m.pulse++
		p := m.pulse
		m.mu.Unlock()
		fn(p)
	}
}

// Redeliver repeats the most recent pulse number.
func (m *Manual) Redeliver() {
	m.mu.Lock()
	fn, p := m.fn, m.pulse
	m.mu.Unlock()
	if fn != nil && p > 0 {
		fn(p)
	}
}

// Armed reports whether the cadence is currently started.
func (m *Manual) Armed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fn != nil
}

// Arms returns how many times the cadence went from stopped to started.
func (m *Manual) Arms() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.arms
}
