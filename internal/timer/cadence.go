package timer

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/recipeflow/internal/logger"
)

// Cadence delivers numbered pulses, nominally one per second. Pulse numbers
// never repeat on purpose, but a receiver must tolerate a redelivered one.
type Cadence interface {
	// Start arms the cadence. fn is called from the cadence's own goroutine.
	Start(fn func(pulse uint64))
	// Stop disarms it without waiting. A pulse already in flight may still
	// arrive, so receivers that re-arm must tell generations apart.
	Stop()
}

// Option configures a Ticker.
type Option func(*Ticker)

// WithTickInterval sets the pulse period.
func WithTickInterval(d time.Duration) Option {
	return func(t *Ticker) {
		t.interval = d
	}
}

// Ticker is the wall-clock cadence.
type Ticker struct {
	log      *logger.Logger
	interval time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	pulse   uint64
}

// NewTicker creates a stopped wall-clock cadence.
func NewTicker(log *logger.Logger, opts ...Option) *Ticker {
	t := &Ticker{
		log:      log,
		interval: 1 * time.Second,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins the pulse loop. Non-blocking.
func (t *Ticker) Start(fn func(pulse uint64)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		t.log.Warn("ticker already running")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.running = true

	go t.loop(ctx, fn)

	t.log.Debug("ticker started (interval=%s)", t.interval)
}

// Stop halts the loop. Pulse numbering continues where it left off on the
// next Start.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}
	t.cancel()
	t.running = false
	t.log.Debug("ticker stopped")
}

func (t *Ticker) loop(ctx context.Context, fn func(uint64)) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			t.mu.Lock()
			t.pulse++
			n := t.pulse
			t.mu.Unlock()
			fn(n)
		}
	}
}
