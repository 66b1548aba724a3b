package events

import (
	"context"
	"fmt"
	"time"

	"github.com/hammamikhairi/recipeflow/internal/domain"
	"github.com/hammamikhairi/recipeflow/internal/logger"
)

// TimerSource exposes timer snapshots. *session.Session satisfies it.
type TimerSource interface {
	Timers() []domain.Timer
}

// WatcherOption configures the watcher.
type WatcherOption func(*Watcher)

// WithWatchInterval sets how often the watcher looks at the timers.
func WithWatchInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.interval = d
	}
}

// WithReminderEvery sets the elapsed-time spacing of "N minutes remaining"
// reminders. Zero disables them.
func WithReminderEvery(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.reminderSecs = int(d / time.Second)
	}
}

// Watcher nudges the user about timers that are still counting: a periodic
// reminder of the time left, and a single "almost done" warning when a timer
// enters its final stretch.
type Watcher struct {
	source       TimerSource
	notifier     domain.Notifier
	log          *logger.Logger
	interval     time.Duration
	reminderSecs int

	// Only touched by the Run goroutine.
	warned   map[string]bool
	reminded map[string]int
}

// NewWatcher creates a watcher with the given dependencies.
func NewWatcher(source TimerSource, notifier domain.Notifier, log *logger.Logger, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		source:       source,
		notifier:     notifier,
		log:          log,
		interval:     1 * time.Second,
		reminderSecs: 120,
		warned:       make(map[string]bool),
		reminded:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts the watcher loop. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("watcher started (interval=%s)", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("watcher stopped")
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

// check runs one watcher cycle.
func (w *Watcher) check(ctx context.Context) {
	timers := w.source.Timers()

	live := make(map[string]bool, len(timers))
	for _, t := range timers {
		live[t.ID] = true
		w.inspect(ctx, t)
	}

	// Forget removed timers.
	for id := range w.warned {
		if !live[id] {
			delete(w.warned, id)
		}
	}
	for id := range w.reminded {
		if !live[id] {
			delete(w.reminded, id)
		}
	}
}

func (w *Watcher) inspect(ctx context.Context, t domain.Timer) {
	// A reset puts the timer back above the threshold; arm the warning again.
	if t.RemainingSeconds > domain.WarningSeconds {
		delete(w.warned, t.ID)
	}
	if !t.Running || t.RemainingSeconds == 0 {
		return
	}

	if t.Status() == domain.TimerWarning {
		// Short timers are in the warning band from the start; skip them.
		if w.warned[t.ID] || t.TotalSeconds <= 2*domain.WarningSeconds {
			return
		}
		w.warned[t.ID] = true
		w.send(ctx, fmt.Sprintf("%s - almost done, %s left.", t.Name, spokenDuration(t.RemainingSeconds)))
		return
	}

	if w.reminderSecs <= 0 {
		return
	}
	elapsed := t.TotalSeconds - t.RemainingSeconds
	bucket := elapsed / w.reminderSecs
	if bucket > w.reminded[t.ID] {
		w.reminded[t.ID] = bucket
		w.send(ctx, fmt.Sprintf("%s - %s remaining.", t.Name, roundedMinutes(t.RemainingSeconds)))
	} else if bucket < w.reminded[t.ID] {
		w.reminded[t.ID] = bucket
	}
}

func (w *Watcher) send(ctx context.Context, msg string) {
	w.log.Debug("watcher: %s", msg)
	if err := w.notifier.Notify(ctx, msg); err != nil {
		w.log.Error("watcher: notify: %v", err)
	}
}

// roundedMinutes rounds to the nearest minute once a minute or more is left.
func roundedMinutes(seconds int) string {
	if seconds < 60 {
		return spokenDuration(seconds)
	}
	m := (seconds + 30) / 60
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}
