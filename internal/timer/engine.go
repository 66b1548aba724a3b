// Package timer implements the countdown timer engine and the cadence
// sources that drive it.
package timer

import (
	"github.com/google/uuid"

	"github.com/hammamikhairi/recipeflow/internal/domain"
	"github.com/hammamikhairi/recipeflow/internal/logger"
)

type entry struct {
	domain.Timer
	lastPulse uint64
}

// Engine owns the ordered set of timers. It is not safe for concurrent use;
// the session serializes access.
type Engine struct {
	timers []*entry
	sink   domain.EventSink
	log    *logger.Logger
}

// NewEngine creates an empty engine. A nil sink drops events.
func NewEngine(sink domain.EventSink, log *logger.Logger) *Engine {
	return &Engine{sink: sink, log: log}
}

// Create adds a running timer and returns its id.
func (e *Engine) Create(name string, stepIndex, totalSeconds int, linkedIngredient string) (string, error) {
	if totalSeconds <= 0 {
		return "", domain.ErrInvalidDuration
	}

	t := &entry{Timer: domain.Timer{
		ID:               "timer-" + uuid.NewString(),
		Name:             name,
		TotalSeconds:     totalSeconds,
		RemainingSeconds: totalSeconds,
		Running:          true,
		StepIndex:        stepIndex,
		LinkedIngredient: linkedIngredient,
	}}
	e.timers = append(e.timers, t)

	e.log.Debug("created timer %s (%q, %ds, step %d)", t.ID, name, totalSeconds, stepIndex)
	e.emit(domain.Event{
		Kind:         domain.EventTimerStarted,
		TimerID:      t.ID,
		Name:         name,
		TotalSeconds: totalSeconds,
	})
	return t.ID, nil
}

// Tick decrements one running timer by a second.
func (e *Engine) Tick(id string) {
	if t := e.find(id); t != nil {
		e.tick(t)
	}
}

func (e *Engine) tick(t *entry) {
	if !t.Running || t.RemainingSeconds <= 0 {
		return
	}
	t.RemainingSeconds--
	if t.RemainingSeconds > 0 {
		return
	}
	t.RemainingSeconds = 0
	e.log.Info("timer %s (%q) completed", t.ID, t.Name)
	e.emit(domain.Event{Kind: domain.EventTimerCompleted, TimerID: t.ID, Name: t.Name})
}

// Advance applies one cadence pulse. Each timer is ticked at most once per
// pulse number; repeated or stale pulses are ignored.
func (e *Engine) Advance(pulse uint64) {
	for _, t := range e.timers {
		if pulse <= t.lastPulse {
			continue
		}
		t.lastPulse = pulse
		e.tick(t)
	}
}

// SetRunning pauses or resumes a timer. Exhausted timers stay as they are.
func (e *Engine) SetRunning(id string, running bool) {
	t := e.find(id)
	if t == nil || t.RemainingSeconds == 0 {
		return
	}
	t.Running = running
}

// Reset restores the full duration and pauses the timer.
func (e *Engine) Reset(id string) {
	t := e.find(id)
	if t == nil {
		return
	}
	t.RemainingSeconds = t.TotalSeconds
	t.Running = false
}

// Remove deletes a timer. Unknown ids are ignored.
func (e *Engine) Remove(id string) {
	for i, t := range e.timers {
		if t.ID == id {
			e.timers = append(e.timers[:i], e.timers[i+1:]...)
			e.log.Debug("removed timer %s", id)
			return
		}
	}
}

// Clear removes every timer.
func (e *Engine) Clear() {
	e.timers = nil
}

// HasRunningForStep reports whether a timer for the step still has time left.
func (e *Engine) HasRunningForStep(stepIndex int) bool {
	for _, t := range e.timers {
		if t.StepIndex == stepIndex && t.RemainingSeconds > 0 {
			return true
		}
	}
	return false
}

// Get returns a snapshot of one timer.
func (e *Engine) Get(id string) (domain.Timer, bool) {
	if t := e.find(id); t != nil {
		return t.Timer, true
	}
	return domain.Timer{}, false
}

// Timers returns snapshots in creation order.
func (e *Engine) Timers() []domain.Timer {
	out := make([]domain.Timer, len(e.timers))
	for i, t := range e.timers {
		out[i] = t.Timer
	}
	return out
}

// Len returns the number of timers.
func (e *Engine) Len() int { return len(e.timers) }

func (e *Engine) find(id string) *entry {
	for _, t := range e.timers {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (e *Engine) emit(ev domain.Event) {
	if e.sink != nil {
		e.sink.Emit(ev)
	}
}
