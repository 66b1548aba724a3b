package domain

import "fmt"

// WarningSeconds is the remaining-time threshold at or below which a running
// timer is classified as a warning.
const WarningSeconds = 30

// Timer is a read-only snapshot of an active countdown timer.
type Timer struct {
	ID               string
	Name             string
	TotalSeconds     int
	RemainingSeconds int
	Running          bool
	StepIndex        int
	LinkedIngredient string // "" when the step has no linked ingredients
}

// Status classifies the timer from its remaining time.
func (t Timer) Status() TimerStatus {
	return ClassifyTimer(t.RemainingSeconds, t.TotalSeconds)
}

// Progress returns the elapsed fraction in [0, 1].
func (t Timer) Progress() float64 {
	if t.TotalSeconds <= 0 {
		return 0
	}
	return float64(t.TotalSeconds-t.RemainingSeconds) / float64(t.TotalSeconds)
}

// TimerStatus is the derived display state of a timer.
type TimerStatus int

const (
	TimerActive TimerStatus = iota
	TimerWarning
	TimerComplete
)

// String returns a human-readable timer status.
func (s TimerStatus) String() string {
	switch s {
	case TimerActive:
		return "active"
	case TimerWarning:
		return "warning"
	case TimerComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// ClassifyTimer derives the status from remaining vs total seconds. It has no
// effect on engine behaviour.
func ClassifyTimer(remaining, total int) TimerStatus {
	switch {
	case remaining <= 0:
		return TimerComplete
	case remaining <= WarningSeconds:
		return TimerWarning
	default:
		return TimerActive
	}
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
