package domain

// EventKind enumerates outward timer events.
type EventKind int

const (
	EventTimerStarted EventKind = iota
	EventTimerCompleted
)

// String returns the wire name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventTimerStarted:
		return "timer_started"
	case EventTimerCompleted:
		return "timer_completed"
	default:
		return "unknown"
	}
}

// Event is a fire-and-forget notification about a timer transition.
// TotalSeconds is set for EventTimerStarted only.
type Event struct {
	Kind         EventKind
	TimerID      string
	Name         string
	TotalSeconds int
}
