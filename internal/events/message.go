// Package events delivers timer events and timer reminders to the user.
package events

import (
	"fmt"

	"github.com/hammamikhairi/recipeflow/internal/domain"
)

// Notification titles.
const (
	TitleStarted   = "Timer Started!"
	TitleCompleted = "Timer Complete!"
)

// Message returns the notification title and body for an event.
func Message(ev domain.Event) (title, body string) {
	switch ev.Kind {
	case domain.EventTimerStarted:
		return TitleStarted, fmt.Sprintf("%s - %s", ev.Name, spokenDuration(ev.TotalSeconds))
	case domain.EventTimerCompleted:
		return TitleCompleted, fmt.Sprintf("%s is ready!", ev.Name)
	default:
		return "Timer", ev.Name
	}
}

// Line joins title and body into a single notification line.
func Line(ev domain.Event) string {
	title, body := Message(ev)
	return title + " " + body
}

// spokenDuration renders whole minutes as "5 minutes" and anything else
// in seconds.
func spokenDuration(seconds int) string {
	switch {
	case seconds == 60:
		return "1 minute"
	case seconds > 0 && seconds%60 == 0:
		return fmt.Sprintf("%d minutes", seconds/60)
	case seconds == 1:
		return "1 second"
	default:
		return fmt.Sprintf("%d seconds", seconds)
	}
}
