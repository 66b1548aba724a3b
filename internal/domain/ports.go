package domain

import "context"

// Catalog provides the read-only recipe collection. Implementations can be
// embedded, file-based, or API-backed. Recipes must come back in catalog
// order; filtering relies on it.
type Catalog interface {
	Recipes(ctx context.Context) ([]Recipe, error)
	Cuisines(ctx context.Context) ([]CuisineGroup, error)
}

// EventSink receives timer events. Emit is called while the session holds
// its lock, so implementations must not block or call back into the session.
type EventSink interface {
	Emit(ev Event)
}

// IntentParser converts raw user input into structured intents.
type IntentParser interface {
	Parse(ctx context.Context, input string) (*Intent, error)
}

// Notifier delivers messages to the user. Implementations can write to
// the terminal, play a sound, or use text-to-speech.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
