package events

import (
	"context"

	"github.com/hammamikhairi/recipeflow/internal/domain"
	"github.com/hammamikhairi/recipeflow/internal/logger"
)

// Compile-time interface check.
var _ domain.EventSink = (*Dispatcher)(nil)

// DispatcherOption configures the dispatcher.
type DispatcherOption func(*Dispatcher)

// WithBuffer sets how many events may wait for delivery.
func WithBuffer(n int) DispatcherOption {
	return func(d *Dispatcher) {
		d.queue = make(chan domain.Event, n)
	}
}

// Dispatcher moves events off the emitting goroutine and hands them to a
// notifier. Emit never blocks: when the queue is full the event is dropped
// and logged.
type Dispatcher struct {
	notifier domain.Notifier
	log      *logger.Logger
	queue    chan domain.Event
}

// NewDispatcher creates a dispatcher. Call Run to start delivery.
func NewDispatcher(notifier domain.Notifier, log *logger.Logger, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		notifier: notifier,
		log:      log,
		queue:    make(chan domain.Event, 32),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Emit queues an event for delivery.
func (d *Dispatcher) Emit(ev domain.Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("event queue full, dropping %s for %q", ev.Kind, ev.Name)
	}
}

// Run delivers queued events until ctx is cancelled. Blocks.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-d.queue:
			d.deliver(ctx, ev)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, ev domain.Event) {
	d.log.Debug("delivering %s for timer %s", ev.Kind, ev.TimerID)

	var err error
	switch ev.Kind {
	case domain.EventTimerCompleted:
		err = d.notifier.NotifyUrgent(ctx, Line(ev))
	default:
		err = d.notifier.Notify(ctx, Line(ev))
	}
	if err != nil {
		d.log.Error("delivering %s: %v", ev.Kind, err)
	}
}
