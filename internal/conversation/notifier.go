package conversation

import (
	"context"
	"fmt"
	"sync"

	"github.com/hammamikhairi/recipeflow/internal/domain"
	"github.com/hammamikhairi/recipeflow/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.Notifier = (*CLINotifier)(nil)
	_ domain.Notifier = (*Recorder)(nil)
)

// ANSI escape codes for the fallback printer.
const (
	reset = "\033[0m"
	bold  = "\033[1m"
	red   = "\033[31m"
	cyan  = "\033[36m"
)

// LineFunc prints one line of output. display.UI's PrintChat and
// PrintUrgent match it.
type LineFunc func(text string)

// CLINotifier writes notifications to the terminal.
type CLINotifier struct {
	log    *logger.Logger
	normal LineFunc
	urgent LineFunc
}

// NewCLINotifier creates a terminal notifier. Nil printers fall back to
// ANSI-coloured stdout.
func NewCLINotifier(log *logger.Logger, normal, urgent LineFunc) *CLINotifier {
	if normal == nil {
		normal = func(text string) { fmt.Printf("%s%s%s%s\n", cyan, bold, text, reset) }
	}
	if urgent == nil {
		urgent = func(text string) { fmt.Printf("%s%s%s%s\n", red, bold, text, reset) }
	}
	return &CLINotifier{log: log, normal: normal, urgent: urgent}
}

// Notify prints a normal notification.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.normal("🔔 " + message)
	return nil
}

// NotifyUrgent prints an urgent notification.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	n.urgent("⏰ " + message)
	return nil
}

// Recorder keeps the most recent notifications in memory so the command
// loop can show them again ("timers" view).
type Recorder struct {
	inner domain.Notifier
	max   int

	mu    sync.Mutex
	lines []string
}

// NewRecorder wraps inner and remembers up to max lines.
func NewRecorder(inner domain.Notifier, max int) *Recorder {
	return &Recorder{inner: inner, max: max}
}

// Notify records and forwards.
func (r *Recorder) Notify(ctx context.Context, message string) error {
	r.record(message)
	return r.inner.Notify(ctx, message)
}

// NotifyUrgent records and forwards.
func (r *Recorder) NotifyUrgent(ctx context.Context, message string) error {
	r.record(message)
	return r.inner.NotifyUrgent(ctx, message)
}

// Recent returns the remembered lines, oldest first.
func (r *Recorder) Recent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

func (r *Recorder) record(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, message)
	if over := len(r.lines) - r.max; over > 0 {
		r.lines = r.lines[over:]
	}
}
