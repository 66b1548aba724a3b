package speech

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/recipeflow/internal/domain"
	"github.com/hammamikhairi/recipeflow/internal/events"
	"github.com/hammamikhairi/recipeflow/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*SpeakingNotifier)(nil)

// SpeakingNotifier wraps a text notifier and also plays each message
// through the Voice: a chime, then the spoken text when TTS is configured.
type SpeakingNotifier struct {
	text  domain.Notifier
	voice *Voice
	log   *logger.Logger

	start, nudge, done []byte
}

// NewSpeakingNotifier creates a notifier that prints and plays.
func NewSpeakingNotifier(text domain.Notifier, voice *Voice, log *logger.Logger) *SpeakingNotifier {
	return &SpeakingNotifier{
		text:  text,
		voice: voice,
		log:   log,
		start: RenderChime(StartChime),
		nudge: RenderChime(NudgeChime),
		done:  RenderChime(DoneChime),
	}
}

// Notify prints the message and queues it. Timer starts play at normal
// priority; reminders are low priority and dropped by anything newer.
func (n *SpeakingNotifier) Notify(ctx context.Context, message string) error {
	if err := n.text.Notify(ctx, message); err != nil {
		return err
	}
	if strings.HasPrefix(message, events.TitleStarted) {
		n.voice.Say(cleanForSpeech(message), n.start, PriorityNormal)
		return nil
	}
	n.voice.Say(cleanForSpeech(message), n.nudge, PriorityLow)
	return nil
}

// NotifyUrgent prints the message and queues it at high priority.
func (n *SpeakingNotifier) NotifyUrgent(ctx context.Context, message string) error {
	if err := n.text.NotifyUrgent(ctx, message); err != nil {
		return err
	}
	n.voice.Say(cleanForSpeech(message), n.done, PriorityHigh)
	return nil
}

var (
	ansiCodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	// Titles end in "!" and read badly before the body.
	titlePrefix = regexp.MustCompile(`^Timer (Started|Complete)!\s*`)
)

// cleanForSpeech strips formatting that shouldn't be spoken.
func cleanForSpeech(msg string) string {
	cleaned := ansiCodes.ReplaceAllString(msg, "")
	cleaned = titlePrefix.ReplaceAllString(cleaned, "")
	cleaned = strings.ReplaceAll(cleaned, " - ", ", ")
	return strings.TrimSpace(cleaned)
}
