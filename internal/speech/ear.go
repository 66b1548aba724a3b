package speech

import (
	"context"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"time"

	audiotranscriber "github.com/sklyt/whisper/pkg"

	"github.com/hammamikhairi/recipeflow/internal/logger"
)

// Transcriber records from the microphone for d and returns what was said.
type Transcriber interface {
	Record(ctx context.Context, d time.Duration) (string, error)
}

// Compile-time interface check.
var _ Transcriber = (*WhisperTranscriber)(nil)

// WhisperTranscriber records a clip and runs it through a local whisper.cpp
// binary.
type WhisperTranscriber struct {
	bin     string
	model   string
	tempDir string
	log     *logger.Logger
}

// NewWhisperTranscriber checks that bin is reachable and returns a transcriber.
func NewWhisperTranscriber(bin, model, tempDir string, log *logger.Logger) *WhisperTranscriber {
	if _, err := exec.LookPath(bin); err != nil {
		log.Error("ear: whisper binary %q not found in PATH: %v", bin, err)
	}
	return &WhisperTranscriber{bin: bin, model: model, tempDir: tempDir, log: log}
}

// Record blocks for d (or until ctx is done) and returns the transcription.
func (w *WhisperTranscriber) Record(ctx context.Context, d time.Duration) (string, error) {
	var (
		result string
		wg     sync.WaitGroup
	)
	wg.Add(1)
	callback := func(text string) {
		result = text
		wg.Done()
	}

	t, err := audiotranscriber.NewTranscriber(w.bin, w.model, w.tempDir, "wav", callback,
		w.log.GetLevel() >= logger.LevelVerbose)
	if err != nil {
		return "", err
	}
	if err := t.Start(); err != nil {
		return "", err
	}

	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
	t.Stop()
	wg.Wait()
	return result, ctx.Err()
}

// Wake phrases. Matching is case-insensitive and whisper often mishears
// the second word, hence the variants.
var defaultWakeWords = []string{
	"hey chef",
	"hey, chef",
	"hey shef",
	"recipe flow",
	"recipeflow",
}

// EarOption configures the Ear.
type EarOption func(*Ear)

// WithWakeWords overrides the default wake phrases.
func WithWakeWords(words ...string) EarOption {
	return func(e *Ear) { e.wakeWords = words }
}

// WithProbeDuration sets the clip length used while waiting for a wake phrase.
func WithProbeDuration(d time.Duration) EarOption {
	return func(e *Ear) { e.probe = d }
}

// WithChunkDuration sets the clip length used while capturing a command.
func WithChunkDuration(d time.Duration) EarOption {
	return func(e *Ear) { e.chunk = d }
}

// WithListenTimeout caps how long a command may take.
func WithListenTimeout(d time.Duration) EarOption {
	return func(e *Ear) { e.listenTimeout = d }
}

// Ear turns speech into command text. It probes short clips for a wake
// phrase and discards everything else. Once woken it interrupts the Voice,
// captures chunks until the speaker goes quiet, and sends the command on C.
type Ear struct {
	rec   Transcriber
	voice *Voice // optional
	log   *logger.Logger

	wakeWords     []string
	probe         time.Duration
	chunk         time.Duration
	listenTimeout time.Duration

	textCh chan string
}

// NewEar creates a listener. voice may be nil.
func NewEar(rec Transcriber, voice *Voice, log *logger.Logger, opts ...EarOption) *Ear {
	e := &Ear{
		rec:           rec,
		voice:         voice,
		log:           log,
		wakeWords:     defaultWakeWords,
		probe:         3 * time.Second,
		chunk:         time.Second,
		listenTimeout: 15 * time.Second,
		textCh:        make(chan string, 8),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// C returns the channel of recognized commands.
func (e *Ear) C() <-chan string {
	return e.textCh
}

// Run listens until ctx is cancelled. Blocks.
func (e *Ear) Run(ctx context.Context) {
	e.log.Info("ear: started (probe=%s, chunk=%s, wake=%v)", e.probe, e.chunk, e.wakeWords)
	for ctx.Err() == nil {
		cmd, woke := e.waitForWake(ctx)
		if !woke {
			continue
		}
		if cmd == "" {
			if e.voice != nil {
				e.voice.Say(LineListening(), nil, PriorityHigh)
			}
			cmd = e.capture(ctx)
		}
		if cmd == "" {
			e.log.Debug("ear: woke but heard no command")
			continue
		}
		e.log.Info("ear: heard command %q", cmd)
		select {
		case e.textCh <- cmd:
		case <-ctx.Done():
		}
	}
	e.log.Info("ear: stopped")
}

// playing reports whether the Voice is busy. The microphone would pick
// up our own output, so recording is skipped while it is.
func (e *Ear) playing() bool {
	return e.voice != nil && (e.voice.IsSpeaking() || e.voice.QueueLen() > 0)
}

// waitForWake records one probe clip. It reports whether a wake phrase was
// heard and returns any command spoken in the same breath.
func (e *Ear) waitForWake(ctx context.Context) (string, bool) {
	if e.playing() {
		sleep(ctx, 200*time.Millisecond)
		return "", false
	}

	text, err := e.rec.Record(ctx, e.probe)
	if err != nil {
		if ctx.Err() == nil {
			e.log.Error("ear: recording failed: %v", err)
			sleep(ctx, 2*time.Second)
		}
		return "", false
	}
	if e.playing() {
		e.log.Debug("ear: discarding probe, voice started during recording")
		return "", false
	}

	text = cleanTranscription(text)
	if text == "" {
		return "", false
	}
	rest, ok := e.stripWakeWord(text)
	if !ok {
		return "", false
	}

	e.log.Info("ear: wake phrase in %q", text)
	if e.voice != nil {
		e.voice.Interrupt()
	}
	return cleanTranscription(rest), true
}

// capture records chunks until silence or the listen timeout and returns
// the joined text.
func (e *Ear) capture(ctx context.Context) string {
	for e.playing() && ctx.Err() == nil {
		sleep(ctx, 100*time.Millisecond)
	}

	// More silence is tolerated before the speaker starts than after.
	const (
		silentBefore = 4
		silentAfter  = 2
	)

	deadline := time.Now().Add(e.listenTimeout)
	var parts []string
	silent := 0
	for ctx.Err() == nil && time.Now().Before(deadline) {
		text, err := e.rec.Record(ctx, e.chunk)
		if err != nil {
			e.log.Debug("ear: chunk failed: %v", err)
			break
		}
		text = cleanTranscription(text)
		if text == "" {
			silent++
			limit := silentBefore
			if len(parts) > 0 {
				limit = silentAfter
			}
			if silent >= limit {
				break
			}
			continue
		}
		silent = 0
		if text = e.removeWakeWords(text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// stripWakeWord finds a wake phrase in text and returns whatever follows it.
func (e *Ear) stripWakeWord(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, w := range e.wakeWords {
		idx := strings.Index(lower, strings.ToLower(w))
		if idx < 0 {
			continue
		}
		rest := strings.TrimLeft(text[idx+len(w):], " ,.!?\n\r\t")
		return strings.TrimSpace(rest), true
	}
	return "", false
}

// removeWakeWords drops repeated wake phrases from a command chunk.
func (e *Ear) removeWakeWords(text string) string {
	lower := strings.ToLower(text)
	for _, w := range e.wakeWords {
		lower = strings.ReplaceAll(lower, strings.ToLower(w), "")
	}
	return strings.Trim(lower, " ,.!?")
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}

var (
	// Environmental annotations like "(keyboard clicking)" or "[laughter]".
	annotation = regexp.MustCompile(`[\(\[][a-zA-Z_][a-zA-Z_\s]*[\)\]]`)
	// Timestamp prefixes like "[00:00:00.000 --> 00:00:05.000]".
	timestamp = regexp.MustCompile(`^\[[0-9:.\s\->]+\]`)
	spaces    = regexp.MustCompile(`\s+`)
)

// Whole-utterance hallucinations whisper emits on silence.
var hallucinations = map[string]bool{
	"...":                     true,
	"you":                     true,
	"thank you.":              true,
	"thanks for watching!":    true,
	"thank you for watching.": true,
	"bye.":                    true,
	"the end.":                true,
}

// cleanTranscription normalizes whisper output and drops silence markers.
func cleanTranscription(s string) string {
	s = timestamp.ReplaceAllString(strings.TrimSpace(s), "")
	s = annotation.ReplaceAllString(s, "")
	s = strings.TrimSpace(spaces.ReplaceAllString(s, " "))
	if hallucinations[strings.ToLower(s)] {
		return ""
	}
	return s
}
