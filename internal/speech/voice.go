package speech

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/recipeflow/internal/logger"
)

// VoiceOption configures the Voice.
type VoiceOption func(*Voice)

// WithSynthesizer enables spoken text. Without one the Voice only plays chimes.
func WithSynthesizer(tts Synthesizer) VoiceOption {
	return func(v *Voice) {
		v.tts = tts
	}
}

// WithCache sets the clip cache used in front of the synthesizer.
func WithCache(c *AudioCache) VoiceOption {
	return func(v *Voice) {
		v.cache = c
	}
}

// Voice serializes all audio output. One clip plays at a time and higher
// priority requests are played first. Within a priority, requests play in
// the order they were queued.
type Voice struct {
	out   AudioOut
	tts   Synthesizer // nil plays chimes only
	cache *AudioCache // nil disables caching
	log   *logger.Logger

	mu          sync.Mutex
	queue       []request
	notify      chan struct{}
	speaking    bool
	interrupted bool
}

// NewVoice creates an audio dispatcher playing through out.
func NewVoice(out AudioOut, log *logger.Logger, opts ...VoiceOption) *Voice {
	v := &Voice{
		out:    out,
		log:    log,
		notify: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Say queues text, preceded by chime when non-nil. Non-blocking.
// Queuing at PriorityNormal or above drops pending low-priority items.
func (v *Voice) Say(text string, chime []byte, priority Priority) {
	if v.tts == nil {
		text = ""
	}
	if text == "" && chime == nil {
		return
	}

	v.mu.Lock()
	if priority >= PriorityNormal {
		v.flushLowLocked()
	}
	v.queue = append(v.queue, request{
		text:     text,
		chime:    chime,
		priority: priority,
		queuedAt: time.Now(),
	})
	qLen := len(v.queue)
	v.mu.Unlock()

	v.log.Debug("voice: queued (priority=%d, queue_len=%d): %s", priority, qLen, truncate(text, 60))

	select {
	case v.notify <- struct{}{}:
	default:
	}
}

// flushLowLocked removes all PriorityLow items. Must be called with v.mu held.
func (v *Voice) flushLowLocked() {
	n := 0
	for _, item := range v.queue {
		if item.priority > PriorityLow {
			v.queue[n] = item
			n++
		}
	}
	if dropped := len(v.queue) - n; dropped > 0 {
		v.log.Debug("voice: flushed %d low-priority items", dropped)
	}
	v.queue = v.queue[:n]
}

// IsSpeaking reports whether a clip is playing or being synthesized.
func (v *Voice) IsSpeaking() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.speaking
}

// QueueLen returns the number of pending requests.
func (v *Voice) QueueLen() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.queue)
}

// Interrupt clears the queue and cuts the current clip short.
func (v *Voice) Interrupt() {
	v.mu.Lock()
	v.queue = v.queue[:0]
	v.interrupted = true
	v.mu.Unlock()

	v.out.Stop()
	v.log.Debug("voice: interrupted")
}

// Start begins the playback goroutine. Non-blocking.
func (v *Voice) Start(ctx context.Context) {
	go v.loop(ctx)
	v.log.Info("voice started (speech=%t)", v.tts != nil)
}

func (v *Voice) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			v.log.Info("voice stopped")
			return
		case <-v.notify:
			v.drain(ctx)
		}
	}
}

// drain plays queued items until the queue is empty.
func (v *Voice) drain(ctx context.Context) {
	for ctx.Err() == nil {
		item, ok := v.dequeue()
		if !ok {
			return
		}
		v.play(ctx, item)

		v.mu.Lock()
		v.speaking = false
		v.mu.Unlock()
	}
}

// dequeue removes the oldest item of the highest priority and marks the
// voice as speaking.
func (v *Voice) dequeue() (request, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.interrupted = false
	if len(v.queue) == 0 {
		return request{}, false
	}

	best := 0
	for i, item := range v.queue {
		if item.priority > v.queue[best].priority {
			best = i
		}
	}
	item := v.queue[best]
	v.queue = append(v.queue[:best], v.queue[best+1:]...)
	v.speaking = true
	return item, true
}

func (v *Voice) play(ctx context.Context, req request) {
	v.log.Debug("voice: playing (priority=%d, waited=%s): %s",
		req.priority, time.Since(req.queuedAt).Round(time.Millisecond), truncate(req.text, 60))

	if req.chime != nil {
		if err := v.out.Play(req.chime); err != nil {
			v.log.Error("voice: chime playback failed: %v", err)
		}
	}
	if req.text == "" || v.wasInterrupted() {
		return
	}

	audio, err := v.synthesize(ctx, req.text)
	if err != nil {
		v.log.Error("voice: synthesis failed: %v", err)
		return
	}
	if v.wasInterrupted() {
		return
	}
	if err := v.out.Play(audio); err != nil {
		v.log.Error("voice: playback failed: %v", err)
	}
}

func (v *Voice) wasInterrupted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.interrupted
}

// synthesize checks the cache before calling the synthesizer.
func (v *Voice) synthesize(ctx context.Context, text string) ([]byte, error) {
	if v.cache != nil {
		if audio, ok := v.cache.Get(text); ok {
			return audio, nil
		}
	}
	audio, err := v.tts.Synthesize(ctx, text)
	if err != nil {
		return nil, err
	}
	if v.cache != nil {
		v.cache.Put(text, audio)
	}
	return audio, nil
}

// truncate shortens a string for logging.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
