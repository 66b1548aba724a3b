// Package speech provides audible timer alerts, optional text-to-speech
// announcements and optional voice command input.
package speech

import "time"

// Default voice for TTS.
// Full list: https://learn.microsoft.com/en-us/azure/ai-services/speech-service/language-support
const DefaultVoice = "en-US-AvaNeural"

// Audio format returned by Azure and expected by the player.
const DefaultAudioFormat = "riff-24khz-16bit-mono-pcm"

// Audio parameters matching the default format. Chimes are generated in
// the same format so one oto context plays both.
const (
	SampleRate   = 24000
	ChannelCount = 1
	BitDepth     = 16
)

// Env var names for Azure Speech credentials.
const (
	EnvAzureSpeechKey    = "AZURE_SPEECH_KEY"
	EnvAzureSpeechRegion = "AZURE_SPEECH_REGION"
	EnvAzureSpeechVoice  = "AZURE_SPEECH_VOICE" // optional, DefaultVoice otherwise
)

// Priority levels for queued audio. Higher value plays first.
type Priority int

const (
	PriorityLow    Priority = iota // reminders
	PriorityNormal                 // timer started, replies
	PriorityHigh                   // timer complete
)

// request is a queued item waiting to be played.
type request struct {
	text     string // spoken text, "" for a chime only
	chime    []byte // WAV played before the text, may be nil
	priority Priority
	queuedAt time.Time
}
