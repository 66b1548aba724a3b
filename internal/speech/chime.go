package speech

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"
)

// Tone is one note of a chime.
type Tone struct {
	Freq     float64 // Hz, 0 for silence
	Duration time.Duration
}

// Chimes used for timer events.
var (
	StartChime = []Tone{{Freq: 660, Duration: 120 * time.Millisecond}, {Freq: 880, Duration: 160 * time.Millisecond}}
	DoneChime  = []Tone{
		{Freq: 988, Duration: 180 * time.Millisecond}, {Duration: 80 * time.Millisecond},
		{Freq: 988, Duration: 180 * time.Millisecond}, {Duration: 80 * time.Millisecond},
		{Freq: 1319, Duration: 320 * time.Millisecond},
	}
	NudgeChime = []Tone{{Freq: 523, Duration: 140 * time.Millisecond}}
)

// RenderChime synthesizes tones into a 16-bit mono WAV at SampleRate.
// Each note gets a short linear fade in and out so it doesn't click.
func RenderChime(tones []Tone) []byte {
	var pcm bytes.Buffer
	const amplitude = 0.35 * math.MaxInt16
	fade := SampleRate / 200 // 5ms

	for _, t := range tones {
		n := int(t.Duration.Seconds() * SampleRate)
		for i := 0; i < n; i++ {
			var v float64
			if t.Freq > 0 {
				env := 1.0
				if i < fade {
					env = float64(i) / float64(fade)
				} else if n-i < fade {
					env = float64(n-i) / float64(fade)
				}
				v = amplitude * env * math.Sin(2*math.Pi*t.Freq*float64(i)/SampleRate)
			}
			binary.Write(&pcm, binary.LittleEndian, int16(v))
		}
	}
	return append(wavHeader(pcm.Len()), pcm.Bytes()...)
}

// wavHeader builds the 44-byte canonical PCM header.
func wavHeader(dataLen int) []byte {
	var h bytes.Buffer
	byteRate := SampleRate * ChannelCount * BitDepth / 8
	blockAlign := ChannelCount * BitDepth / 8

	h.WriteString("RIFF")
	binary.Write(&h, binary.LittleEndian, uint32(36+dataLen))
	h.WriteString("WAVE")
	h.WriteString("fmt ")
	binary.Write(&h, binary.LittleEndian, uint32(16))
	binary.Write(&h, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&h, binary.LittleEndian, uint16(ChannelCount))
	binary.Write(&h, binary.LittleEndian, uint32(SampleRate))
	binary.Write(&h, binary.LittleEndian, uint32(byteRate))
	binary.Write(&h, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&h, binary.LittleEndian, uint16(BitDepth))
	h.WriteString("data")
	binary.Write(&h, binary.LittleEndian, uint32(dataLen))
	return h.Bytes()
}
