// Package audiotest provides deterministic sources and decoders for tests.
package audiotest

import (
	"io"
	"math"

	"chime/audio"
)

// Source generates samples from a waveform function. It implements
// audio.Source.
type Source struct {
	rate      int
	channels  int
	total     int // frames to generate
	generated int
	waveform  func(frame, channel int) float32
}

func NewSource(rate, channels, totalFrames int, waveform func(frame, channel int) float32) *Source {
	return &Source{
		rate:     rate,
		channels: channels,
		total:    totalFrames,
		waveform: waveform,
	}
}

// NewSilent generates totalFrames of silence.
func NewSilent(rate, channels, totalFrames int) *Source {
	return NewSource(rate, channels, totalFrames, func(int, int) float32 { return 0 })
}

// NewConstant generates totalFrames of a constant value.
func NewConstant(rate, channels, totalFrames int, value float32) *Source {
	return NewSource(rate, channels, totalFrames, func(int, int) float32 { return value })
}

// NewSine generates a sine wave at the given frequency.
func NewSine(rate, channels, totalFrames int, frequency float64) *Source {
	return NewSource(rate, channels, totalFrames, func(frame, _ int) float32 {
		t := float64(frame) / float64(rate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.generated >= s.total {
		return 0, io.EOF
	}

	frames := len(dst) / s.channels
	if left := s.total - s.generated; frames > left {
		frames = left
	}

	for f := 0; f < frames; f++ {
		for c := 0; c < s.channels; c++ {
			dst[f*s.channels+c] = s.waveform(s.generated+f, c)
		}
	}
	s.generated += frames

	if s.generated >= s.total {
		return frames * s.channels, io.EOF
	}
	return frames * s.channels, nil
}

// Decoder hands out fresh Sources regardless of input bytes. Each Decode
// call counts, so tests can assert how often a stream was reopened.
type Decoder struct {
	Rate        int
	Channels    int
	TotalFrames int
	Value       float32

	Decodes int
}

func (d *Decoder) Decode(r io.Reader) (audio.Source, error) {
	d.Decodes++
	rate := d.Rate
	if rate == 0 {
		rate = 48000
	}
	channels := d.Channels
	if channels == 0 {
		channels = 2
	}
	total := d.TotalFrames
	if total == 0 {
		total = 4800
	}
	return NewConstant(rate, channels, total, d.Value), nil
}
