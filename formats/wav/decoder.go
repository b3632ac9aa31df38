package wav

import (
	"bytes"
	"fmt"
	"io"

	gaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"chime/audio"
)

type source struct {
	dec      *gowav.Decoder
	rate     int
	channels int
	scale    float32
	buf      *gaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.rate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.buf == nil || cap(s.buf.Data) < len(dst) {
		s.buf = &gaudio.IntBuffer{
			Format: &gaudio.Format{NumChannels: s.channels, SampleRate: s.rate},
			Data:   make([]int, len(dst)),
		}
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil {
		return 0, fmt.Errorf("wav: read pcm: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	for i := 0; i < n; i++ {
		dst[i] = float32(s.buf.Data[i]) * s.scale
	}
	return n, nil
}

// Decoder reads RIFF/WAVE files with 16, 24 or 32 bit PCM samples.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("wav: read: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	dec.ReadInfo()
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if dec.WavAudioFormat != 1 {
		return nil, ErrOnlyPCMSupported
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, ErrUnsupportedBitDepth
	}

	return &source{
		dec:      dec,
		rate:     int(dec.SampleRate),
		channels: int(dec.NumChans),
		scale:    1 / float32(int64(1)<<(bitDepth-1)),
	}, nil
}
