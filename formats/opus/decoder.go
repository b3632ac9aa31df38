package opus

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	hopus "gopkg.in/hraban/opus.v2"

	"chime/audio"
)

// opusRate is the Opus canonical decode rate.
const opusRate = 48000

// headProbeSize covers the first Ogg page, which carries the OpusHead
// identification packet.
const headProbeSize = 512

var opusHeadMagic = []byte("OpusHead")

var errNoOpusHead = errors.New("opus: missing OpusHead header")

// opusReader is the subset of hopus.Stream the source needs, split out so
// tests can substitute it.
type opusReader interface {
	ReadFloat32([]float32) (int, error)
	Close() error
}

type source struct {
	dec      opusReader
	channels int
}

func (s *source) SampleRate() int { return opusRate }

// Channels reports the count probed from the OpusHead packet. The stream
// decoder emits samples at exactly that count and never upmixes.
func (s *source) Channels() int { return s.channels }

func (s *source) Close() error { return s.dec.Close() }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) < s.channels {
		return 0, nil
	}
	n, err := s.dec.ReadFloat32(dst)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	// ReadFloat32 returns samples per channel.
	return n * s.channels, err
}

// Decoder reads Ogg Opus streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	br := bufio.NewReaderSize(r, headProbeSize)
	channels, err := probeChannels(br)
	if err != nil {
		return nil, err
	}

	dec, err := hopus.NewStream(br)
	if err != nil {
		return nil, fmt.Errorf("opus: %w", err)
	}
	return &source{dec: dec, channels: channels}, nil
}

// probeChannels peeks at the OpusHead packet on the first Ogg page and
// extracts its channel count. The magic is followed by a version byte, then
// the count.
func probeChannels(br *bufio.Reader) (int, error) {
	head, _ := br.Peek(headProbeSize)
	i := bytes.Index(head, opusHeadMagic)
	if i < 0 || i+len(opusHeadMagic)+2 > len(head) {
		return 0, errNoOpusHead
	}

	channels := int(head[i+len(opusHeadMagic)+1])
	if channels < 1 {
		return 0, fmt.Errorf("opus: bad channel count %d", channels)
	}
	return channels, nil
}
