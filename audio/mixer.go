package audio

import (
	"fmt"
	"io"
)

// frameReader feeds a channel with interleaved source frames. reset rewinds
// to the start of the stream for looping.
type frameReader interface {
	sampleRate() int
	channels() int
	read(dst []float32) (int, error)
	reset() error
	close() error
}

// bufferReader plays fully decoded PCM held by a sample sound.
type bufferReader struct {
	pcm  []float32
	rate int
	ch   int
	off  int
}

func (b *bufferReader) sampleRate() int { return b.rate }
func (b *bufferReader) channels() int   { return b.ch }
func (b *bufferReader) close() error    { return nil }

func (b *bufferReader) read(dst []float32) (int, error) {
	if b.off >= len(b.pcm) {
		return 0, io.EOF
	}
	n := copy(dst, b.pcm[b.off:])
	b.off += n
	return n, nil
}

func (b *bufferReader) reset() error {
	b.off = 0
	return nil
}

func (b *bufferReader) seekFrames(frames int) {
	off := frames * b.ch
	if off > len(b.pcm) {
		off = len(b.pcm)
	}
	if off < 0 {
		off = 0
	}
	b.off = off
}

// streamReader decodes incrementally from a streamed sound's retained
// buffer. reset reopens a fresh decoder over the same bytes.
type streamReader struct {
	snd *Sound
	src Source
}

func newStreamReader(snd *Sound) (*streamReader, error) {
	src, err := snd.openStream()
	if err != nil {
		return nil, err
	}
	return &streamReader{snd: snd, src: src}, nil
}

func (s *streamReader) sampleRate() int { return s.snd.rate }
func (s *streamReader) channels() int   { return s.snd.channels }

func (s *streamReader) read(dst []float32) (int, error) {
	return s.src.ReadSamples(dst)
}

func (s *streamReader) reset() error {
	if err := s.src.Close(); err != nil {
		return fmt.Errorf("audio: close stream: %w", err)
	}
	src, err := s.snd.openStream()
	if err != nil {
		return err
	}
	s.src = src
	return nil
}

func (s *streamReader) close() error {
	return s.src.Close()
}

const readChunk = 2048

// fill appends one chunk of source frames to the channel window. At end of
// stream it consumes a loop pass and rewinds, or marks the channel drained.
func (c *Channel) fill() {
	if c.readBuf == nil {
		c.readBuf = make([]float32, readChunk)
	}

	n, err := c.reader.read(c.readBuf)
	if n > 0 {
		c.win = append(c.win, c.readBuf[:n]...)
	}
	if err == nil {
		return
	}
	if err != io.EOF {
		c.drained = true
		return
	}

	if c.params.loops == 0 {
		c.drained = true
		return
	}
	if c.params.loops > 0 {
		c.params.loops--
	}
	if err := c.reader.reset(); err != nil {
		c.drained = true
		return
	}
	c.passFrames = 0
}

// mixInto accumulates one block of stereo frames into dst at outRate.
// Returns true once the channel has played out completely.
func (c *Channel) mixInto(dst []float32, outRate int, flags InitFlags, listener Spatial, master float32) bool {
	if c.state != StatePlaying {
		return false
	}

	srcCh := c.reader.channels()
	srcRate := c.reader.sampleRate()
	if srcCh <= 0 || srcRate <= 0 {
		return true
	}

	step := float64(srcRate) / float64(outRate) * float64(c.params.pitch)
	if step <= 0 {
		return false
	}

	gain := c.params.volume * master
	if c.group != nil {
		gain *= c.group.gain()
	}
	att := float32(1)
	if c.params.is3D {
		att = attenuate(listener.Position, c.params.spatial.Position, c.params.distance)
		gain *= att
	}
	lg := gain * min32(1, 1-c.params.pan)
	rg := gain * min32(1, 1+c.params.pan)

	alpha := float32(1)
	if flags&FlagLowPass != 0 {
		alpha *= c.params.lowPass
	}
	if flags&FlagDistanceFilter != 0 && c.params.is3D {
		alpha *= max32(att, 0.1)
	}

	// Drop frames consumed by the previous block. A high pitch step can
	// leave the cursor past a drained window, so clamp before slicing.
	if drop := int(c.cursor); drop > 0 {
		if have := len(c.win) / srcCh; drop > have {
			drop = have
		}
		keep := copy(c.win, c.win[drop*srcCh:])
		c.win = c.win[:keep]
		c.cursor -= float64(drop)
	}

	frames := len(dst) / 2
	for f := 0; f < frames; f++ {
		// A loop rewind legitimately refills without progress once, so a
		// source is only treated as finished after two stalled reads.
		for stalls := 0; !c.drained && len(c.win)/srcCh < int(c.cursor)+2; {
			before := len(c.win)
			c.fill()
			if len(c.win) > before {
				stalls = 0
				continue
			}
			if stalls++; stalls >= 2 {
				c.drained = true
			}
		}

		winFrames := len(c.win) / srcCh
		i := int(c.cursor)
		if i >= winFrames {
			return true
		}
		i2 := i + 1
		if i2 >= winFrames {
			i2 = winFrames - 1
		}

		frac := float32(c.cursor - float64(i))
		var l, r float32
		if srcCh == 1 {
			l = lerp(c.win[i], c.win[i2], frac)
			r = l
		} else {
			l = lerp(c.win[i*srcCh], c.win[i2*srcCh], frac)
			r = lerp(c.win[i*srcCh+1], c.win[i2*srcCh+1], frac)
		}

		if alpha < 1 {
			// One-pole low-pass, same shape as a resampler anti-alias stage.
			l = alpha*l + (1-alpha)*c.filt[0]
			r = alpha*r + (1-alpha)*c.filt[1]
			c.filt[0] = l
			c.filt[1] = r
		}

		dst[2*f] += l * lg
		dst[2*f+1] += r * rg

		c.cursor += step
		c.passFrames += step
	}

	return false
}

// skipFrames decodes and discards source frames, used for forward seeks on
// streamed sounds.
func (c *Channel) skipFrames(frames int) error {
	if c.readBuf == nil {
		c.readBuf = make([]float32, readChunk)
	}
	srcCh := c.reader.channels()
	left := frames * srcCh
	for left > 0 {
		want := left
		if want > len(c.readBuf) {
			want = len(c.readBuf)
		}
		n, err := c.reader.read(c.readBuf[:want])
		left -= n
		if err == io.EOF {
			c.drained = c.params.loops == 0
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
