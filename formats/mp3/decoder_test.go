package mp3

import (
	"bytes"
	"io"
	"math"
	"testing"
)

// fakeReader replays canned 16-bit little-endian PCM bytes.
type fakeReader struct {
	data []byte
	off  int
	rate int
}

func (f *fakeReader) SampleRate() int { return f.rate }

func (f *fakeReader) Read(p []byte) (int, error) {
	if f.off >= len(f.data) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.off:])
	f.off += n
	return n, nil
}

func TestReadSamplesConvertsPCM(t *testing.T) {
	t.Parallel()

	// int16 values 16384, -16384 little-endian.
	s := &source{
		dec:        &fakeReader{data: []byte{0x00, 0x40, 0x00, 0xC0}, rate: 44100},
		sampleRate: 44100,
	}

	dst := make([]float32, 2)
	n, err := s.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples: %v", err)
	}
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}
	if math.Abs(float64(dst[0]-0.5)) > 1e-4 || math.Abs(float64(dst[1]+0.5)) > 1e-4 {
		t.Errorf("samples = %v, want [0.5 -0.5]", dst)
	}
}

func TestReadSamplesEOF(t *testing.T) {
	t.Parallel()

	s := &source{dec: &fakeReader{rate: 44100}, sampleRate: 44100}

	n, err := s.ReadSamples(make([]float32, 4))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("not an mpeg stream at all")))
	if err == nil {
		t.Fatal("Decode accepted garbage input")
	}
}
