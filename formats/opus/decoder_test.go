package opus

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"testing"
)

// fakeStream hands out a fixed number of samples per channel per read, the
// way the wrapped stream decoder does.
type fakeStream struct {
	channels int
	samples  int
	value    float32
	done     bool
}

func (f *fakeStream) ReadFloat32(dst []float32) (int, error) {
	if f.done {
		return 0, nil
	}
	f.done = true
	for i := 0; i < f.samples*f.channels && i < len(dst); i++ {
		dst[i] = f.value
	}
	return f.samples, nil
}

func (f *fakeStream) Close() error { return nil }

func oggHead(channels byte) []byte {
	head := []byte("OggS\x00\x02fakepageheaderbytes")
	head = append(head, opusHeadMagic...)
	return append(head, 1, channels, 0, 0) // version, channels, pre-skip
}

func TestProbeChannels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		want    int
		wantErr bool
	}{
		{"mono", oggHead(1), 1, false},
		{"stereo", oggHead(2), 2, false},
		{"no header", []byte("not an ogg opus stream"), 0, true},
		{"zero channels", oggHead(0), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := probeChannels(bufio.NewReaderSize(bytes.NewReader(tt.data), headProbeSize))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("got %d channels, want %d", got, tt.want)
			}
		})
	}
}

// A mono stream yields one float per decoded sample; ReadSamples must not
// report more values than the decoder wrote.
func TestReadSamplesMono(t *testing.T) {
	t.Parallel()

	src := &source{dec: &fakeStream{channels: 1, samples: 4, value: 0.25}, channels: 1}
	if got := src.Channels(); got != 1 {
		t.Fatalf("Channels() = %d, want 1", got)
	}

	dst := make([]float32, 16)
	n, err := src.ReadSamples(dst)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Fatalf("ReadSamples wrote %d values, want 4", n)
	}
	for i := 0; i < n; i++ {
		if dst[i] != 0.25 {
			t.Fatalf("dst[%d] = %v, want 0.25", i, dst[i])
		}
	}
}

func TestReadSamplesStereo(t *testing.T) {
	t.Parallel()

	src := &source{dec: &fakeStream{channels: 2, samples: 4, value: 0.5}, channels: 2}

	dst := make([]float32, 16)
	n, err := src.ReadSamples(dst)
	if err != nil {
		t.Fatal(err)
	}
	if n != 8 {
		t.Fatalf("ReadSamples wrote %d values, want 8", n)
	}
}

func TestReadSamplesEOF(t *testing.T) {
	t.Parallel()

	src := &source{dec: &fakeStream{channels: 1, samples: 2, done: true}, channels: 1}
	n, err := src.ReadSamples(make([]float32, 8))
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Fatalf("got (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("not an ogg opus stream")))
	if err == nil {
		t.Fatal("Decode accepted garbage input")
	}
}
