package audio

import (
	"io"
	"path/filepath"
	"strings"
	"sync"
)

// Source is a decoded PCM stream.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns the number of float32 values written. n == 0 with io.EOF
	// means the stream is finished. Implementations must make progress or
	// return an error; a source that keeps returning (0, nil) for a
	// non-empty dst is treated as finished.
	ReadSamples(dst []float32) (n int, err error)
	// Close releases decoder resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps file extensions to decoders.
type Registry struct {
	mtx    sync.Mutex
	codecs map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

// Register binds a decoder to an extension such as ".wav". The leading dot
// is optional and matching is case-insensitive.
func (r *Registry) Register(ext string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[normalizeExt(ext)] = d
}

// Lookup returns the decoder for a file name's extension.
func (r *Registry) Lookup(name string) (Decoder, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[normalizeExt(filepath.Ext(name))]
	if !ok {
		return nil, ErrUnsupportedFormat
	}
	return d, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	return strings.TrimPrefix(ext, ".")
}
