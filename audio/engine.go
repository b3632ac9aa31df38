package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// InitFlags tune the per-channel effect stages.
type InitFlags uint32

const (
	// FlagLowPass enables the per-channel low-pass filter stage.
	FlagLowPass InitFlags = 1 << iota
	// FlagDistanceFilter couples the low-pass stage to listener distance
	// for 3D channels.
	FlagDistanceFilter
	// FlagNone disables all effect stages. The zero Flags value selects
	// DefaultFlags instead, so disabling has to be explicit.
	FlagNone
)

// DefaultFlags is applied when Config.Flags is zero.
const DefaultFlags = FlagLowPass | FlagDistanceFilter

const (
	defaultSampleRate   = 48000
	defaultBufferLength = 256
	defaultBufferCount  = 4
	defaultMaxChannels  = 32
)

// Config tunes an Engine. The zero value of every field selects a default.
type Config struct {
	// RootDir is the base directory relative asset names resolve against.
	RootDir string
	// SampleRate of the output mix in Hz. Default 48000.
	SampleRate int
	// BufferLength is the mix block size in frames. Default 256.
	BufferLength int
	// BufferCount is how many blocks Update keeps buffered ahead of the
	// device. Default 4.
	BufferCount int
	// MaxChannels caps concurrently live playback channels. Default 32.
	MaxChannels int
	// Flags select effect stages. Zero means DefaultFlags.
	Flags InitFlags
	// Decoders resolves file extensions to format decoders.
	Decoders *Registry
	// Output overrides the playback backend. Default is the system device
	// via miniaudio; NullOutput runs headless.
	Output Output
}

func (cfg Config) withDefaults() Config {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = defaultSampleRate
	}
	if cfg.BufferLength <= 0 {
		cfg.BufferLength = defaultBufferLength
	}
	if cfg.BufferCount <= 0 {
		cfg.BufferCount = defaultBufferCount
	}
	if cfg.MaxChannels <= 0 {
		cfg.MaxChannels = defaultMaxChannels
	}
	if cfg.Flags == 0 {
		cfg.Flags = DefaultFlags
	}
	if cfg.Decoders == nil {
		cfg.Decoders = NewRegistry()
	}
	return cfg
}

type engineState uint8

const (
	stateUninit engineState = iota
	stateRunning
	stateClosed
)

// Engine owns the output device and the channel pool. It is an explicit
// context object: multiple engines can coexist in one process. All methods
// must be called from the host's update thread; only the output backend
// runs concurrently, behind its own buffer.
type Engine struct {
	cfg      Config
	out      Output
	state    engineState
	slots    []*Channel
	groups   map[string]*Group
	listener Spatial
	master   float32
	muted    bool
	mix      []float32
}

// New creates the output device and starts it. The returned engine is
// ready for loading and playback; call Update once per host tick and Close
// when done.
func New(cfg Config) (*Engine, error) {
	cfg = cfg.withDefaults()

	out := cfg.Output
	if out == nil {
		var err error
		out, err = newMalgoOutput(cfg.SampleRate, cfg.BufferLength, cfg.BufferCount)
		if err != nil {
			return nil, err
		}
	}
	if err := out.Start(); err != nil {
		out.Close()
		return nil, err
	}

	return &Engine{
		cfg:    cfg,
		out:    out,
		state:  stateRunning,
		slots:  make([]*Channel, cfg.MaxChannels),
		groups: make(map[string]*Group),
		master: 1,
		mix:    make([]float32, cfg.BufferLength*2),
	}, nil
}

func (e *Engine) usable() error {
	switch {
	case e == nil, e.state == stateUninit:
		return ErrNotInitialized
	case e.state == stateClosed:
		return ErrClosed
	}
	return nil
}

// Update pumps the mixer: finished channels are reclaimed and up to
// BufferCount blocks are mixed into the output buffer. Call once per host
// tick.
func (e *Engine) Update() error {
	if err := e.usable(); err != nil {
		return err
	}

	for blocks := 0; blocks < e.cfg.BufferCount && e.out.Free() >= e.cfg.BufferLength; blocks++ {
		for i := range e.mix {
			e.mix[i] = 0
		}

		master := e.master
		if e.muted {
			master = 0
		}
		for _, ch := range e.slots {
			if ch == nil {
				continue
			}
			if ch.mixInto(e.mix, e.cfg.SampleRate, e.cfg.Flags, e.listener, master) {
				ch.finish()
			}
		}

		for i, s := range e.mix {
			if s > 1 {
				e.mix[i] = 1
			} else if s < -1 {
				e.mix[i] = -1
			}
		}
		if err := e.out.Write(e.mix); err != nil {
			return fmt.Errorf("audio: write block: %w", err)
		}
	}
	return nil
}

// Close stops every channel and releases the output device. Terminal:
// every later operation on the engine, its sounds and its channels returns
// ErrClosed.
func (e *Engine) Close() error {
	if err := e.usable(); err != nil {
		return err
	}

	for _, ch := range e.slots {
		if ch != nil {
			ch.finish()
		}
	}
	e.state = stateClosed
	if err := e.out.Close(); err != nil {
		return fmt.Errorf("audio: close output: %w", err)
	}
	return nil
}

// LoadSound loads an asset fully decoded into memory. The source bytes are
// not retained.
func (e *Engine) LoadSound(name string) (*Sound, error) {
	data, dec, err := e.readAsset(name)
	if err != nil {
		return nil, err
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("audio: decode %s: %w", name, err)
	}
	defer src.Close()

	var pcm []float32
	buf := make([]float32, readChunk)
	for stalls := 0; ; {
		n, err := src.ReadSamples(buf)
		pcm = append(pcm, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("audio: decode %s: %w", name, err)
		}
		// A decoder that stops making progress without reporting EOF would
		// otherwise spin here.
		if n == 0 {
			if stalls++; stalls >= 2 {
				break
			}
			continue
		}
		stalls = 0
	}

	return &Sound{
		eng:      e,
		name:     name,
		kind:     kindSample,
		rate:     src.SampleRate(),
		channels: src.Channels(),
		pcm:      pcm,
		defaults: defaultParams(),
	}, nil
}

// LoadStreamedSound loads an asset that decodes incrementally during
// playback. The raw file bytes are retained by the sound and stay alive
// until Release; every playback opens its own decoder over them, so two
// loads of the same file are fully independent.
func (e *Engine) LoadStreamedSound(name string) (*Sound, error) {
	data, dec, err := e.readAsset(name)
	if err != nil {
		return nil, err
	}

	// Probe once for the stream's format.
	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("audio: decode %s: %w", name, err)
	}
	rate, channels := src.SampleRate(), src.Channels()
	if err := src.Close(); err != nil {
		return nil, fmt.Errorf("audio: close probe %s: %w", name, err)
	}

	return &Sound{
		eng:      e,
		name:     name,
		kind:     kindStream,
		rate:     rate,
		channels: channels,
		raw:      data,
		dec:      dec,
		defaults: defaultParams(),
	}, nil
}

func (e *Engine) readAsset(name string) ([]byte, Decoder, error) {
	if err := e.usable(); err != nil {
		return nil, nil, err
	}

	dec, err := e.cfg.Decoders.Lookup(name)
	if err != nil {
		return nil, nil, fmt.Errorf("audio: %s: %w", name, err)
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.cfg.RootDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("audio: read %s: %w", name, err)
	}
	return data, dec, nil
}

// Play spawns a channel from a sound, copying every default parameter onto
// it, and starts it immediately.
func (e *Engine) Play(s *Sound) (*Channel, error) {
	return e.play(s, StatePlaying)
}

// PlayPaused spawns a channel in the paused state.
func (e *Engine) PlayPaused(s *Sound) (*Channel, error) {
	return e.play(s, StatePaused)
}

func (e *Engine) play(s *Sound, state State) (*Channel, error) {
	if err := e.usable(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNilSound
	}
	if s.released {
		return nil, ErrSoundReleased
	}

	slot := -1
	for i, ch := range e.slots {
		if ch == nil {
			slot = i
			break
		}
	}
	if slot < 0 {
		return nil, ErrNoFreeChannels
	}

	var reader frameReader
	if s.kind == kindStream {
		var err error
		reader, err = newStreamReader(s)
		if err != nil {
			return nil, err
		}
	} else {
		reader = &bufferReader{pcm: s.pcm, rate: s.rate, ch: s.channels}
	}

	ch := &Channel{
		eng:    e,
		snd:    s,
		state:  state,
		params: s.defaults,
		reader: reader,
	}
	e.slots[slot] = ch
	return ch, nil
}

func (e *Engine) releaseSlot(c *Channel) {
	for i, ch := range e.slots {
		if ch == c {
			e.slots[i] = nil
			return
		}
	}
}

func (e *Engine) stopChannelsOf(s *Sound) {
	for _, ch := range e.slots {
		if ch != nil && ch.snd == s {
			ch.finish()
		}
	}
}

// CreateChannelGroup creates a named bus. The name must be unused.
func (e *Engine) CreateChannelGroup(name string) (*Group, error) {
	if err := e.usable(); err != nil {
		return nil, err
	}
	if _, ok := e.groups[name]; ok {
		return nil, fmt.Errorf("audio: %s: %w", name, ErrGroupExists)
	}

	g := &Group{eng: e, name: name, volume: 1}
	e.groups[name] = g
	return g, nil
}

// ChannelGroup returns a previously created bus by name.
func (e *Engine) ChannelGroup(name string) (*Group, bool) {
	g, ok := e.groups[name]
	return g, ok
}

// SetListener sets the 3D listener pose used for attenuation.
func (e *Engine) SetListener(sp Spatial) error {
	if err := e.usable(); err != nil {
		return err
	}
	e.listener = sp
	return nil
}

func (e *Engine) Listener() (Spatial, error) {
	if err := e.usable(); err != nil {
		return Spatial{}, err
	}
	return e.listener, nil
}

func (e *Engine) MasterVolume() (float32, error) {
	if err := e.usable(); err != nil {
		return 0, err
	}
	return e.master, nil
}

func (e *Engine) SetMasterVolume(volume float32) error {
	if err := e.usable(); err != nil {
		return err
	}
	e.master = clamp01(volume)
	return nil
}

func (e *Engine) Muted() (bool, error) {
	if err := e.usable(); err != nil {
		return false, err
	}
	return e.muted, nil
}

func (e *Engine) SetMuted(muted bool) error {
	if err := e.usable(); err != nil {
		return err
	}
	e.muted = muted
	return nil
}
