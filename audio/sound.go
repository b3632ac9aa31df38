package audio

import (
	"bytes"
	"fmt"
)

type soundKind uint8

const (
	kindSample soundKind = iota
	kindStream
)

// Sound is a loaded audio asset plus the default playback parameters copied
// onto every channel spawned from it.
//
// A sample sound is fully decoded at load time and the source bytes are
// dropped. A streamed sound keeps the raw file bytes alive for the asset's
// whole lifetime; every playback decodes incrementally from its own reader
// over that buffer, so the buffer may only be released after the channels
// holding decoders into it are stopped.
type Sound struct {
	eng  *Engine
	name string
	kind soundKind

	rate     int
	channels int
	pcm      []float32 // sample sounds only
	raw      []byte    // streamed sounds only, retained until Release
	dec      Decoder   // streamed sounds only

	defaults params
	released bool
}

// Name returns the asset name the sound was loaded under.
func (s *Sound) Name() string { return s.name }

// Streamed reports whether the sound decodes incrementally during playback.
func (s *Sound) Streamed() bool { return s.kind == kindStream }

// SampleRate of the decoded PCM data in Hz.
func (s *Sound) SampleRate() int { return s.rate }

// Channels of the decoded PCM data.
func (s *Sound) Channels() int { return s.channels }

// Length returns the sound length in milliseconds. Zero for streamed
// sounds, whose length is unknown until decoded.
func (s *Sound) Length() (float64, error) {
	if err := s.usable(); err != nil {
		return 0, err
	}
	if s.kind == kindStream || s.channels == 0 {
		return 0, nil
	}
	frames := len(s.pcm) / s.channels
	return float64(frames) / float64(s.rate) * 1000, nil
}

// Release stops every live channel spawned from this sound, then drops the
// decoded PCM or the retained stream buffer. The buffer is freed strictly
// after the channels reading from it are stopped. Further use of the sound
// returns ErrSoundReleased.
func (s *Sound) Release() error {
	if s.released {
		return ErrSoundReleased
	}

	s.eng.stopChannelsOf(s)
	s.pcm = nil
	s.raw = nil
	s.dec = nil
	s.released = true
	return nil
}

func (s *Sound) usable() error {
	if s.released {
		return ErrSoundReleased
	}
	return s.eng.usable()
}

// openStream creates a fresh decoder over the retained stream buffer.
func (s *Sound) openStream() (Source, error) {
	if s.released {
		return nil, ErrSoundReleased
	}
	src, err := s.dec.Decode(bytes.NewReader(s.raw))
	if err != nil {
		return nil, fmt.Errorf("audio: open stream %s: %w", s.name, err)
	}
	return src, nil
}

func (s *Sound) Loops() (int, error) {
	if err := s.usable(); err != nil {
		return 0, err
	}
	return s.defaults.loops, nil
}

// SetLoops sets the default loop count. Zero plays once, LoopInfinite
// repeats forever, a positive count adds that many extra passes.
func (s *Sound) SetLoops(loops int) error {
	if err := s.usable(); err != nil {
		return err
	}
	s.defaults.loops = loops
	return nil
}

// Looping reports whether the default loop count is the infinite sentinel.
func (s *Sound) Looping() (bool, error) {
	if err := s.usable(); err != nil {
		return false, err
	}
	return s.defaults.loops == LoopInfinite, nil
}

func (s *Sound) SetLooping(looping bool) error {
	if err := s.usable(); err != nil {
		return err
	}
	if looping {
		s.defaults.loops = LoopInfinite
	} else {
		s.defaults.loops = 0
	}
	return nil
}

func (s *Sound) Volume() (float32, error) {
	if err := s.usable(); err != nil {
		return 0, err
	}
	return s.defaults.volume, nil
}

func (s *Sound) SetVolume(volume float32) error {
	if err := s.usable(); err != nil {
		return err
	}
	s.defaults.volume = clamp01(volume)
	return nil
}

func (s *Sound) Pitch() (float32, error) {
	if err := s.usable(); err != nil {
		return 0, err
	}
	return s.defaults.pitch, nil
}

// SetPitch sets the default playback rate multiplier. Values at or below
// zero are ignored.
func (s *Sound) SetPitch(pitch float32) error {
	if err := s.usable(); err != nil {
		return err
	}
	if pitch > 0 {
		s.defaults.pitch = pitch
	}
	return nil
}

func (s *Sound) LowPass() (float32, error) {
	if err := s.usable(); err != nil {
		return 0, err
	}
	return s.defaults.lowPass, nil
}

// SetLowPass sets the default low-pass gain in [0,1], 1 meaning unfiltered.
func (s *Sound) SetLowPass(gain float32) error {
	if err := s.usable(); err != nil {
		return err
	}
	s.defaults.lowPass = clamp01(gain)
	return nil
}

func (s *Sound) Pan() (float32, error) {
	if err := s.usable(); err != nil {
		return 0, err
	}
	return s.defaults.pan, nil
}

func (s *Sound) SetPan(pan float32) error {
	if err := s.usable(); err != nil {
		return err
	}
	s.defaults.pan = clampPan(pan)
	return nil
}

func (s *Sound) Mode() (Mode, error) {
	if err := s.usable(); err != nil {
		return 0, err
	}
	return s.defaults.mode(), nil
}

func (s *Sound) SetMode(m Mode) error {
	if err := s.usable(); err != nil {
		return err
	}
	s.defaults.setMode(m)
	return nil
}

func (s *Sound) Is3D() (bool, error) {
	if err := s.usable(); err != nil {
		return false, err
	}
	return s.defaults.is3D, nil
}

func (s *Sound) Set3D(enabled bool) error {
	if err := s.usable(); err != nil {
		return err
	}
	s.defaults.is3D = enabled
	return nil
}

// Spatial returns the default 3D position/velocity pair.
func (s *Sound) Spatial() (Spatial, error) {
	if err := s.usable(); err != nil {
		return Spatial{}, err
	}
	return s.defaults.spatial, nil
}

// SetSpatial sets position and velocity in one update.
func (s *Sound) SetSpatial(sp Spatial) error {
	if err := s.usable(); err != nil {
		return err
	}
	s.defaults.spatial = sp
	return nil
}

// SetPosition3D updates the default position, preserving velocity.
func (s *Sound) SetPosition3D(pos Vector3) error {
	if err := s.usable(); err != nil {
		return err
	}
	s.defaults.spatial.Position = pos
	return nil
}

// SetVelocity updates the default velocity, preserving position.
func (s *Sound) SetVelocity(vel Vector3) error {
	if err := s.usable(); err != nil {
		return err
	}
	s.defaults.spatial.Velocity = vel
	return nil
}

func (s *Sound) DistanceRange() (DistanceRange, error) {
	if err := s.usable(); err != nil {
		return DistanceRange{}, err
	}
	return s.defaults.distance, nil
}

// SetDistanceRange sets min and max attenuation distance in one update.
func (s *Sound) SetDistanceRange(rng DistanceRange) error {
	if err := s.usable(); err != nil {
		return err
	}
	s.defaults.distance = rng
	return nil
}
