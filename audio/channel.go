package audio

// State of a playback channel.
type State uint8

const (
	StatePlaying State = iota
	StatePaused
	StateStopped
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// Channel is one live playback instance of a Sound. Every parameter is
// copied from the sound at spawn; the channel and the sound diverge freely
// afterwards. Stopped is terminal: parameter access on a stopped channel
// returns ErrChannelStopped, only state queries remain valid.
type Channel struct {
	eng    *Engine
	snd    *Sound
	group  *Group
	state  State
	params params

	reader     frameReader
	win        []float32
	readBuf    []float32
	cursor     float64
	passFrames float64
	drained    bool
	filt       [2]float32
}

// Sound returns the asset this channel was spawned from.
func (c *Channel) Sound() *Sound { return c.snd }

// State returns the lifecycle state. Valid on stopped channels.
func (c *Channel) State() State { return c.state }

// IsPlaying reports whether the channel is actively playing. Valid on
// stopped channels.
func (c *Channel) IsPlaying() bool { return c.state == StatePlaying }

// IsPaused reports whether the channel is paused. Valid on stopped channels.
func (c *Channel) IsPaused() bool { return c.state == StatePaused }

// Pause suspends playback. Pausing a paused channel is a no-op.
func (c *Channel) Pause() error {
	if err := c.usable(); err != nil {
		return err
	}
	c.state = StatePaused
	return nil
}

// Resume continues playback. Resuming a playing channel is a no-op.
func (c *Channel) Resume() error {
	if err := c.usable(); err != nil {
		return err
	}
	c.state = StatePlaying
	return nil
}

// Stop ends playback and releases the channel slot. Terminal: the channel
// cannot be restarted, and any further operation but a state query errors.
func (c *Channel) Stop() error {
	if err := c.usable(); err != nil {
		return err
	}
	c.finish()
	return nil
}

func (c *Channel) finish() {
	c.state = StateStopped
	if c.reader != nil {
		_ = c.reader.close()
		c.reader = nil
	}
	c.win = nil
	c.eng.releaseSlot(c)
}

func (c *Channel) usable() error {
	if c.state == StateStopped {
		return ErrChannelStopped
	}
	return c.eng.usable()
}

func (c *Channel) Loops() (int, error) {
	if err := c.usable(); err != nil {
		return 0, err
	}
	return c.params.loops, nil
}

// SetLoops sets the remaining loop count. Zero finishes the current pass,
// LoopInfinite repeats forever, a positive count adds that many passes.
func (c *Channel) SetLoops(loops int) error {
	if err := c.usable(); err != nil {
		return err
	}
	c.params.loops = loops
	if loops != 0 {
		c.drained = false
	}
	return nil
}

// Looping reports whether the loop count is the infinite sentinel.
func (c *Channel) Looping() (bool, error) {
	if err := c.usable(); err != nil {
		return false, err
	}
	return c.params.loops == LoopInfinite, nil
}

func (c *Channel) SetLooping(looping bool) error {
	if looping {
		return c.SetLoops(LoopInfinite)
	}
	return c.SetLoops(0)
}

func (c *Channel) Volume() (float32, error) {
	if err := c.usable(); err != nil {
		return 0, err
	}
	return c.params.volume, nil
}

func (c *Channel) SetVolume(volume float32) error {
	if err := c.usable(); err != nil {
		return err
	}
	c.params.volume = clamp01(volume)
	return nil
}

func (c *Channel) Pitch() (float32, error) {
	if err := c.usable(); err != nil {
		return 0, err
	}
	return c.params.pitch, nil
}

// SetPitch sets the playback rate multiplier. Values at or below zero are
// ignored.
func (c *Channel) SetPitch(pitch float32) error {
	if err := c.usable(); err != nil {
		return err
	}
	if pitch > 0 {
		c.params.pitch = pitch
	}
	return nil
}

func (c *Channel) LowPass() (float32, error) {
	if err := c.usable(); err != nil {
		return 0, err
	}
	return c.params.lowPass, nil
}

// SetLowPass sets the low-pass gain in [0,1], 1 meaning unfiltered.
func (c *Channel) SetLowPass(gain float32) error {
	if err := c.usable(); err != nil {
		return err
	}
	c.params.lowPass = clamp01(gain)
	return nil
}

func (c *Channel) Pan() (float32, error) {
	if err := c.usable(); err != nil {
		return 0, err
	}
	return c.params.pan, nil
}

// SetPan sets the stereo balance in [-1,1], -1 being hard left.
func (c *Channel) SetPan(pan float32) error {
	if err := c.usable(); err != nil {
		return err
	}
	c.params.pan = clampPan(pan)
	return nil
}

func (c *Channel) Mode() (Mode, error) {
	if err := c.usable(); err != nil {
		return 0, err
	}
	return c.params.mode(), nil
}

func (c *Channel) SetMode(m Mode) error {
	if err := c.usable(); err != nil {
		return err
	}
	c.params.setMode(m)
	if c.params.loops != 0 {
		c.drained = false
	}
	return nil
}

func (c *Channel) Is3D() (bool, error) {
	if err := c.usable(); err != nil {
		return false, err
	}
	return c.params.is3D, nil
}

func (c *Channel) Set3D(enabled bool) error {
	if err := c.usable(); err != nil {
		return err
	}
	c.params.is3D = enabled
	return nil
}

// Spatial returns the 3D position/velocity pair.
func (c *Channel) Spatial() (Spatial, error) {
	if err := c.usable(); err != nil {
		return Spatial{}, err
	}
	return c.params.spatial, nil
}

// SetSpatial sets position and velocity in one atomic update.
func (c *Channel) SetSpatial(sp Spatial) error {
	if err := c.usable(); err != nil {
		return err
	}
	c.params.spatial = sp
	return nil
}

// SetPosition3D updates the position, preserving the current velocity.
func (c *Channel) SetPosition3D(pos Vector3) error {
	if err := c.usable(); err != nil {
		return err
	}
	c.params.spatial.Position = pos
	return nil
}

// SetVelocity updates the velocity, preserving the current position.
func (c *Channel) SetVelocity(vel Vector3) error {
	if err := c.usable(); err != nil {
		return err
	}
	c.params.spatial.Velocity = vel
	return nil
}

func (c *Channel) DistanceRange() (DistanceRange, error) {
	if err := c.usable(); err != nil {
		return DistanceRange{}, err
	}
	return c.params.distance, nil
}

// SetDistanceRange sets min and max attenuation distance in one atomic
// update.
func (c *Channel) SetDistanceRange(rng DistanceRange) error {
	if err := c.usable(); err != nil {
		return err
	}
	c.params.distance = rng
	return nil
}

// Group returns the channel group, nil when ungrouped.
func (c *Channel) Group() (*Group, error) {
	if err := c.usable(); err != nil {
		return nil, err
	}
	return c.group, nil
}

func (c *Channel) SetGroup(g *Group) error {
	if err := c.usable(); err != nil {
		return err
	}
	c.group = g
	return nil
}

// TrackPosition returns the playback offset into the current pass in
// milliseconds.
func (c *Channel) TrackPosition() (float64, error) {
	if err := c.usable(); err != nil {
		return 0, err
	}
	rate := c.reader.sampleRate()
	if rate <= 0 {
		return 0, nil
	}
	return c.passFrames / float64(rate) * 1000, nil
}

// SetTrackPosition seeks to an offset in milliseconds. Sample sounds seek
// directly; streamed sounds seek forward by decoding and discarding, and
// backward by reopening the decoder first.
func (c *Channel) SetTrackPosition(ms float64) error {
	if err := c.usable(); err != nil {
		return err
	}
	if ms < 0 {
		ms = 0
	}
	target := int(ms * float64(c.reader.sampleRate()) / 1000)

	c.win = c.win[:0]
	c.cursor = 0

	if br, ok := c.reader.(*bufferReader); ok {
		br.seekFrames(target)
		c.passFrames = float64(target)
		c.drained = false
		return nil
	}

	cur := int(c.passFrames)
	if target < cur {
		if err := c.reader.reset(); err != nil {
			return err
		}
		c.drained = false
		cur = 0
	}
	if err := c.skipFrames(target - cur); err != nil {
		return err
	}
	c.passFrames = float64(target)
	return nil
}
