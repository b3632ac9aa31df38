package audio

// LoopInfinite is the loop count sentinel for endless playback.
const LoopInfinite = -1

// Mode is the playback mode bitmask derived from a sound's or channel's
// loop count and 3D flag.
type Mode uint32

const (
	ModeLoop Mode = 1 << iota
	Mode3D
)

// params is the full set of playback parameters a channel copies from its
// sound at spawn. A channel and its originating sound diverge freely after
// that copy.
type params struct {
	loops    int
	volume   float32
	pitch    float32
	lowPass  float32
	pan      float32
	is3D     bool
	spatial  Spatial
	distance DistanceRange
}

func defaultParams() params {
	return params{
		loops:    0,
		volume:   1,
		pitch:    1,
		lowPass:  1,
		pan:      0,
		is3D:     false,
		distance: DistanceRange{Min: 1, Max: 10000},
	}
}

func (p *params) mode() Mode {
	var m Mode
	if p.loops != 0 {
		m |= ModeLoop
	}
	if p.is3D {
		m |= Mode3D
	}
	return m
}

// setMode maps the mode bits back onto loop count and 3D flag. Turning the
// loop bit on when the count is zero selects infinite looping.
func (p *params) setMode(m Mode) {
	p.is3D = m&Mode3D != 0
	if m&ModeLoop == 0 {
		p.loops = 0
	} else if p.loops == 0 {
		p.loops = LoopInfinite
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampPan(v float32) float32 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
