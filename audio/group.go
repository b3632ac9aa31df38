package audio

// Group is a named bus. A channel assigned to a group has its gain
// multiplied by the group's, so a whole category of sounds can be faded or
// muted at once.
type Group struct {
	eng    *Engine
	name   string
	volume float32
	muted  bool
}

func (g *Group) Name() string { return g.name }

func (g *Group) Volume() (float32, error) {
	if err := g.eng.usable(); err != nil {
		return 0, err
	}
	return g.volume, nil
}

func (g *Group) SetVolume(volume float32) error {
	if err := g.eng.usable(); err != nil {
		return err
	}
	g.volume = clamp01(volume)
	return nil
}

func (g *Group) Muted() (bool, error) {
	if err := g.eng.usable(); err != nil {
		return false, err
	}
	return g.muted, nil
}

func (g *Group) SetMuted(muted bool) error {
	if err := g.eng.usable(); err != nil {
		return err
	}
	g.muted = muted
	return nil
}

func (g *Group) gain() float32 {
	if g.muted {
		return 0
	}
	return g.volume
}
