package audio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chime/audio"
	"chime/internal/audiotest"
)

func TestSoundDefaults(t *testing.T) {
	t.Parallel()

	dec := &audiotest.Decoder{TotalFrames: 24000, Rate: 48000, Channels: 2}
	eng, _ := newTestEngine(t, audio.Config{}, dec)
	snd := loadTestSound(t, eng)

	assert.Equal(t, "click.wav", snd.Name())
	assert.False(t, snd.Streamed())
	assert.Equal(t, 48000, snd.SampleRate())
	assert.Equal(t, 2, snd.Channels())

	length, err := snd.Length()
	require.NoError(t, err)
	assert.InDelta(t, 500, length, 0.1)

	vol, err := snd.Volume()
	require.NoError(t, err)
	assert.EqualValues(t, 1, vol)

	pitch, err := snd.Pitch()
	require.NoError(t, err)
	assert.EqualValues(t, 1, pitch)

	loops, err := snd.Loops()
	require.NoError(t, err)
	assert.Zero(t, loops)

	rng, err := snd.DistanceRange()
	require.NoError(t, err)
	assert.Equal(t, audio.DistanceRange{Min: 1, Max: 10000}, rng)
}

func TestStreamedSoundLength(t *testing.T) {
	t.Parallel()

	dec := &audiotest.Decoder{TotalFrames: 24000}
	eng, _ := newTestEngine(t, audio.Config{}, dec)

	snd, err := eng.LoadStreamedSound("click.wav")
	require.NoError(t, err)
	assert.True(t, snd.Streamed())

	// Stream length is unknown before decoding.
	length, err := snd.Length()
	require.NoError(t, err)
	assert.Zero(t, length)
}

func TestReleaseStopsChannelsThenFrees(t *testing.T) {
	t.Parallel()

	dec := &audiotest.Decoder{TotalFrames: 48000}
	eng, _ := newTestEngine(t, audio.Config{}, dec)
	snd := loadTestSound(t, eng)

	ch, err := eng.Play(snd)
	require.NoError(t, err)

	require.NoError(t, snd.Release())
	assert.Equal(t, audio.StateStopped, ch.State())

	require.ErrorIs(t, snd.Release(), audio.ErrSoundReleased)
	require.ErrorIs(t, snd.SetVolume(0.5), audio.ErrSoundReleased)
	_, err = snd.Volume()
	require.ErrorIs(t, err, audio.ErrSoundReleased)
	_, err = eng.Play(snd)
	require.ErrorIs(t, err, audio.ErrSoundReleased)
}

// Each streamed load owns an independent buffer: releasing one must not
// break playback of the other.
func TestStreamedLoadsAreIndependent(t *testing.T) {
	t.Parallel()

	dec := &audiotest.Decoder{TotalFrames: 48000}
	eng, _ := newTestEngine(t, audio.Config{}, dec)

	first, err := eng.LoadStreamedSound("click.wav")
	require.NoError(t, err)
	second, err := eng.LoadStreamedSound("click.wav")
	require.NoError(t, err)

	require.NoError(t, first.Release())

	ch, err := eng.Play(second)
	require.NoError(t, err)
	require.NoError(t, eng.Update())
	assert.True(t, ch.IsPlaying())
}

// Every playback of a streamed sound opens its own decoder over the
// retained buffer; looping reopens it.
func TestStreamPlaybackOpensFreshDecoders(t *testing.T) {
	t.Parallel()

	dec := &audiotest.Decoder{TotalFrames: 48000}
	eng, _ := newTestEngine(t, audio.Config{}, dec)

	snd, err := eng.LoadStreamedSound("click.wav")
	require.NoError(t, err)
	probes := dec.Decodes // format probe at load

	_, err = eng.Play(snd)
	require.NoError(t, err)
	_, err = eng.Play(snd)
	require.NoError(t, err)

	assert.Equal(t, probes+2, dec.Decodes)
}

func TestSampleLoadDoesNotRetainDecoder(t *testing.T) {
	t.Parallel()

	dec := &audiotest.Decoder{TotalFrames: 256}
	eng, _ := newTestEngine(t, audio.Config{}, dec)
	snd := loadTestSound(t, eng)
	decodes := dec.Decodes

	// Sample sounds are fully decoded at load; playing them twice must not
	// touch the decoder again.
	_, err := eng.Play(snd)
	require.NoError(t, err)
	_, err = eng.Play(snd)
	require.NoError(t, err)
	assert.Equal(t, decodes, dec.Decodes)
}

func TestSoundModeRoundTrip(t *testing.T) {
	t.Parallel()

	dec := &audiotest.Decoder{}
	eng, _ := newTestEngine(t, audio.Config{}, dec)
	snd := loadTestSound(t, eng)

	require.NoError(t, snd.SetMode(audio.ModeLoop|audio.Mode3D))

	looping, err := snd.Looping()
	require.NoError(t, err)
	assert.True(t, looping)

	is3D, err := snd.Is3D()
	require.NoError(t, err)
	assert.True(t, is3D)

	mode, err := snd.Mode()
	require.NoError(t, err)
	assert.Equal(t, audio.ModeLoop|audio.Mode3D, mode)
}
