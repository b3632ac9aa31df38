package audio

import "errors"

var (
	// ErrNotInitialized is returned by operations on a zero-value Engine.
	ErrNotInitialized = errors.New("audio: engine not initialized")

	// ErrClosed is returned by any operation after Engine.Close.
	ErrClosed = errors.New("audio: engine closed")

	// ErrSoundReleased is returned by any operation on a released Sound.
	ErrSoundReleased = errors.New("audio: sound released")

	// ErrNilSound is returned by Play and PlayPaused on a nil Sound.
	ErrNilSound = errors.New("audio: nil sound")

	// ErrChannelStopped is returned by parameter access on a stopped Channel.
	// State queries (State, IsPlaying, IsPaused) stay valid after Stop.
	ErrChannelStopped = errors.New("audio: channel stopped")

	// ErrNoFreeChannels is returned by Play when MaxChannels are live.
	ErrNoFreeChannels = errors.New("audio: no free channels")

	// ErrGroupExists is returned when creating a channel group whose name is taken.
	ErrGroupExists = errors.New("audio: channel group exists")

	// ErrUnsupportedFormat is returned when no decoder matches a file extension.
	ErrUnsupportedFormat = errors.New("audio: unsupported format")
)
