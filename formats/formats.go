// Package formats wires the bundled decoders into a registry ready for
// audio.Config.
package formats

import (
	"chime/audio"
	"chime/formats/mp3"
	"chime/formats/opus"
	"chime/formats/vorbis"
	"chime/formats/wav"
)

// DefaultRegistry returns a registry with every bundled format registered.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(".wav", wav.Decoder{})
	r.Register(".mp3", mp3.Decoder{})
	r.Register(".ogg", vorbis.Decoder{})
	r.Register(".oga", vorbis.Decoder{})
	r.Register(".opus", opus.Decoder{})
	return r
}
