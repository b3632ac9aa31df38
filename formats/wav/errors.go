package wav

import "errors"

var (
	ErrNotWavFile          = errors.New("wav: not a RIFF/WAVE file")
	ErrOnlyPCMSupported    = errors.New("wav: only PCM data supported")
	ErrUnsupportedBitDepth = errors.New("wav: unsupported bit depth")
)
