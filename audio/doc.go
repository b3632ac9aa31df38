// Package audio is a game-oriented playback layer over a native output
// device.
//
// An Engine owns the device and a fixed pool of playback channels. Sounds
// are loaded through a decoder registry either fully into memory or as
// streams that decode incrementally from a retained buffer. Playing a
// sound spawns a Channel that copies the sound's default parameters at
// that moment and then diverges freely: later changes on either side do
// not propagate to the other.
//
// The engine is driven from the host's update loop: call Update once per
// tick to pump mixed blocks towards the device. The package introduces no
// concurrency of its own; only the output backend's callback runs on
// another thread, isolated behind a bounded frame buffer.
package audio
