package audio

// Output renders mixed blocks of interleaved stereo float32 frames. The
// engine writes one block per BufferLength frames from Update; backpressure
// comes from Free.
type Output interface {
	Start() error
	// Write queues one mixed block. The block is reused by the engine after
	// the call returns.
	Write(block []float32) error
	// Free reports how many frames can be queued without dropping.
	Free() int
	Close() error
}

// NullOutput discards everything it is given. It stands in for a real
// device in tests and headless runs; with Capture set it keeps the mixed
// blocks for inspection.
type NullOutput struct {
	Capture bool

	started bool
	frames  int
	blocks  [][]float32
}

func (o *NullOutput) Start() error {
	o.started = true
	return nil
}

func (o *NullOutput) Write(block []float32) error {
	o.frames += len(block) / 2
	if o.Capture {
		cp := make([]float32, len(block))
		copy(cp, block)
		o.blocks = append(o.blocks, cp)
	}
	return nil
}

func (o *NullOutput) Free() int {
	return 1 << 20
}

func (o *NullOutput) Close() error {
	o.started = false
	return nil
}

// Frames reports the total number of stereo frames written so far.
func (o *NullOutput) Frames() int { return o.frames }

// Blocks returns the captured mix blocks. Nil unless Capture is set.
func (o *NullOutput) Blocks() [][]float32 { return o.blocks }
