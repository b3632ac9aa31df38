package audio

import (
	"bytes"
	"io"
	"sync"
)

// frameBuffer is a bounded FIFO of mixed audio frames. The engine fills it
// from Update on the host thread; the device callback drains it on the
// backend's own thread. When full, the oldest data is dropped.
type frameBuffer struct {
	mtx           sync.Mutex
	buf           bytes.Buffer
	maxBufferSize int
}

func newFrameBuffer(maxBufferSize int) *frameBuffer {
	return &frameBuffer{maxBufferSize: maxBufferSize}
}

func (f *frameBuffer) Write(data []byte) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if len(data) > f.maxBufferSize {
		data = data[len(data)-f.maxBufferSize:]
	}

	if f.buf.Len()+len(data) > f.maxBufferSize {
		excess := f.buf.Len() + len(data) - f.maxBufferSize
		f.buf.Next(excess)
	}
	f.buf.Write(data)
}

// ReadFrame fills dst with one frame, or leaves it untouched when less than
// a full frame is buffered.
func (f *frameBuffer) ReadFrame(dst []byte) bool {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.buf.Len() < len(dst) {
		return false
	}
	_, _ = io.ReadFull(&f.buf, dst)
	return true
}

func (f *frameBuffer) Len() int {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return f.buf.Len()
}

func (f *frameBuffer) Cap() int {
	return f.maxBufferSize
}
