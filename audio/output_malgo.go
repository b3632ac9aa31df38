package audio

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gen2brain/malgo"
)

const bytesPerFrame = 2 * 4 // stereo float32

// malgoOutput drives a miniaudio playback device. Mixed blocks are staged
// in a bounded frame buffer; the device data callback drains it frame by
// frame on miniaudio's thread and plays silence on underrun.
type malgoOutput struct {
	ctx    *malgo.AllocatedContext
	device *malgo.Device
	buf    *frameBuffer
	raw    []byte
}

func newMalgoOutput(sampleRate, bufferLength, bufferCount int) (*malgoOutput, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
	})
	if err != nil {
		return nil, fmt.Errorf("audio: init context: %w", err)
	}

	out := &malgoOutput{
		ctx: ctx,
		buf: newFrameBuffer(bufferLength * bufferCount * bytesPerFrame),
		raw: make([]byte, bufferLength*bytesPerFrame),
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = 2
	deviceConfig.SampleRate = uint32(sampleRate)
	deviceConfig.PerformanceProfile = malgo.LowLatency
	deviceConfig.PeriodSizeInFrames = uint32(bufferLength)
	deviceConfig.Alsa.NoMMap = 1

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: func(output, _ []byte, frameCount uint32) {
			if !out.buf.ReadFrame(output) {
				for i := range output {
					output[i] = 0
				}
			}
		},
	})
	if err != nil {
		ctx.Uninit()
		ctx.Free()
		return nil, fmt.Errorf("audio: init device: %w", err)
	}

	out.device = device
	return out, nil
}

func (o *malgoOutput) Start() error {
	if err := o.device.Start(); err != nil {
		return fmt.Errorf("audio: start device: %w", err)
	}
	return nil
}

func (o *malgoOutput) Write(block []float32) error {
	if len(block)*4 > len(o.raw) {
		o.raw = make([]byte, len(block)*4)
	}
	raw := o.raw[:len(block)*4]
	for i, s := range block {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(s))
	}
	o.buf.Write(raw)
	return nil
}

func (o *malgoOutput) Free() int {
	return (o.buf.Cap() - o.buf.Len()) / bytesPerFrame
}

func (o *malgoOutput) Close() error {
	o.device.Uninit()
	o.ctx.Uninit()
	o.ctx.Free()
	return nil
}
