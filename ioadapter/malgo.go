package ioadapter

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gen2brain/malgo"

	"github.com/shaban/sonora/audio"
	"github.com/shaban/sonora/plugin"
)

// MalgoBackend drives a real playback device via miniaudio (through the
// pure-Go purego bindings in gen2brain/malgo — no cgo toolchain
// required). It is a genuine hardware collaborator, but is never started
// by cmd/sonora automatically: construct it explicitly when real output
// is wanted.
type MalgoBackend struct {
	bufferSize int
	sampleRate int

	scratchL, scratchR []float32
}

// NewMalgoBackend prepares (but does not open) a stereo float32 playback
// backend at the given buffer size and sample rate.
func NewMalgoBackend(bufferSize, sampleRate int) *MalgoBackend {
	return &MalgoBackend{
		bufferSize: bufferSize,
		sampleRate: sampleRate,
		scratchL:   make([]float32, bufferSize),
		scratchR:   make([]float32, bufferSize),
	}
}

func (m *MalgoBackend) Name() string    { return "malgo" }
func (m *MalgoBackend) BufferSize() int { return m.bufferSize }
func (m *MalgoBackend) SampleRate() int { return m.sampleRate }

// RunProcessLoop opens the default playback device and renders into it
// until ctx is canceled.
func (m *MalgoBackend) RunProcessLoop(ctx context.Context, proc *audio.Processor) error {
	malgoCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("malgo init context: %w", err)
	}
	defer func() {
		_ = malgoCtx.Uninit()
		malgoCtx.Free()
	}()

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = 2
	deviceConfig.SampleRate = uint32(m.sampleRate)
	deviceConfig.PeriodSizeInFrames = uint32(m.bufferSize)

	onSamples := func(output, _ []byte, frameCount uint32) {
		n := int(frameCount)
		if n > m.bufferSize {
			n = m.bufferSize
		}
		proc.Process([]plugin.TimedMidi{}, m.scratchL[:n], m.scratchR[:n])

		for i := 0; i < n; i++ {
			off := i * 8
			binary.LittleEndian.PutUint32(output[off:], math.Float32bits(m.scratchL[i]))
			binary.LittleEndian.PutUint32(output[off+4:], math.Float32bits(m.scratchR[i]))
		}
	}

	device, err := malgo.InitDevice(malgoCtx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: onSamples,
	})
	if err != nil {
		return fmt.Errorf("malgo init device: %w", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return fmt.Errorf("malgo start device: %w", err)
	}
	defer func() { _ = device.Stop() }()

	<-ctx.Done()
	return ctx.Err()
}
