// Package ioadapter defines the contract an I/O backend honors to drive
// the mixing core from hardware (or simulated) audio buffers, and
// supplies a deterministic software backend used by tests and by
// cmd/sonora's default run mode.
package ioadapter

import (
	"context"
	"time"

	"github.com/shaban/sonora/audio"
	"github.com/shaban/sonora/plugin"
)

// Backend owns the audio thread: it must gather MIDI arriving during
// each hardware buffer into a pre-allocated, frame-sorted scratch slice,
// then invoke Processor.Process with freshly prepared buffers of
// BufferSize() length. BufferSize() must not change after RunProcessLoop
// starts: Processor tracks pre-allocate scratch to that size.
type Backend interface {
	Name() string
	BufferSize() int
	SampleRate() int
	RunProcessLoop(ctx context.Context, proc *audio.Processor) error
}

// DummyBackend drives the Processor on a software clock instead of real
// hardware: it never produces MIDI and discards the rendered audio. It
// exists so the engine can be exercised deterministically, matching
// original_source's dummy_io.rs collaborator.
type DummyBackend struct {
	bufferSize int
	sampleRate int
	period     time.Duration

	left, right []float32
}

// NewDummyBackend builds a backend that calls Process once per period,
// or as fast as possible if period is zero (useful in tests).
func NewDummyBackend(bufferSize, sampleRate int, period time.Duration) *DummyBackend {
	return &DummyBackend{
		bufferSize: bufferSize,
		sampleRate: sampleRate,
		period:     period,
		left:       make([]float32, bufferSize),
		right:      make([]float32, bufferSize),
	}
}

func (d *DummyBackend) Name() string    { return "dummy" }
func (d *DummyBackend) BufferSize() int { return d.bufferSize }
func (d *DummyBackend) SampleRate() int { return d.sampleRate }

// RunProcessLoop renders buffers until ctx is canceled. MIDI input is
// always empty: DummyBackend has no real input device to gather from.
func (d *DummyBackend) RunProcessLoop(ctx context.Context, proc *audio.Processor) error {
	var ticker *time.Ticker
	var tick <-chan time.Time
	if d.period > 0 {
		ticker = time.NewTicker(d.period)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		proc.Process([]plugin.TimedMidi{}, d.left, d.right)

		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}
	}
}
