// Package plugin defines the realtime contract honored by every plugin
// instance driven from the audio thread.
package plugin

import (
	"gitlab.com/gomidi/midi/v2"
)

// TimedMidi is a single MIDI message tagged with the frame offset, within
// the current buffer, at which it should be considered to occur.
type TimedMidi struct {
	Frame   int
	Message midi.Message
}

// Instance is the capability set a plugin honors on the audio thread:
// given MIDI sorted by Frame and two equal-length stereo buffers, it
// writes its output into both. Implementations must not allocate, block,
// perform I/O, or take a contended lock inside Process, and must ignore
// midi entries whose Frame falls outside [0, len(outLeft)).
type Instance interface {
	Process(midi []TimedMidi, outLeft, outRight []float32)
}

// Func adapts a plain function into an Instance, for plugins with no
// internal state.
type Func func(midi []TimedMidi, outLeft, outRight []float32)

func (f Func) Process(midi []TimedMidi, outLeft, outRight []float32) { f(midi, outLeft, outRight) }
