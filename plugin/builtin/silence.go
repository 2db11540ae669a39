package builtin

import "github.com/shaban/sonora/plugin"

// Silence ignores all MIDI and zeroes both output buffers every call.
type Silence struct{}

// NewSilence returns a Silence plugin instance.
func NewSilence() *Silence { return &Silence{} }

func (s *Silence) Process(_ []plugin.TimedMidi, outLeft, outRight []float32) {
	n := len(outLeft)
	if len(outRight) < n {
		n = len(outRight)
	}
	for i := 0; i < n; i++ {
		outLeft[i] = 0
		outRight[i] = 0
	}
}
