package builtin

import (
	"math"

	"github.com/shaban/sonora/plugin"
)

const twoPi = 2 * math.Pi

// Sine is a monophonic, last-note-wins sine oscillator. It maintains a
// single phase accumulator across calls and takes its sample rate as a
// builder parameter so it can never disagree with the I/O backend that
// drives it (see the sample-rate Open Question in the design notes).
type Sine struct {
	sampleRate float64

	phase  float64
	deltaT float64

	holding bool
	channel uint8
	key     uint8
}

// NewSine builds a Sine voice for the given sample rate in Hz.
func NewSine(sampleRate float64) *Sine {
	return &Sine{sampleRate: sampleRate}
}

func (s *Sine) Process(midi []plugin.TimedMidi, outLeft, outRight []float32) {
	n := len(outLeft)
	if len(outRight) < n {
		n = len(outRight)
	}

	ev := 0
	for i := 0; i < n; i++ {
		for ev < len(midi) && midi[ev].Frame <= i {
			if midi[ev].Frame >= 0 {
				s.apply(midi[ev])
			}
			ev++
		}

		sample := float32(math.Sin(s.phase))
		outLeft[i] = sample
		outRight[i] = sample

		s.phase += s.deltaT
		if s.phase >= twoPi {
			s.phase = math.Mod(s.phase, twoPi)
		}
	}
}

func (s *Sine) apply(t plugin.TimedMidi) {
	var ch, key, vel uint8
	if t.Message.GetNoteOn(&ch, &key, &vel) {
		s.holding = true
		s.channel = ch
		s.key = key
		s.deltaT = twoPi * noteToFrequency(key) / s.sampleRate
		return
	}
	if t.Message.GetNoteOff(&ch, &key) {
		if s.holding && ch == s.channel && key == s.key {
			s.holding = false
			s.deltaT = 0
			s.phase = 0
		}
	}
}

// noteToFrequency converts a MIDI note number to its equal-temperament
// frequency, A4 (note 69) tuned to 440Hz.
func noteToFrequency(note uint8) float64 {
	return 440.0 * math.Pow(2, (float64(note)-69.0)/12.0)
}
