package builtin

import (
	"math"
	"testing"

	"gitlab.com/gomidi/midi/v2"

	"github.com/shaban/sonora/plugin"
)

func TestSine_NoteOn_A4_MatchesExpectedPhase(t *testing.T) {
	const sampleRate = 44100.0
	s := NewSine(sampleRate)

	events := []plugin.TimedMidi{
		{Frame: 0, Message: midi.NoteOn(0, 69, 100)}, // A4
	}
	left := make([]float32, 4)
	right := make([]float32, 4)
	s.Process(events, left, right)

	delta := twoPi * 440.0 / sampleRate
	want := []float32{
		float32(math.Sin(0)),
		float32(math.Sin(delta)),
		float32(math.Sin(2 * delta)),
		float32(math.Sin(3 * delta)),
	}
	for i := range want {
		if left[i] != want[i] {
			t.Fatalf("frame %d: got %v want %v", i, left[i], want[i])
		}
		if right[i] != left[i] {
			t.Fatalf("frame %d: right %v != left %v", i, right[i], left[i])
		}
	}
}

func TestSine_NoteOff_ResetsPhaseAndSilences(t *testing.T) {
	const sampleRate = 44100.0
	s := NewSine(sampleRate)

	left := make([]float32, 4)
	right := make([]float32, 4)
	s.Process([]plugin.TimedMidi{{Frame: 0, Message: midi.NoteOn(0, 69, 100)}}, left, right)

	events := []plugin.TimedMidi{
		{Frame: 1, Message: midi.NoteOff(0, 69)},
	}
	left2 := make([]float32, 4)
	right2 := make([]float32, 4)
	s.Process(events, left2, right2)

	if left2[1] != 0 || left2[2] != 0 || left2[3] != 0 {
		t.Fatalf("expected silence after note off, got %v", left2)
	}
	_ = right2
}

func TestSine_IgnoresOutOfRangeAndDuplicateFrames(t *testing.T) {
	s := NewSine(44100.0)
	events := []plugin.TimedMidi{
		{Frame: 0, Message: midi.NoteOn(0, 69, 100)},
		{Frame: 0, Message: midi.NoteOn(0, 69, 100)}, // duplicate, should not panic or misbehave
		{Frame: 100, Message: midi.NoteOff(0, 69)},   // out of range for a 4-frame buffer
	}
	left := make([]float32, 4)
	right := make([]float32, 4)
	s.Process(events, left, right)
	if left[0] != 0 {
		t.Fatalf("expected first sample to be 0, got %v", left[0])
	}
}
