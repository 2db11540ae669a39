package audio

import (
	"testing"

	"github.com/shaban/sonora/audio/queue"
	"github.com/shaban/sonora/plugin"
)

type writesConstant struct {
	value float32
}

func (w writesConstant) Process(_ []plugin.TimedMidi, outLeft, outRight []float32) {
	for i := range outLeft {
		outLeft[i] = w.value
	}
	for i := range outRight {
		outRight[i] = w.value
	}
}

func TestProcess_EmptyProcessor_ZeroesOutput(t *testing.T) {
	p := New(nil, nil)
	left := []float32{1.0, 2.0}
	right := []float32{3.0, 4.0}

	p.Process(nil, left, right)

	want := []float32{0, 0}
	assertEqual(t, left, want)
	assertEqual(t, right, want)
}

func TestProcess_MixesTracksByVolume(t *testing.T) {
	q := queue.New(8)
	p := New(q, nil)

	q.Push(queue.AddTrack{BufferSize: 2, Volume: 0.5, Plugins: []plugin.Instance{writesConstant{1.0}}})
	q.Push(queue.AddTrack{BufferSize: 2, Volume: 0.25, Plugins: []plugin.Instance{writesConstant{1.0}}})

	left := make([]float32, 2)
	right := make([]float32, 2)
	p.Process(nil, left, right)

	want := []float32{0.75, 0.75}
	assertEqual(t, left, want)
	assertEqual(t, right, want)
}

func TestProcess_DeleteTrack(t *testing.T) {
	q := queue.New(8)
	p := New(q, nil)

	q.Push(queue.AddTrack{BufferSize: 2, Volume: 0.5, Plugins: []plugin.Instance{writesConstant{1.0}}})
	q.Push(queue.AddTrack{BufferSize: 2, Volume: 0.25, Plugins: []plugin.Instance{writesConstant{1.0}}})
	q.Push(queue.DeleteTrack{IndexInAudioTracks: 0})

	left := make([]float32, 2)
	right := make([]float32, 2)
	p.Process(nil, left, right)

	want := []float32{0.25, 0.25}
	assertEqual(t, left, want)
	assertEqual(t, right, want)
}

func TestProcess_SingleTrackVolume(t *testing.T) {
	q := queue.New(8)
	p := New(q, nil)
	q.Push(queue.AddTrack{BufferSize: 2, Volume: 0.5, Plugins: []plugin.Instance{writesConstant{1.0}}})

	left := make([]float32, 2)
	right := make([]float32, 2)
	p.Process(nil, left, right)

	assertEqual(t, left, []float32{0.5, 0.5})
	assertEqual(t, right, []float32{0.5, 0.5})
}

func TestProcess_MasterVolume(t *testing.T) {
	q := queue.New(8)
	p := New(q, nil)
	p.SetVolume(2.0)
	q.Push(queue.AddTrack{BufferSize: 2, Volume: 1.0, Plugins: []plugin.Instance{writesConstant{1.0}}})

	left := make([]float32, 2)
	right := make([]float32, 2)
	p.Process(nil, left, right)

	assertEqual(t, left, []float32{2.0, 2.0})
	assertEqual(t, right, []float32{2.0, 2.0})
}

func TestProcess_UnequalOutputLengths_UsesShorterPrefix(t *testing.T) {
	q := queue.New(8)
	p := New(q, nil)
	q.Push(queue.AddTrack{BufferSize: 3, Volume: 1.0, Plugins: []plugin.Instance{writesConstant{1.0}}})

	left := make([]float32, 3)
	right := make([]float32, 2)
	p.Process(nil, left, right)

	assertEqual(t, right, []float32{1.0, 1.0})
	if left[2] != 0 {
		t.Fatalf("expected trailing frame beyond min length to stay untouched/zero, got %v", left[2])
	}
}

func assertEqual(t *testing.T, got, want []float32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %v want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v want %v", i, got, want)
		}
	}
}
