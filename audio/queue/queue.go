// Package queue implements the single-producer/single-consumer bounded
// command channel that carries ownership-transferring mutations from the
// controller to the audio thread.
package queue

import "github.com/shaban/sonora/plugin"

// Capacity is the fixed queue size. Sized to be effectively unbounded in
// practice: a full queue means the audio thread has stopped draining,
// which is a fatal program error, not a backpressure signal.
const Capacity = 1_000_000

// Command is a tagged variant understood by the audio thread's drain
// loop. Sending a Command transfers ownership of everything it carries;
// the sender must not touch those values again.
type Command interface {
	isCommand()
}

// AddTrack instructs the audio thread to append a new track built from
// already-constructed plugin instances, in order.
type AddTrack struct {
	BufferSize int
	Volume     float32
	Plugins    []plugin.Instance
}

// DeleteTrack instructs the audio thread to remove the track currently at
// IndexInAudioTracks, the index of this track within the audio-side
// track vector (kept in lockstep with the controller's own vector by
// ordered command delivery).
type DeleteTrack struct {
	IndexInAudioTracks int
}

func (AddTrack) isCommand()    {}
func (DeleteTrack) isCommand() {}

// Queue is a bounded channel of Command, wait-free for the producer and
// consumer in the non-full/non-empty case.
type Queue struct {
	ch chan Command
}

// New creates a queue with the given capacity (spec.md calls for
// queue.Capacity in production use; tests may use a smaller value).
func New(capacity int) *Queue {
	return &Queue{ch: make(chan Command, capacity)}
}

// Push enqueues cmd. It panics if the queue is full: this is treated as
// an unrecoverable program error, since the audio thread is expected to
// drain continuously (spec.md §4.5/§7).
func (q *Queue) Push(cmd Command) {
	select {
	case q.ch <- cmd:
	default:
		panic("sonora: command queue full, audio thread stalled")
	}
}

// Drain applies every command currently available, in order, without
// blocking. It returns the number of commands applied.
func (q *Queue) Drain(apply func(Command)) int {
	n := 0
	for {
		select {
		case cmd := <-q.ch:
			apply(cmd)
			n++
		default:
			return n
		}
	}
}

// Len reports the number of commands currently queued, for metrics only.
func (q *Queue) Len() int { return len(q.ch) }
