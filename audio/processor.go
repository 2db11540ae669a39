// Package audio implements the realtime mixing graph: tracks, plugin
// chains, and the stereo master bus, invoked once per buffer by an I/O
// backend.
package audio

import (
	"github.com/shaban/sonora/audio/queue"
	"github.com/shaban/sonora/plugin"
)

// Disposed carries a removed AudioTrack back off the audio thread so its
// plugin instances (and their destructors) run on the controller side
// instead of inside a realtime callback (spec.md §5's recommended
// design).
type Disposed struct {
	Track *AudioTrack
}

// Processor owns the ordered vector of AudioTracks and the master
// volume. It drains the command queue at the start of every callback,
// then renders: never blocks, never allocates on the render path.
type Processor struct {
	tracks []*AudioTrack
	volume float32

	commands *queue.Queue
	disposed chan Disposed
}

// New returns a Processor that drains cmds before each Process call and
// best-effort forwards removed tracks onto disposed (non-blocking send;
// disposed may be nil to drop removed tracks without forwarding).
func New(cmds *queue.Queue, disposed chan Disposed) *Processor {
	return &Processor{
		tracks:   make([]*AudioTrack, 0, 1024),
		volume:   1.0,
		commands: cmds,
		disposed: disposed,
	}
}

// SetVolume sets the master volume. Not part of spec.md's operation set
// but harmless to expose; no caller in this module uses it from the
// control side today.
func (p *Processor) SetVolume(v float32) { p.volume = v }

// Process is the single per-buffer entry point. It drains every command
// currently available, then renders one buffer of audio into outLeft and
// outRight.
func (p *Processor) Process(midi []plugin.TimedMidi, outLeft, outRight []float32) {
	if p.commands != nil {
		p.commands.Drain(p.apply)
	}

	n := len(outLeft)
	if len(outRight) < n {
		n = len(outRight)
	}
	for i := 0; i < n; i++ {
		outLeft[i] = 0
		outRight[i] = 0
	}

	for _, t := range p.tracks {
		t.process(midi)
		gain := t.volume * p.volume
		for i := 0; i < n; i++ {
			outLeft[i] += t.scratchL[i] * gain
			outRight[i] += t.scratchR[i] * gain
		}
	}
}

func (p *Processor) apply(cmd queue.Command) {
	switch c := cmd.(type) {
	case queue.AddTrack:
		p.tracks = append(p.tracks, NewAudioTrack(c.BufferSize, c.Volume, c.Plugins))
	case queue.DeleteTrack:
		p.removeTrack(c.IndexInAudioTracks)
	}
}

func (p *Processor) removeTrack(index int) {
	if index < 0 || index >= len(p.tracks) {
		return
	}
	removed := p.tracks[index]
	p.tracks = append(p.tracks[:index], p.tracks[index+1:]...)

	if p.disposed == nil {
		return
	}
	select {
	case p.disposed <- Disposed{Track: removed}:
	default:
		// Best-effort: if the controller isn't keeping up with disposal,
		// the track is dropped here rather than blocking the audio thread.
	}
}

// TrackCount reports the number of tracks currently in the render graph.
// Ambient, for metrics only — not a spec.md operation.
func (p *Processor) TrackCount() int { return len(p.tracks) }
