package audio

import "github.com/shaban/sonora/plugin"

// AudioTrack is the audio-thread side of a track: an ordered plugin
// chain, a volume, and scratch buffers allocated once and never resized.
type AudioTrack struct {
	plugins   []plugin.Instance
	volume    float32
	scratchL  []float32
	scratchR  []float32
}

// NewAudioTrack builds an AudioTrack with pre-allocated scratch buffers
// of the negotiated buffer size.
func NewAudioTrack(bufferSize int, volume float32, plugins []plugin.Instance) *AudioTrack {
	return &AudioTrack{
		plugins:  plugins,
		volume:   volume,
		scratchL: make([]float32, bufferSize),
		scratchR: make([]float32, bufferSize),
	}
}

// process drives the plugin chain in order; each plugin overwrites the
// track's scratch buffers, so later plugins see earlier plugins' output.
// The last plugin in the chain determines the track's audio.
func (t *AudioTrack) process(midi []plugin.TimedMidi) {
	for _, p := range t.plugins {
		p.Process(midi, t.scratchL, t.scratchR)
	}
}
