package ioadapter

import (
	"gitlab.com/gomidi/midi/v2"

	"github.com/rakyll/portmidi"

	"github.com/shaban/sonora/plugin"
)

// PortmidiGather polls a real MIDI input stream and turns whatever
// arrived since the last call into TimedMidi for the current buffer.
// It is a best-effort hardware collaborator: PortMidi has no notion of
// "which output frame did this arrive in", so every event gathered in a
// call is stamped at frame 0. A backend with tighter MIDI/audio clock
// correlation would refine this.
type PortmidiGather struct {
	stream *portmidi.Stream
}

// OpenPortmidiGather opens the given input device for polling. Capacity
// bounds how many raw PortMidi events are read per call.
func OpenPortmidiGather(deviceID portmidi.DeviceID, capacity int64) (*PortmidiGather, error) {
	if err := portmidi.Initialize(); err != nil {
		return nil, err
	}
	stream, err := portmidi.NewInputStream(deviceID, capacity)
	if err != nil {
		return nil, err
	}
	return &PortmidiGather{stream: stream}, nil
}

// Close releases the underlying PortMidi stream.
func (g *PortmidiGather) Close() error {
	if g.stream == nil {
		return nil
	}
	return g.stream.Close()
}

// Gather appends newly available events, frame-stamped at 0, onto scratch
// and returns the extended slice. scratch's backing array is reused
// across calls by the caller truncating it to length 0 before the next
// buffer.
func (g *PortmidiGather) Gather(scratch []plugin.TimedMidi) ([]plugin.TimedMidi, error) {
	events, err := g.stream.Read(1024)
	if err != nil {
		return scratch, err
	}
	for _, e := range events {
		if m, ok := toMidiMessage(e); ok {
			scratch = append(scratch, plugin.TimedMidi{Frame: 0, Message: m})
		}
	}
	return scratch, nil
}

func toMidiMessage(e portmidi.Event) (midi.Message, bool) {
	status := byte(e.Status)
	channel := status & 0x0f
	kind := status & 0xf0
	switch kind {
	case 0x90: // note on
		if e.Data2 == 0 {
			return midi.NoteOff(channel, byte(e.Data1)), true
		}
		return midi.NoteOn(channel, byte(e.Data1), byte(e.Data2)), true
	case 0x80: // note off
		return midi.NoteOff(channel, byte(e.Data1)), true
	default:
		return nil, false
	}
}
