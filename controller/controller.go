// Package controller is the non-realtime owner of user-visible track and
// plugin-instance metadata. It is the single producer that feeds the
// audio thread via the bounded command queue, and it holds built-but-
// unassigned plugin instances between creation and track assignment.
package controller

import (
	"sync"

	"github.com/shaban/sonora/audio"
	"github.com/shaban/sonora/audio/queue"
	"github.com/shaban/sonora/plugin"
	"github.com/shaban/sonora/registry"
)

// IntId is a non-negative, client-assigned identifier, unique within its
// entity kind (tracks and plugin instances are separate kinds).
type IntId uint64

// PluginInstanceMetadata is never mutated after creation; re-issuing the
// same id is an error.
type PluginInstanceMetadata struct {
	ID       IntId  `json:"id"`
	PluginID string `json:"plugin_id"`
}

// Track is never mutated after creation in this spec; adding a track
// whose id is already taken is rejected with TrackAlreadyExists.
type Track struct {
	ID              IntId    `json:"id"`
	Name            string   `json:"name"`
	Volume          float32  `json:"volume"`
	PluginInstances []IntId  `json:"plugin_instances"`
}

// Controller holds all user-visible state and owns the command queue's
// producer side. The zero value is not usable; construct with New.
type Controller struct {
	mu sync.Mutex

	bufferSize int

	tracks          []Track
	pluginInstances []PluginInstanceMetadata
	unassigned      map[IntId]plugin.Instance

	factory *registry.Factory
	cmds    *queue.Queue
}

// New builds a Controller and its paired Processor, wired together by a
// fresh command queue of the standard capacity, and a disposal channel
// the Controller drains in the background so removed AudioTracks (and
// the plugin instances they own) are torn down off the audio thread.
func New(factory *registry.Factory) (*Controller, *audio.Processor) {
	cmds := queue.New(queue.Capacity)
	disposed := make(chan audio.Disposed, 1024)

	c := &Controller{
		unassigned: make(map[IntId]plugin.Instance),
		factory:    factory,
		cmds:       cmds,
	}
	proc := audio.New(cmds, disposed)

	go c.drainDisposals(disposed)

	return c, proc
}

// drainDisposals runs for the lifetime of the controller, dropping
// references to removed AudioTracks so their plugin instances are freed
// off the audio thread. It never touches controller state directly.
func (c *Controller) drainDisposals(disposed <-chan audio.Disposed) {
	for range disposed {
		// Letting the received value go out of scope is enough: the
		// audio thread no longer holds the AudioTrack, so it and its
		// plugin instances become unreachable here and are left to the
		// garbage collector.
	}
}

// SetBufferSize is one-shot and required before any track is added.
func (c *Controller) SetBufferSize(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bufferSize = n
}

// Tracks returns a read-only snapshot of all track metadata.
func (c *Controller) Tracks() []Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Track, len(c.tracks))
	copy(out, c.tracks)
	return out
}

// TrackByID returns a single track's metadata.
func (c *Controller) TrackByID(id IntId) (Track, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.tracks {
		if t.ID == id {
			return t, true
		}
	}
	return Track{}, false
}

// PluginInstances returns a read-only snapshot of all plugin-instance
// metadata.
func (c *Controller) PluginInstances() []PluginInstanceMetadata {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]PluginInstanceMetadata, len(c.pluginInstances))
	copy(out, c.pluginInstances)
	return out
}

// PluginInstanceByID returns a single plugin instance's metadata.
func (c *Controller) PluginInstanceByID(id IntId) (PluginInstanceMetadata, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.pluginInstances {
		if p.ID == id {
			return p, true
		}
	}
	return PluginInstanceMetadata{}, false
}

// CreatePluginInstance asks the factory to build the realtime object for
// metadata.PluginID, then records the metadata and stashes the object in
// the unassigned map until a track claims it.
func (c *Controller) CreatePluginInstance(metadata PluginInstanceMetadata) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.pluginInstances {
		if p.ID == metadata.ID {
			return errPluginInstanceAlreadyExists(metadata.ID)
		}
	}

	inst, err := c.factory.Build(metadata.PluginID)
	if err != nil {
		return errFailedToBuildPlugin(metadata.ID, err)
	}

	c.pluginInstances = append(c.pluginInstances, metadata)
	c.unassigned[metadata.ID] = inst
	return nil
}

// AddTrack validates track against buffer size, id uniqueness, plugin
// instance existence, and ownership, then hands the referenced plugin
// instances to a new AudioTrack on the audio thread.
//
// Per spec.md §4.4, the audio-side volume sent with the command is
// always the initial 1.0, independent of track.Volume: the metadata's
// Volume field is controller-side bookkeeping only in this design.
func (c *Controller) AddTrack(t Track) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bufferSize == 0 {
		return errBufferSizeHasNotBeenSet()
	}
	for _, existing := range c.tracks {
		if existing.ID == t.ID {
			return errTrackAlreadyExists(t.ID)
		}
	}
	for _, pid := range t.PluginInstances {
		if !c.hasPluginInstance(pid) {
			return errTrackReferencesNonExistantPluginInstance(pid)
		}
	}
	for _, pid := range t.PluginInstances {
		if c.ownedByOtherTrack(pid) {
			return errMovingPluginInstancesBetweenTracksNotImplemented(pid)
		}
	}

	plugins := make([]plugin.Instance, 0, len(t.PluginInstances))
	for _, pid := range t.PluginInstances {
		// Invariant: validated above, so this is always present.
		plugins = append(plugins, c.unassigned[pid])
		delete(c.unassigned, pid)
	}

	c.cmds.Push(queue.AddTrack{
		BufferSize: c.bufferSize,
		Volume:     1.0,
		Plugins:    plugins,
	})
	c.tracks = append(c.tracks, t)
	return nil
}

// DeleteTrack removes a track's metadata and every plugin instance it
// owned, then tells the audio thread to drop the corresponding
// AudioTrack by index.
func (c *Controller) DeleteTrack(id IntId) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	index := -1
	for i, t := range c.tracks {
		if t.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return errTrackDoesNotExist(id)
	}

	removed := c.tracks[index]
	for _, pid := range removed.PluginInstances {
		c.removePluginInstanceMetadata(pid)
	}
	c.tracks = append(c.tracks[:index], c.tracks[index+1:]...)

	c.cmds.Push(queue.DeleteTrack{IndexInAudioTracks: index})
	return nil
}

func (c *Controller) hasPluginInstance(id IntId) bool {
	for _, p := range c.pluginInstances {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (c *Controller) ownedByOtherTrack(id IntId) bool {
	for _, t := range c.tracks {
		for _, pid := range t.PluginInstances {
			if pid == id {
				return true
			}
		}
	}
	return false
}

func (c *Controller) removePluginInstanceMetadata(id IntId) {
	for i, p := range c.pluginInstances {
		if p.ID == id {
			c.pluginInstances = append(c.pluginInstances[:i], c.pluginInstances[i+1:]...)
			return
		}
	}
}

// TrackCount, PluginInstanceCount, and QueueDepth back the ambient
// metrics gauges; none is a spec.md operation.
func (c *Controller) TrackCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tracks)
}

func (c *Controller) PluginInstanceCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pluginInstances)
}

func (c *Controller) QueueDepth() int {
	return c.cmds.Len()
}
