// Package registry implements the plugin factory: a registry of plugin
// builders keyed by plugin id, immutable after startup in normal operation.
package registry

import (
	"fmt"

	"github.com/shaban/sonora/plugin"
)

// Metadata describes a registered plugin. Immutable once registered.
type Metadata struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Builder constructs a fresh plugin instance on demand.
type Builder interface {
	Metadata() Metadata
	Build() (plugin.Instance, error)
}

// BuilderFunc adapts a function into a Builder with fixed metadata.
type BuilderFunc struct {
	Meta    Metadata
	BuildFn func() (plugin.Instance, error)
}

func (b BuilderFunc) Metadata() Metadata             { return b.Meta }
func (b BuilderFunc) Build() (plugin.Instance, error) { return b.BuildFn() }

// ErrorKind enumerates the ways the factory can fail.
type ErrorKind int

const (
	InvalidMetadata ErrorKind = iota
	PluginAlreadyRegistered
	PluginDoesNotExist
	FailedToBuild
)

// Error is the factory's error type. Its Kind lets callers branch without
// string matching while Error() renders a debug-style message.
type Error struct {
	Kind ErrorKind
	ID   string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidMetadata:
		return fmt.Sprintf("InvalidMetadata(%q): %v", e.ID, e.Err)
	case PluginAlreadyRegistered:
		return fmt.Sprintf("PluginAlreadyRegistered(%q)", e.ID)
	case PluginDoesNotExist:
		return fmt.Sprintf("PluginDoesNotExist(%q)", e.ID)
	case FailedToBuild:
		return fmt.Sprintf("FailedToBuildPlugin(%q): %v", e.ID, e.Err)
	default:
		return fmt.Sprintf("unknown registry error for %q", e.ID)
	}
}

func (e *Error) Unwrap() error { return e.Err }

type entry struct {
	metadata Metadata
	builder  Builder
}

// Factory maps plugin id to (metadata, builder). Safe for concurrent reads
// once Register calls have stopped; bootstrap registers all builtins
// before the factory is handed to the controller, after which it is
// treated as read-only.
type Factory struct {
	entries map[string]entry
	order   []string
}

// New returns an empty factory.
func New() *Factory {
	return &Factory{entries: make(map[string]entry)}
}

// Register validates the builder's metadata and stores it.
func (f *Factory) Register(b Builder) error {
	meta := b.Metadata()
	if err := ValidateID(meta.ID); err != nil {
		return &Error{Kind: InvalidMetadata, ID: meta.ID, Err: err}
	}
	if _, exists := f.entries[meta.ID]; exists {
		return &Error{Kind: PluginAlreadyRegistered, ID: meta.ID}
	}
	f.entries[meta.ID] = entry{metadata: meta, builder: b}
	f.order = append(f.order, meta.ID)
	return nil
}

// Metadata enumerates all registered plugins in stable-within-process order.
func (f *Factory) Metadata() []Metadata {
	out := make([]Metadata, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.entries[id].metadata)
	}
	return out
}

// Build returns a new plugin instance for the given plugin id.
func (f *Factory) Build(pluginID string) (plugin.Instance, error) {
	e, exists := f.entries[pluginID]
	if !exists {
		return nil, &Error{Kind: PluginDoesNotExist, ID: pluginID}
	}
	inst, err := e.builder.Build()
	if err != nil {
		return nil, &Error{Kind: FailedToBuild, ID: pluginID, Err: err}
	}
	return inst, nil
}

// ValidateID enforces the plugin-id character rule: non-empty, every
// character lowercase ASCII alphanumeric or underscore. This is the
// stricter reading adopted over the original's redundant second check
// (see design notes on the sample-rate/id-validation open questions).
func ValidateID(id string) error {
	if len(id) == 0 {
		return fmt.Errorf("id must be non-empty")
	}
	for _, c := range id {
		isLower := c >= 'a' && c <= 'z'
		isDigit := c >= '0' && c <= '9'
		if !isLower && !isDigit && c != '_' {
			return fmt.Errorf("id %q contains invalid character %q", id, c)
		}
	}
	return nil
}
