// Package bootstrap registers the built-in plugins into a fresh factory
// at process start. Plugin discovery subsystems (LV2 via lilv, VST3,
// CLAP, ...) are separate collaborators that register additional
// builders through RegisterDiscovered before the factory is handed to
// the controller; none ships with this module (spec.md §4.7/§1
// Non-goals: third-party plugin loader is out of scope).
package bootstrap

import (
	"fmt"

	"github.com/shaban/sonora/plugin"
	"github.com/shaban/sonora/plugin/builtin"
	"github.com/shaban/sonora/registry"
)

const (
	SilenceID = "builtin_silence"
	SineID    = "builtin_sine"
)

// NewFactory builds a factory and registers the built-in plugins. Sine
// is built against sampleRate, which must match the I/O backend's own
// rate (see the Open Question in spec.md §9 — the corrected,
// parameterized reading is implemented here rather than a hard-coded
// 44100).
func NewFactory(sampleRate int) (*registry.Factory, error) {
	f := registry.New()

	if err := f.Register(registry.BuilderFunc{
		Meta: registry.Metadata{ID: SilenceID, DisplayName: "Silence"},
		BuildFn: func() (plugin.Instance, error) {
			return builtin.NewSilence(), nil
		},
	}); err != nil {
		return nil, fmt.Errorf("registering %s: %w", SilenceID, err)
	}

	rate := float64(sampleRate)
	if err := f.Register(registry.BuilderFunc{
		Meta: registry.Metadata{ID: SineID, DisplayName: "Sine"},
		BuildFn: func() (plugin.Instance, error) {
			return builtin.NewSine(rate), nil
		},
	}); err != nil {
		return nil, fmt.Errorf("registering %s: %w", SineID, err)
	}

	return f, nil
}

// RegisterDiscovered registers a builder found by a plugin-discovery
// subsystem after the built-ins but before the factory is handed off.
func RegisterDiscovered(f *registry.Factory, b registry.Builder) error {
	return f.Register(b)
}
