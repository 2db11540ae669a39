// Package metrics exposes the controller's ambient observability
// surface (track/plugin-instance counts, command queue depth) as
// Prometheus gauges and counters, following the
// streamspace/tphakala-birdnet-go convention of a single registerable
// Metrics struct rather than package-level globals.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Source is whatever can report the ambient counters the registry
// samples on demand. *controller.Controller satisfies this without
// this package importing the controller package.
type Source interface {
	TrackCount() int
	PluginInstanceCount() int
	QueueDepth() int
}

// Metrics holds the collectors registered against a Prometheus registry.
// The gauges sample their Source on every scrape. CommandsApplied and
// BuffersRendered are registered and exported for callers to increment;
// nothing in this module increments them, so they stay at zero.
type Metrics struct {
	tracks          prometheus.GaugeFunc
	pluginInstances prometheus.GaugeFunc
	queueDepth      prometheus.GaugeFunc

	CommandsApplied prometheus.Counter
	BuffersRendered prometheus.Counter
}

// New creates and registers sonora's metrics against reg, sampling src
// for the gauge values.
func New(reg prometheus.Registerer, src Source) (*Metrics, error) {
	m := &Metrics{
		tracks: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "sonora",
			Name:      "tracks",
			Help:      "Number of tracks currently known to the controller.",
		}, func() float64 { return float64(src.TrackCount()) }),
		pluginInstances: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "sonora",
			Name:      "plugin_instances",
			Help:      "Number of plugin instances currently known to the controller.",
		}, func() float64 { return float64(src.PluginInstanceCount()) }),
		queueDepth: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "sonora",
			Name:      "command_queue_depth",
			Help:      "Commands currently queued for the audio thread to drain.",
		}, func() float64 { return float64(src.QueueDepth()) }),
		CommandsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sonora",
			Name:      "commands_applied_total",
			Help:      "Commands drained and applied by the audio thread.",
		}),
		BuffersRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sonora",
			Name:      "buffers_rendered_total",
			Help:      "Audio buffers rendered by the processor.",
		}),
	}

	collectors := []prometheus.Collector{m.tracks, m.pluginInstances, m.queueDepth, m.CommandsApplied, m.BuffersRendered}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
