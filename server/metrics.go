package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"solarsystem/simulation"
)

const namespace = "solarsystem"

// Metrics holds the render loop and hub counters on a private registry
type Metrics struct {
	registry         *prometheus.Registry
	ticks            prometheus.Counter
	frames           prometheus.Counter
	frameDuration    prometheus.Histogram
	commands         *prometheus.CounterVec
	clients          prometheus.Gauge
	droppedSnapshots prometheus.Counter
	droppedTicks     prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Animation ticks applied",
		}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames drawn",
		}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_duration_seconds",
			Help:      "Time spent drawing one frame",
			Buckets:   []float64{.001, .0025, .005, .01, .016, .025, .033, .05, .1},
		}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "camera_commands_total",
			Help:      "Camera commands handled",
		}, []string{"command"}),
		clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "clients",
			Help:      "Connected websocket clients",
		}),
		droppedSnapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_snapshots_total",
			Help:      "Snapshots replaced before they were broadcast",
		}),
		droppedTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_ticks_total",
			Help:      "Ticks skipped because the loop fell behind",
		}),
	}

	m.registry.MustRegister(
		m.ticks,
		m.frames,
		m.frameDuration,
		m.commands,
		m.clients,
		m.droppedSnapshots,
		m.droppedTicks,
	)
	return m
}

func (m *Metrics) RecordTicks(n int) {
	if n > 0 {
		m.ticks.Add(float64(n))
	}
}

func (m *Metrics) RecordDroppedTicks(n int) {
	if n > 0 {
		m.droppedTicks.Add(float64(n))
	}
}

func (m *Metrics) RecordFrame(duration time.Duration) {
	m.frames.Inc()
	m.frameDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordCommand(cmd simulation.Command) {
	m.commands.WithLabelValues(cmd.String()).Inc()
}

func (m *Metrics) clientConnected()    { m.clients.Inc() }
func (m *Metrics) clientDisconnected() { m.clients.Dec() }
func (m *Metrics) snapshotDropped()    { m.droppedSnapshots.Inc() }

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
