// Package metrics exports terrarium counters and gauges to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"terrasim/internal/sims/terrarium"
)

// Source is the read side of a running terrarium.
type Source interface {
	Tick() uint64
	Light() float64
	Temperature() float64
	Oxygen() float64
	BarrenTicks() int
	Organisms() []terrarium.Organism
	Stats() terrarium.Stats
	Census() map[terrarium.Kind]int
}

// Exporter mirrors a Source into Prometheus collectors. Counters are advanced
// by the delta since the previous observation so a Reset of the source never
// makes them go backwards.
type Exporter struct {
	ticks       prometheus.Counter
	events      *prometheus.CounterVec
	particles   *prometheus.GaugeVec
	light       prometheus.Gauge
	temperature prometheus.Gauge
	oxygen      prometheus.Gauge
	barren      prometheus.Gauge
	organisms   prometheus.Gauge
	tickSeconds prometheus.Histogram

	prev terrarium.Stats
}

// NewExporter creates the collectors under namespace and registers them.
func NewExporter(reg prometheus.Registerer, namespace string) *Exporter {
	e := &Exporter{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Simulation ticks completed.",
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Kernel events by type.",
		}, []string{"event"}),
		particles: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "particles",
			Help:      "Live particles by kind.",
		}, []string{"kind"}),
		light: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "light_level",
			Help:      "Global light level (0-100).",
		}),
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "temperature_level",
			Help:      "Global temperature level (0-100).",
		}),
		oxygen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "oxygen_level",
			Help:      "Global oxygen level (0-100).",
		}),
		barren: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "barren_ticks",
			Help:      "Consecutive ticks without a seed or first root.",
		}),
		organisms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "organisms",
			Help:      "Organisms spawned since the last reset.",
		}),
		tickSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent in one simulation tick.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
	}
	reg.MustRegister(e.ticks, e.events, e.particles, e.light, e.temperature,
		e.oxygen, e.barren, e.organisms, e.tickSeconds)
	return e
}

// Observe copies the current state of src into the collectors.
func (e *Exporter) Observe(src Source) {
	stats := src.Stats()
	if stats.Ticks < e.prev.Ticks {
		e.prev = terrarium.Stats{}
	}
	if d := stats.Ticks - e.prev.Ticks; d > 0 {
		e.ticks.Add(float64(d))
	}
	prev := e.prev.Events()
	for name, v := range stats.Events() {
		if v > prev[name] {
			e.events.WithLabelValues(name).Add(float64(v - prev[name]))
		}
	}
	e.prev = stats

	census := src.Census()
	for _, k := range terrarium.Kinds() {
		e.particles.WithLabelValues(k.String()).Set(float64(census[k]))
	}
	e.light.Set(src.Light())
	e.temperature.Set(src.Temperature())
	e.oxygen.Set(src.Oxygen())
	e.barren.Set(float64(src.BarrenTicks()))
	e.organisms.Set(float64(len(src.Organisms())))
}

// ObserveTick records the duration of one tick.
func (e *Exporter) ObserveTick(d time.Duration) {
	e.tickSeconds.Observe(d.Seconds())
}

// Handler serves the collectors registered on g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
