package runtime

// metrics_prometheus.go mirrors a Metrics snapshot into a Prometheus
// registry. It never participates in the deterministic hot path: it is
// always a one-way fan-out performed after a frame's Metrics.Snapshot() has
// already been computed.
//
// © 2025 geoscene-runtime authors. MIT License.

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMirror republishes a Metrics snapshot as Prometheus collectors.
// It is safe to call MirrorSnapshot repeatedly; gauges are overwritten and
// counters advance by the delta since the previous call.
type PrometheusMirror struct {
	registry     *prometheus.Registry
	counters     map[string]prometheus.Counter
	lastCounters map[string]uint64
	gauges       map[string]prometheus.Gauge
	histograms   map[string]prometheus.Summary
}

// NewPrometheusMirror constructs a mirror bound to reg. Passing a nil
// registry is a programmer error and will panic on first use.
func NewPrometheusMirror(reg *prometheus.Registry) *PrometheusMirror {
	return &PrometheusMirror{
		registry:     reg,
		counters:     make(map[string]prometheus.Counter),
		lastCounters: make(map[string]uint64),
		gauges:       make(map[string]prometheus.Gauge),
		histograms:   make(map[string]prometheus.Summary),
	}
}

// MirrorSnapshot republishes every counter, gauge, and histogram in snap.
// Counters are monotonic: the mirror tracks the last-seen cumulative value
// and only adds the delta, since Prometheus counters cannot be set
// directly.
func (p *PrometheusMirror) MirrorSnapshot(snap Snapshot) {
	for _, c := range snap.Counters {
		delta := c.Value
		if last := p.lastCounters[c.Name]; c.Value >= last {
			delta = c.Value - last
		}
		p.counterFor(c.Name).Add(float64(delta))
		p.lastCounters[c.Name] = c.Value
	}
	for _, g := range snap.Gauges {
		p.gaugeFor(g.Name).Set(float64(g.Value))
	}
	for _, h := range snap.Histograms {
		s := p.histogramFor(h.Name)
		s.Observe(float64(h.Value.Sum))
	}
}

func (p *PrometheusMirror) counterFor(name string) prometheus.Counter {
	if c, ok := p.counters[name]; ok {
		return c
	}
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "geoscene_runtime",
		Name:      name,
		Help:      "geoscene-runtime deterministic counter: " + name,
	})
	p.registry.MustRegister(c)
	p.counters[name] = c
	return c
}

func (p *PrometheusMirror) gaugeFor(name string) prometheus.Gauge {
	if g, ok := p.gauges[name]; ok {
		return g
	}
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "geoscene_runtime",
		Name:      name,
		Help:      "geoscene-runtime deterministic gauge: " + name,
	})
	p.registry.MustRegister(g)
	p.gauges[name] = g
	return g
}

func (p *PrometheusMirror) histogramFor(name string) prometheus.Summary {
	if s, ok := p.histograms[name]; ok {
		return s
	}
	s := prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: "geoscene_runtime",
		Name:      name,
		Help:      "geoscene-runtime deterministic histogram: " + name,
	})
	p.registry.MustRegister(s)
	p.histograms[name] = s
	return s
}
