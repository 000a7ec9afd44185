package cache

// metrics.go mirrors cache counters into Prometheus when WithMetrics is
// supplied, otherwise uses a no-op sink so the hot path never pays for metric
// updates.
//
// © 2025 geoscene-runtime authors. MIT License.

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

type metricsSink interface {
	incRequest(coalesced bool)
	incAdvance(next ResidencyState)
	incEvict()
	incRelease()
	setResidentBytes(value int64)
}

type noopMetrics struct{}

func (noopMetrics) incRequest(bool)            {}
func (noopMetrics) incAdvance(ResidencyState)  {}
func (noopMetrics) incEvict()                  {}
func (noopMetrics) incRelease()                {}
func (noopMetrics) setResidentBytes(int64)     {}

type promMetrics struct {
	requests  *prometheus.CounterVec
	advances  *prometheus.CounterVec
	evictions prometheus.Counter
	releases  prometheus.Counter
	residents prometheus.Gauge
}

func newPromMetrics(reg *prometheus.Registry) *promMetrics {
	pm := &promMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geoscene_cache",
			Name:      "requests_total",
			Help:      "Number of Request calls, labeled by whether they coalesced onto an existing entry.",
		}, []string{"coalesced"}),
		advances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geoscene_cache",
			Name:      "advances_total",
			Help:      "Number of residency Advance calls, labeled by destination state.",
		}, []string{"state"}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "geoscene_cache",
			Name:      "evictions_total",
			Help:      "Number of entries transitioned to Evicted.",
		}),
		releases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "geoscene_cache",
			Name:      "releases_total",
			Help:      "Number of Release calls.",
		}),
		residents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "geoscene_cache",
			Name:      "resident_bytes",
			Help:      "Bytes currently admitted as Resident payloads.",
		}),
	}
	reg.MustRegister(pm.requests, pm.advances, pm.evictions, pm.releases, pm.residents)
	return pm
}

func (m *promMetrics) incRequest(coalesced bool) {
	m.requests.WithLabelValues(strconv.FormatBool(coalesced)).Inc()
}
func (m *promMetrics) incAdvance(next ResidencyState) {
	m.advances.WithLabelValues(next.String()).Inc()
}
func (m *promMetrics) incEvict()                    { m.evictions.Inc() }
func (m *promMetrics) incRelease()                  { m.releases.Inc() }
func (m *promMetrics) setResidentBytes(value int64) { m.residents.Set(float64(value)) }

func newMetricsSink(reg *prometheus.Registry) metricsSink {
	if reg == nil {
		return noopMetrics{}
	}
	return newPromMetrics(reg)
}
