package runtime

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestPrometheusMirrorRegistersAndPublishes(t *testing.T) {
	reg := prometheus.NewRegistry()
	mirror := NewPrometheusMirror(reg)

	m := NewMetrics()
	m.IncCounter("frame_jobs_total", 3)
	m.SetGauge("queue_depth", 5)
	m.RecordHistogram("pop_cost", 2)

	mirror.MirrorSnapshot(m.Snapshot())

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	if len(families) != 3 {
		t.Fatalf("len(families) = %d, want 3", len(families))
	}
}

func TestPrometheusMirrorAccumulatesCountersAcrossSnapshots(t *testing.T) {
	reg := prometheus.NewRegistry()
	mirror := NewPrometheusMirror(reg)

	m := NewMetrics()
	m.IncCounter("hits", 1)
	mirror.MirrorSnapshot(m.Snapshot())
	m.IncCounter("hits", 2)
	mirror.MirrorSnapshot(m.Snapshot())

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	var total float64
	for _, f := range families {
		if f.GetName() == "geoscene_runtime_hits" {
			total = f.Metric[0].GetCounter().GetValue()
		}
	}
	if total != 3 {
		t.Fatalf("total = %v, want 3 (1 then +2 delta onto counter)", total)
	}
}
