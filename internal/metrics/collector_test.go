package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestDescribeEmitsSevenDescriptors(t *testing.T) {
	c := NewConnectionCollector("rasta")
	descs := make(chan *prometheus.Desc, 16)
	c.Describe(descs)
	close(descs)
	n := 0
	for range descs {
		n++
	}
	if n != 7 {
		t.Fatalf("got %d descriptors, want 7", n)
	}
}

func TestCollectReflectsRecordedCounters(t *testing.T) {
	c := NewConnectionCollector("rasta")
	c.Add(1234)
	c.SetState(1234, 3)
	c.IncSequenceError(1234)
	c.IncTimeout(1234)
	c.IncHeartbeatSent(1234)
	c.IncHeartbeatReceived(1234)
	c.IncHeartbeatReceived(1234)
	c.IncTelegramSent(1234, "P")
	c.IncTelegramReceived(1234, "LS")
	c.IncTelegramReceived(1234, "LS")

	metrics := make(chan prometheus.Metric, 16)
	c.Collect(metrics)
	close(metrics)

	var dtoMetric dtoMetricCollector
	for m := range metrics {
		dtoMetric.collect(t, m)
	}

	if dtoMetric.heartbeatsReceived != 2 {
		t.Errorf("heartbeats received = %v, want 2", dtoMetric.heartbeatsReceived)
	}
	if dtoMetric.sequenceErrors != 1 {
		t.Errorf("sequence errors = %v, want 1", dtoMetric.sequenceErrors)
	}
	if dtoMetric.telegramsReceivedLS != 2 {
		t.Errorf("LS telegrams received = %v, want 2", dtoMetric.telegramsReceivedLS)
	}
}

func TestRemoveStopsTracking(t *testing.T) {
	c := NewConnectionCollector("rasta")
	c.Add(1)
	c.Remove(1)

	metrics := make(chan prometheus.Metric, 16)
	c.Collect(metrics)
	close(metrics)
	for range metrics {
		t.Fatalf("expected no metrics for a removed connection")
	}
}

// dtoMetricCollector pulls the handful of fields these tests assert on out
// of the raw prometheus.Metric values, using Desc().String() to tell the
// families apart and reading each value through the dto package.
type dtoMetricCollector struct {
	heartbeatsReceived  float64
	sequenceErrors      float64
	telegramsReceivedLS float64
}

func (d *dtoMetricCollector) collect(t *testing.T, m prometheus.Metric) {
	t.Helper()
	desc := m.Desc().String()
	switch {
	case containsAll(desc, "heartbeats_received_total"):
		d.heartbeatsReceived += metricValue(t, m)
	case containsAll(desc, "sequence_errors_total"):
		d.sequenceErrors += metricValue(t, m)
	case containsAll(desc, "sci_telegrams_received_total"):
		d.telegramsReceivedLS += metricValue(t, m)
	}
}

func containsAll(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

func metricValue(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var pb dto.Metric
	if err := m.Write(&pb); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	if pb.Gauge != nil {
		return pb.Gauge.GetValue()
	}
	if pb.Counter != nil {
		return pb.Counter.GetValue()
	}
	return 0
}
