package authflow

import (
	"testing"
	"time"
)

func TestMetricsDisabledIsNoOp(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})

	m.Inc(MetricLoginSuccess)
	m.Observe(MetricExchangeLatency, 30*time.Millisecond)

	if m.Value(MetricLoginSuccess) != 0 {
		t.Error("disabled metrics must not count")
	}
	snapshot := m.Snapshot()
	if len(snapshot.Counters) != 0 || len(snapshot.Histograms) != 0 {
		t.Errorf("disabled snapshot must be empty, got %+v", snapshot)
	}
}

func TestMetricsIncAndSnapshot(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricMarkersWritten)

	if got := m.Value(MetricLoginSuccess); got != 2 {
		t.Errorf("Value = %d, want 2", got)
	}

	snapshot := m.Snapshot()
	if snapshot.Counters[MetricLoginSuccess] != 2 {
		t.Errorf("snapshot login success = %d, want 2", snapshot.Counters[MetricLoginSuccess])
	}
	if snapshot.Counters[MetricMarkersWritten] != 1 {
		t.Errorf("snapshot markers written = %d, want 1", snapshot.Counters[MetricMarkersWritten])
	}
	// Zero counters are omitted.
	if _, present := snapshot.Counters[MetricWalletLoginFailure]; present {
		t.Error("zero counters must be omitted from the snapshot")
	}
}

func TestMetricsLatencyHistogram(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})

	m.Observe(MetricExchangeLatency, 5*time.Millisecond)
	m.Observe(MetricExchangeLatency, 60*time.Millisecond)
	m.Observe(MetricExchangeLatency, 2*time.Second)

	buckets, ok := m.Snapshot().Histograms[MetricExchangeLatency]
	if !ok {
		t.Fatal("latency histogram missing from snapshot")
	}
	if buckets[0] != 1 || buckets[3] != 1 || buckets[7] != 1 {
		t.Errorf("bucket distribution = %v", buckets)
	}
}

func TestMetricsHistogramDisabledByDefault(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Observe(MetricExchangeLatency, 5*time.Millisecond)
	if len(m.Snapshot().Histograms) != 0 {
		t.Error("histograms must be opt-in")
	}
}

func TestBucketIndexBoundaries(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int
	}{
		{time.Millisecond, 0},
		{10 * time.Millisecond, 1},
		{25 * time.Millisecond, 2},
		{50 * time.Millisecond, 3},
		{100 * time.Millisecond, 4},
		{250 * time.Millisecond, 5},
		{500 * time.Millisecond, 6},
		{time.Second, 7},
		{time.Minute, 7},
	}

	for _, tt := range tests {
		if got := bucketIndex(tt.d); got != tt.want {
			t.Errorf("bucketIndex(%v) = %d, want %d", tt.d, got, tt.want)
		}
	}
}

func TestNilMetricsSafe(t *testing.T) {
	var m *Metrics

	m.Inc(MetricLoginSuccess)
	m.Observe(MetricExchangeLatency, time.Millisecond)
	if m.Enabled() {
		t.Error("nil metrics must report disabled")
	}
	if m.Value(MetricLoginSuccess) != 0 {
		t.Error("nil metrics must report zero")
	}
}
