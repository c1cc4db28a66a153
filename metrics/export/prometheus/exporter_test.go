package prometheus

import (
	"net/http/httptest"
	"strings"
	"testing"

	authflow "github.com/credport/authflow"
)

type stubSource struct {
	snapshot authflow.MetricsSnapshot
	dropped  uint64
}

func (s *stubSource) MetricsSnapshot() authflow.MetricsSnapshot { return s.snapshot }
func (s *stubSource) AuditDropped() uint64                      { return s.dropped }

func TestRenderEmptySource(t *testing.T) {
	exporter := NewPrometheusExporterFromSource(&stubSource{
		snapshot: authflow.MetricsSnapshot{
			Counters:   map[authflow.MetricID]uint64{},
			Histograms: map[authflow.MetricID][]uint64{},
		},
	})

	if out := exporter.Render(); out != "" {
		t.Fatalf("empty source must render nothing, got %q", out)
	}
}

func TestRenderCounters(t *testing.T) {
	exporter := NewPrometheusExporterFromSource(&stubSource{
		snapshot: authflow.MetricsSnapshot{
			Counters: map[authflow.MetricID]uint64{
				authflow.MetricLoginSuccess:   3,
				authflow.MetricMarkersWritten: 1,
			},
			Histograms: map[authflow.MetricID][]uint64{},
		},
		dropped: 2,
	})

	out := exporter.Render()
	for _, want := range []string{
		"# TYPE authflow_login_success_total counter",
		"authflow_login_success_total 3",
		"authflow_markers_written_total 1",
		"authflow_audit_dropped_total 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestRenderHistogramIsCumulative(t *testing.T) {
	exporter := NewPrometheusExporterFromSource(&stubSource{
		snapshot: authflow.MetricsSnapshot{
			Counters: map[authflow.MetricID]uint64{},
			Histograms: map[authflow.MetricID][]uint64{
				authflow.MetricExchangeLatency: {1, 0, 2, 0, 0, 0, 0, 1},
			},
		},
	})

	out := exporter.Render()
	for _, want := range []string{
		"# TYPE authflow_exchange_latency histogram",
		`authflow_exchange_latency_bucket{le="0.01"} 1`,
		`authflow_exchange_latency_bucket{le="0.05"} 3`,
		`authflow_exchange_latency_bucket{le="+Inf"} 4`,
		"authflow_exchange_latency_count 4",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestHandlerServesTextFormat(t *testing.T) {
	exporter := NewPrometheusExporterFromSource(&stubSource{
		snapshot: authflow.MetricsSnapshot{
			Counters:   map[authflow.MetricID]uint64{authflow.MetricLoginSuccess: 1},
			Histograms: map[authflow.MetricID][]uint64{},
		},
	})

	rec := httptest.NewRecorder()
	exporter.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/plain") {
		t.Errorf("content type = %q", got)
	}
	if !strings.Contains(rec.Body.String(), "authflow_login_success_total 1") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestRenderAgainstLiveEngine(t *testing.T) {
	engine, err := authflow.New().
		WithBaseURL("https://portal.example.edu").
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	// A fresh engine has nothing to report.
	if out := NewPrometheusExporter(engine).Render(); out != "" {
		t.Errorf("fresh engine must render nothing, got %q", out)
	}
}
