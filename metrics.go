package authflow

import (
	"sync/atomic"
	"time"
)

// MetricID defines a public type used by authflow APIs.
//
// MetricID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricID uint16

const (
	// MetricLoginSuccess is an exported constant or variable used by the authentication orchestrator.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure is an exported constant or variable used by the authentication orchestrator.
	MetricLoginFailure
	// MetricRegisterSuccess is an exported constant or variable used by the authentication orchestrator.
	MetricRegisterSuccess
	// MetricRegisterFailure is an exported constant or variable used by the authentication orchestrator.
	MetricRegisterFailure
	// MetricGoogleLoginSuccess is an exported constant or variable used by the authentication orchestrator.
	MetricGoogleLoginSuccess
	// MetricGoogleLoginFailure is an exported constant or variable used by the authentication orchestrator.
	MetricGoogleLoginFailure
	// MetricWalletLoginSuccess is an exported constant or variable used by the authentication orchestrator.
	MetricWalletLoginSuccess
	// MetricWalletLoginFailure is an exported constant or variable used by the authentication orchestrator.
	MetricWalletLoginFailure
	// MetricOTPVerifySuccess is an exported constant or variable used by the authentication orchestrator.
	MetricOTPVerifySuccess
	// MetricOTPVerifyFailure is an exported constant or variable used by the authentication orchestrator.
	MetricOTPVerifyFailure
	// MetricOTPResend is an exported constant or variable used by the authentication orchestrator.
	MetricOTPResend
	// MetricOTPResendFailure is an exported constant or variable used by the authentication orchestrator.
	MetricOTPResendFailure
	// MetricSetPasswordSuccess is an exported constant or variable used by the authentication orchestrator.
	MetricSetPasswordSuccess
	// MetricSetPasswordFailure is an exported constant or variable used by the authentication orchestrator.
	MetricSetPasswordFailure
	// MetricSessionResolved is an exported constant or variable used by the authentication orchestrator.
	MetricSessionResolved
	// MetricSessionResolveFailure is an exported constant or variable used by the authentication orchestrator.
	MetricSessionResolveFailure
	// MetricValidationRejected is an exported constant or variable used by the authentication orchestrator.
	MetricValidationRejected
	// MetricMalformedResponse is an exported constant or variable used by the authentication orchestrator.
	MetricMalformedResponse
	// MetricIdentityIncomplete is an exported constant or variable used by the authentication orchestrator.
	MetricIdentityIncomplete
	// MetricAccessRestricted is an exported constant or variable used by the authentication orchestrator.
	MetricAccessRestricted
	// MetricExchangeGateBlocked is an exported constant or variable used by the authentication orchestrator.
	MetricExchangeGateBlocked
	// MetricMarkersWritten is an exported constant or variable used by the authentication orchestrator.
	MetricMarkersWritten
	// MetricMarkersCleared is an exported constant or variable used by the authentication orchestrator.
	MetricMarkersCleared
	// MetricNavigationPerformed is an exported constant or variable used by the authentication orchestrator.
	MetricNavigationPerformed
	// MetricExchangeLatency is an exported constant or variable used by the authentication orchestrator.
	MetricExchangeLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics defines a public type used by authflow APIs.
//
// Metrics instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot defines a public type used by authflow APIs.
//
// MetricsSnapshot instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics creates a [Metrics] instance configured by the given
// [MetricsConfig]. When Enabled is false, all operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled describes the enabled operation and its observable behavior.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc describes the inc operation and its observable behavior.
//
// Inc does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe describes the observe operation and its observable behavior.
//
// Observe does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= metricIDCount {
		return
	}
	if id != MetricExchangeLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value describes the value operation and its observable behavior.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot returns a point-in-time deep copy of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snapshot := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, metricIDCount),
		Histograms: make(map[MetricID][]uint64),
	}
	if m == nil || !m.enabled {
		return snapshot
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		if v := atomic.LoadUint64(&m.counters[id].value); v != 0 {
			snapshot.Counters[id] = v
		}
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		var nonzero bool
		for i := range buckets {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricExchangeLatency].buckets[i])
			if buckets[i] != 0 {
				nonzero = true
			}
		}
		if nonzero {
			snapshot.Histograms[MetricExchangeLatency] = buckets
		}
	}

	return snapshot
}

// bucketIndex maps an exchange duration to a fixed histogram bucket:
// <10ms, <25ms, <50ms, <100ms, <250ms, <500ms, <1s, >=1s.
func bucketIndex(d time.Duration) int {
	switch {
	case d < 10*time.Millisecond:
		return 0
	case d < 25*time.Millisecond:
		return 1
	case d < 50*time.Millisecond:
		return 2
	case d < 100*time.Millisecond:
		return 3
	case d < 250*time.Millisecond:
		return 4
	case d < 500*time.Millisecond:
		return 5
	case d < time.Second:
		return 6
	default:
		return 7
	}
}
