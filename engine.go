package authflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/credport/authflow/internal/transport"
	"github.com/credport/authflow/internal/validate"
	"github.com/credport/authflow/markers"
)

// Navigator performs the terminal navigation of a successful flow.
// Implementations are presentational (a router push, a redirect write, a
// CLI printout); the engine only decides the destination and the timing.
type Navigator interface {
	Navigate(ctx context.Context, target RouteTarget) error
}

// NavigatorFunc adapts a function to the [Navigator] interface.
type NavigatorFunc func(ctx context.Context, target RouteTarget) error

// Navigate describes the navigate operation and its observable behavior.
func (f NavigatorFunc) Navigate(ctx context.Context, target RouteTarget) error {
	return f(ctx, target)
}

// Engine defines a public type used by authflow APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
// Engine methods are safe to call from multiple goroutines after
// construction through [Builder.Build].
type Engine struct {
	config    Config
	transport *transport.Client
	checker   *validate.Checker
	markers   markers.Store
	navigator Navigator
	gate      *surfaceGate
	audit     *auditDispatcher
	metrics   *Metrics
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

// Markers exposes the engine's marker store for read-side collaborators
// (shell guards, logout handlers). Presentation code must only read or
// Clear through it, never Put.
func (e *Engine) Markers() markers.Store {
	if e == nil {
		return nil
	}
	return e.markers
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

/*
====================================
PARAMETRIZED PIPELINE
====================================
*/

// flowSpec parametrizes one credential exchange variant. Every login and
// registration surface runs the identical pipeline through it, so the
// failure handling and the priority rules live in exactly one place.
type flowSpec struct {
	method          string
	path            string
	withCredentials bool

	// needsIdentity marks flows whose success must carry a usable identity
	// claim. Flows without it (OTP resend) accept an identity-free 2xx.
	needsIdentity bool

	entry entryPoint

	// navigate marks flows whose terminal success triggers the deferred
	// navigation. Silent re-resolution never navigates.
	navigate bool

	successEvent  string
	failureEvent  string
	successMetric MetricID
	failureMetric MetricID
}

// runExchange is the single orchestration pipeline: dispatch, normalize,
// resolve, mark, route. Each stage short-circuits with a classified
// failure; no stage after the failing one runs, so no partial state is
// ever committed.
func (e *Engine) runExchange(ctx context.Context, spec flowSpec, body any, email string) (*FlowResult, error) {
	if e == nil || e.transport == nil {
		return nil, ErrEngineNotReady
	}

	surface := surfaceFromContext(ctx)
	if !e.gate.acquire(surface) {
		e.metricInc(MetricExchangeGateBlocked)
		return nil, ErrExchangeInFlight
	}
	defer e.gate.release(surface)

	resp, err := e.exchange(ctx, spec, body)
	if err != nil {
		e.failExchange(ctx, spec, email, "", err)
		return nil, err
	}

	if !spec.needsIdentity {
		e.metricInc(spec.successMetric)
		e.emitAudit(ctx, spec.successEvent, true, email, "", nil, nil)
		return &FlowResult{Response: resp}, nil
	}

	if resp.User == nil {
		err := ErrIdentityIncomplete
		e.failExchange(ctx, spec, email, "", err)
		return nil, err
	}

	state, err := e.resolveIdentity(resp.User, spec.entry)
	if err != nil {
		e.failExchange(ctx, spec, email, resp.User.Role, err)
		return nil, err
	}

	if !state.PendingSetup && state.Role == RoleAdmin {
		if err := e.writeAdminMarkers(ctx, resp); err != nil {
			e.failExchange(ctx, spec, email, state.Role, err)
			return nil, err
		}
	}

	result := &FlowResult{
		State:    state,
		Route:    e.routeFor(state),
		Response: resp,
	}

	e.metricInc(spec.successMetric)
	e.emitAudit(ctx, spec.successEvent, true, email, state.Role, nil, func() map[string]string {
		return map[string]string{
			"route":         string(result.Route),
			"pending_setup": fmt.Sprintf("%t", state.PendingSetup),
		}
	})

	if spec.navigate {
		if err := e.navigate(ctx, result.Route); err != nil {
			// Terminal state is already committed (cookies, markers); the
			// caller gets both the result and the navigation error.
			return result, err
		}
	}

	return result, nil
}

// exchange performs the single network call of a flow and normalizes the
// raw result. No retries: a failed exchange surfaces as an error state.
func (e *Engine) exchange(ctx context.Context, spec flowSpec, body any) (*AuthResponse, error) {
	correlationID := correlationIDFromContext(ctx)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}

	start := time.Now()
	raw, err := e.transport.Do(ctx, transport.Request{
		Method:          spec.method,
		Path:            spec.path,
		Body:            body,
		WithCredentials: spec.withCredentials,
		CorrelationID:   correlationID,
	})
	if e.metrics != nil {
		e.metrics.Observe(MetricExchangeLatency, time.Since(start))
	}
	if err != nil {
		return nil, err
	}

	return normalizeResponse(raw)
}

// failLocal rejects a flow before any network call.
func (e *Engine) failLocal(ctx context.Context, spec flowSpec, email string, fields []string) error {
	verr := &ValidationError{Fields: fields}
	e.metricInc(MetricValidationRejected)
	e.metricInc(spec.failureMetric)
	e.emitAudit(ctx, spec.failureEvent, false, email, "", verr, nil)
	return verr
}

func (e *Engine) failExchange(ctx context.Context, spec flowSpec, email string, role Role, err error) {
	switch {
	case errors.Is(err, ErrMalformedResponse):
		e.metricInc(MetricMalformedResponse)
	case errors.Is(err, ErrIdentityIncomplete):
		e.metricInc(MetricIdentityIncomplete)
	case errors.Is(err, ErrAccessRestricted):
		e.metricInc(MetricAccessRestricted)
	}
	e.metricInc(spec.failureMetric)
	e.emitAudit(ctx, spec.failureEvent, false, email, role, err, nil)
}

func (e *Engine) writeAdminMarkers(ctx context.Context, resp *AuthResponse) error {
	if e.markers == nil {
		return ErrMarkerStoreUnavailable
	}

	m := markers.Markers{
		AdminAuthenticated: true,
		AdminLoginTime:     time.Now().UTC(),
	}
	if resp.AccessToken != "" {
		m.AdminToken = resp.AccessToken
	}

	if err := e.markers.Put(ctx, m); err != nil {
		return fmt.Errorf("%w: %v", ErrMarkerStoreUnavailable, err)
	}

	e.metricInc(MetricMarkersWritten)
	e.emitAudit(ctx, auditEventMarkersWritten, true, "", RoleAdmin, nil, nil)
	return nil
}

// navigate waits out the configured delay, then hands the destination to
// the navigator. The delay gives the server-set session cookie time to be
// durably committed before the next page's own identity check runs.
func (e *Engine) navigate(ctx context.Context, target RouteTarget) error {
	if e.navigator == nil {
		return nil
	}

	if delay := e.config.Routes.NavigationDelay; delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := e.navigator.Navigate(ctx, target); err != nil {
		return fmt.Errorf("navigate to %s: %w", target, err)
	}
	e.metricInc(MetricNavigationPerformed)
	return nil
}

// requestPath helpers keep the endpoint table in one place.
const (
	pathLogin       = "/auth/login"
	pathAdminLogin  = "/auth/admin-login"
	pathRegister    = "/auth/register"
	pathGoogleLogin = "/auth/google-login"
	pathWalletLogin = "/auth/wallet-login"
	pathVerifyOTP   = "/auth/verify-otp"
	pathResendOTP   = "/auth/resend-otp"
	pathSetPassword = "/auth/set-password"
	pathMe          = "/auth/me"
)
