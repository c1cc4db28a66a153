package authflow

import (
	"context"
	"net/http"
)

// ResolveSession silently re-resolves an existing server session on page
// load via GET /auth/me. It runs the full pipeline, including the admin
// marker write, but never navigates: the caller decides whether the
// resolved route differs from the page it is already on.
//
// ResolveSession may return an error when input validation, dependency calls, or security checks fail.
// ResolveSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ResolveSession(ctx context.Context) (*FlowResult, error) {
	return e.runExchange(ctx, flowSpec{
		method:          http.MethodGet,
		path:            pathMe,
		withCredentials: true,
		needsIdentity:   true,
		entry:           entryGeneric,
		navigate:        false,
		successEvent:    auditEventSessionResolved,
		failureEvent:    auditEventSessionResolveFailure,
		successMetric:   MetricSessionResolved,
		failureMetric:   MetricSessionResolveFailure,
	}, nil, "")
}

// InvalidateMarkers is the logout collaborator obligation: session markers
// are never cleared automatically, so whatever handles logout must call
// this alongside its server-side session teardown.
//
// InvalidateMarkers may return an error when input validation, dependency calls, or security checks fail.
// InvalidateMarkers does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) InvalidateMarkers(ctx context.Context) error {
	if e == nil || e.markers == nil {
		return ErrEngineNotReady
	}

	if err := e.markers.Clear(ctx); err != nil {
		return err
	}

	e.metricInc(MetricMarkersCleared)
	e.emitAudit(ctx, auditEventMarkersCleared, true, "", "", nil, nil)
	return nil
}
