package authflow

import (
	"context"
	"fmt"
	"net/http"
)

// SetPassword completes the pending-setup state: it submits the first
// password for an account created through a federated login, then
// re-fetches the current identity so routing reflects the server's view of
// the now-complete account. The two network calls run sequentially inside
// one gated unit of work.
//
// SetPassword may return an error when input validation, dependency calls, or security checks fail.
// SetPassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) SetPassword(ctx context.Context, req SetPasswordRequest) (*FlowResult, error) {
	if e == nil || e.transport == nil || e.checker == nil {
		return nil, ErrEngineNotReady
	}

	spec := flowSpec{
		method:          http.MethodPost,
		path:            pathSetPassword,
		withCredentials: true,
		needsIdentity:   true,
		entry:           entryGeneric,
		navigate:        true,
		successEvent:    auditEventSetPasswordSuccess,
		failureEvent:    auditEventSetPasswordFailure,
		successMetric:   MetricSetPasswordSuccess,
		failureMetric:   MetricSetPasswordFailure,
	}

	if fields := e.checker.Struct(req); fields != nil {
		return nil, e.failLocal(ctx, spec, "", fields)
	}

	surface := surfaceFromContext(ctx)
	if !e.gate.acquire(surface) {
		e.metricInc(MetricExchangeGateBlocked)
		return nil, ErrExchangeInFlight
	}
	defer e.gate.release(surface)

	if _, err := e.exchange(ctx, spec, req); err != nil {
		e.failExchange(ctx, spec, "", "", err)
		return nil, err
	}

	// The set-password response body is not trusted for routing; the
	// authoritative post-setup identity comes from a fresh /auth/me.
	meResp, err := e.exchange(ctx, flowSpec{
		method:          http.MethodGet,
		path:            pathMe,
		withCredentials: true,
	}, nil)
	if err != nil {
		e.failExchange(ctx, spec, "", "", err)
		return nil, fmt.Errorf("password set but identity re-fetch failed: %w", err)
	}

	if meResp.User == nil {
		e.failExchange(ctx, spec, "", "", ErrIdentityIncomplete)
		return nil, ErrIdentityIncomplete
	}

	state, err := e.resolveIdentity(meResp.User, entryGeneric)
	if err != nil {
		e.failExchange(ctx, spec, "", meResp.User.Role, err)
		return nil, err
	}

	if !state.PendingSetup && state.Role == RoleAdmin {
		if err := e.writeAdminMarkers(ctx, meResp); err != nil {
			e.failExchange(ctx, spec, "", state.Role, err)
			return nil, err
		}
	}

	result := &FlowResult{
		State:    state,
		Route:    e.routeFor(state),
		Response: meResp,
	}

	e.metricInc(spec.successMetric)
	e.emitAudit(ctx, spec.successEvent, true, "", state.Role, nil, func() map[string]string {
		return map[string]string{"route": string(result.Route)}
	})

	if err := e.navigate(ctx, result.Route); err != nil {
		return result, err
	}
	return result, nil
}
