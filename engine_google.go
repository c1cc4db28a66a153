package authflow

import (
	"context"
	"net/http"
)

// GoogleLogin forwards a federated identity token to the backend. The
// token is opaque to authflow: issuance and verification belong to the
// identity provider and the backend respectively.
//
// A Google-federated account that has never set a password resolves into
// the pending-setup state and is routed to the set-password destination,
// never to its role destination.
//
// GoogleLogin may return an error when input validation, dependency calls, or security checks fail.
// GoogleLogin does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) GoogleLogin(ctx context.Context, req GoogleLoginRequest) (*FlowResult, error) {
	if e == nil || e.checker == nil {
		return nil, ErrEngineNotReady
	}

	spec := flowSpec{
		method:          http.MethodPost,
		path:            pathGoogleLogin,
		withCredentials: true,
		needsIdentity:   true,
		entry:           entryGeneric,
		navigate:        true,
		successEvent:    auditEventGoogleLoginSuccess,
		failureEvent:    auditEventGoogleLoginFailure,
		successMetric:   MetricGoogleLoginSuccess,
		failureMetric:   MetricGoogleLoginFailure,
	}

	if fields := e.checker.Struct(req); fields != nil {
		return nil, e.failLocal(ctx, spec, "", fields)
	}

	return e.runExchange(ctx, spec, req, "")
}
