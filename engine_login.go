package authflow

import (
	"context"
	"net/http"
)

// Login performs the password credential exchange for the generic entry
// point and resolves the caller to its role destination.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Login(ctx context.Context, req PasswordLoginRequest) (*FlowResult, error) {
	return e.passwordLogin(ctx, req, flowSpec{
		method:          http.MethodPost,
		path:            pathLogin,
		withCredentials: true,
		needsIdentity:   true,
		entry:           entryGeneric,
		navigate:        true,
		successEvent:    auditEventLoginSuccess,
		failureEvent:    auditEventLoginFailure,
		successMetric:   MetricLoginSuccess,
		failureMetric:   MetricLoginFailure,
	})
}

// RegistrarLogin performs the password credential exchange for the
// registrar-restricted entry point. Authentication runs exactly as for
// [Engine.Login]; an additional authorization check then rejects resolved
// roles outside the configured registrar set with [ErrAccessRestricted].
//
// RegistrarLogin may return an error when input validation, dependency calls, or security checks fail.
// RegistrarLogin does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) RegistrarLogin(ctx context.Context, req PasswordLoginRequest) (*FlowResult, error) {
	return e.passwordLogin(ctx, req, flowSpec{
		method:          http.MethodPost,
		path:            pathLogin,
		withCredentials: true,
		needsIdentity:   true,
		entry:           entryRegistrar,
		navigate:        true,
		successEvent:    auditEventRegistrarLoginSuccess,
		failureEvent:    auditEventRegistrarLoginFailure,
		successMetric:   MetricLoginSuccess,
		failureMetric:   MetricLoginFailure,
	})
}

func (e *Engine) passwordLogin(ctx context.Context, req PasswordLoginRequest, spec flowSpec) (*FlowResult, error) {
	if e == nil || e.checker == nil {
		return nil, ErrEngineNotReady
	}
	if fields := e.checker.Struct(req); fields != nil {
		return nil, e.failLocal(ctx, spec, req.Email, fields)
	}

	return e.runExchange(ctx, spec, req, req.Email)
}

// AdminLogin performs the username/password exchange against the dedicated
// admin endpoint. On a resolved admin identity the session markers are
// written before navigation occurs.
//
// AdminLogin may return an error when input validation, dependency calls, or security checks fail.
// AdminLogin does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AdminLogin(ctx context.Context, req AdminLoginRequest) (*FlowResult, error) {
	if e == nil || e.checker == nil {
		return nil, ErrEngineNotReady
	}

	spec := flowSpec{
		method:          http.MethodPost,
		path:            pathAdminLogin,
		withCredentials: true,
		needsIdentity:   true,
		entry:           entryGeneric,
		navigate:        true,
		successEvent:    auditEventAdminLoginSuccess,
		failureEvent:    auditEventAdminLoginFailure,
		successMetric:   MetricLoginSuccess,
		failureMetric:   MetricLoginFailure,
	}

	if fields := e.checker.Struct(req); fields != nil {
		return nil, e.failLocal(ctx, spec, req.Username, fields)
	}

	return e.runExchange(ctx, spec, req, req.Username)
}
