package authflow

import (
	"context"
	"net/http"
)

// Register performs email/password self-registration for student and
// employer roles. The exchange is sent without credentials: registration
// establishes no session, it only queues the account for OTP verification.
// The backend may echo a development OTP in [AuthResponse.DevOTP].
//
// Register may return an error when input validation, dependency calls, or security checks fail.
// Register does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Register(ctx context.Context, req RegisterRequest) (*FlowResult, error) {
	if e == nil || e.checker == nil {
		return nil, ErrEngineNotReady
	}

	spec := flowSpec{
		method:          http.MethodPost,
		path:            pathRegister,
		withCredentials: false,
		needsIdentity:   false,
		entry:           entryGeneric,
		navigate:        false,
		successEvent:    auditEventRegisterSuccess,
		failureEvent:    auditEventRegisterFailure,
		successMetric:   MetricRegisterSuccess,
		failureMetric:   MetricRegisterFailure,
	}

	fields := e.checker.Struct(req)
	if req.Role == RoleEmployer && req.OrganizationName == "" {
		fields = append(fields, "OrganizationName is required for employer registration")
	}
	if fields != nil {
		return nil, e.failLocal(ctx, spec, req.Email, fields)
	}

	return e.runExchange(ctx, spec, req, req.Email)
}
