package authflow

import (
	"context"
	"net/http"
)

// VerifyOTP submits the one-time code that completes registration. A
// successful verification yields a full identity and routes like any other
// login; an admin identity writes its session markers before navigation.
//
// VerifyOTP may return an error when input validation, dependency calls, or security checks fail.
// VerifyOTP does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) VerifyOTP(ctx context.Context, req OTPVerifyRequest) (*FlowResult, error) {
	if e == nil || e.checker == nil {
		return nil, ErrEngineNotReady
	}

	spec := flowSpec{
		method:          http.MethodPost,
		path:            pathVerifyOTP,
		withCredentials: true,
		needsIdentity:   true,
		entry:           entryGeneric,
		navigate:        true,
		successEvent:    auditEventOTPVerifySuccess,
		failureEvent:    auditEventOTPVerifyFailure,
		successMetric:   MetricOTPVerifySuccess,
		failureMetric:   MetricOTPVerifyFailure,
	}

	if fields := e.checker.Struct(req); fields != nil {
		return nil, e.failLocal(ctx, spec, req.Email, fields)
	}

	return e.runExchange(ctx, spec, req, req.Email)
}

// ResendOTP asks the backend to issue a fresh one-time code. The exchange
// is sent without credentials and its success carries no identity: a 2xx
// JSON body without a user claim is a valid outcome here.
//
// ResendOTP may return an error when input validation, dependency calls, or security checks fail.
// ResendOTP does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ResendOTP(ctx context.Context, req OTPResendRequest) (*FlowResult, error) {
	if e == nil || e.checker == nil {
		return nil, ErrEngineNotReady
	}

	spec := flowSpec{
		method:          http.MethodPost,
		path:            pathResendOTP,
		withCredentials: false,
		needsIdentity:   false,
		entry:           entryGeneric,
		navigate:        false,
		successEvent:    auditEventOTPResendSuccess,
		failureEvent:    auditEventOTPResendFailure,
		successMetric:   MetricOTPResend,
		failureMetric:   MetricOTPResendFailure,
	}

	if fields := e.checker.Struct(req); fields != nil {
		return nil, e.failLocal(ctx, spec, req.Email, fields)
	}

	return e.runExchange(ctx, spec, req, req.Email)
}
