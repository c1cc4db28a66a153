package authflow

import (
	"context"
	"time"
)

const (
	auditEventLoginSuccess          = "login_success"
	auditEventLoginFailure          = "login_failure"
	auditEventAdminLoginSuccess     = "admin_login_success"
	auditEventAdminLoginFailure     = "admin_login_failure"
	auditEventRegistrarLoginSuccess = "registrar_login_success"
	auditEventRegistrarLoginFailure = "registrar_login_failure"
	auditEventRegisterSuccess       = "register_success"
	auditEventRegisterFailure       = "register_failure"
	auditEventGoogleLoginSuccess    = "google_login_success"
	auditEventGoogleLoginFailure    = "google_login_failure"
	auditEventWalletLoginSuccess    = "wallet_login_success"
	auditEventWalletLoginFailure    = "wallet_login_failure"
	auditEventOTPVerifySuccess      = "otp_verify_success"
	auditEventOTPVerifyFailure      = "otp_verify_failure"
	auditEventOTPResendSuccess      = "otp_resend_success"
	auditEventOTPResendFailure      = "otp_resend_failure"
	auditEventSetPasswordSuccess    = "set_password_success"
	auditEventSetPasswordFailure    = "set_password_failure"
	auditEventSessionResolved       = "session_resolved"
	auditEventSessionResolveFailure = "session_resolve_failure"
	auditEventMarkersWritten        = "markers_written"
	auditEventMarkersCleared        = "markers_cleared"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	email string,
	role Role,
	failure error,
	metadataFn func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp:     time.Now().UTC(),
		EventType:     eventType,
		Surface:       surfaceFromContext(ctx),
		Email:         email,
		Role:          role,
		CorrelationID: correlationIDFromContext(ctx),
		Success:       success,
	}
	if failure != nil {
		event.Error = failure.Error()
	}
	if metadataFn != nil {
		event.Metadata = metadataFn()
	}

	e.audit.Emit(ctx, event)
}
