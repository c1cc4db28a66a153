package internaldefs

import (
	authflow "github.com/credport/authflow"
)

// CounterDef defines a public type used by authflow APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   authflow.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by authflow APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   authflow.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the authentication orchestrator.
var CounterDefs = []CounterDef{
	{ID: authflow.MetricLoginSuccess, Name: "authflow_login_success_total", Help: "Successful login exchanges."},
	{ID: authflow.MetricLoginFailure, Name: "authflow_login_failure_total", Help: "Failed login exchanges."},
	{ID: authflow.MetricRegisterSuccess, Name: "authflow_register_success_total", Help: "Successful registration exchanges."},
	{ID: authflow.MetricRegisterFailure, Name: "authflow_register_failure_total", Help: "Failed registration exchanges."},
	{ID: authflow.MetricGoogleLoginSuccess, Name: "authflow_google_login_success_total", Help: "Successful federated Google logins."},
	{ID: authflow.MetricGoogleLoginFailure, Name: "authflow_google_login_failure_total", Help: "Failed federated Google logins."},
	{ID: authflow.MetricWalletLoginSuccess, Name: "authflow_wallet_login_success_total", Help: "Successful wallet-signature logins."},
	{ID: authflow.MetricWalletLoginFailure, Name: "authflow_wallet_login_failure_total", Help: "Failed wallet-signature logins."},
	{ID: authflow.MetricOTPVerifySuccess, Name: "authflow_otp_verify_success_total", Help: "Successful OTP verifications."},
	{ID: authflow.MetricOTPVerifyFailure, Name: "authflow_otp_verify_failure_total", Help: "Failed OTP verifications."},
	{ID: authflow.MetricOTPResend, Name: "authflow_otp_resend_total", Help: "Successful OTP resend exchanges."},
	{ID: authflow.MetricOTPResendFailure, Name: "authflow_otp_resend_failure_total", Help: "Failed OTP resend exchanges."},
	{ID: authflow.MetricSetPasswordSuccess, Name: "authflow_set_password_success_total", Help: "Successful set-password completions."},
	{ID: authflow.MetricSetPasswordFailure, Name: "authflow_set_password_failure_total", Help: "Failed set-password attempts."},
	{ID: authflow.MetricSessionResolved, Name: "authflow_session_resolved_total", Help: "Silent session re-resolutions."},
	{ID: authflow.MetricSessionResolveFailure, Name: "authflow_session_resolve_failure_total", Help: "Failed silent session re-resolutions."},
	{ID: authflow.MetricValidationRejected, Name: "authflow_validation_rejected_total", Help: "Exchanges rejected locally before any network call."},
	{ID: authflow.MetricMalformedResponse, Name: "authflow_malformed_response_total", Help: "Non-JSON backend responses."},
	{ID: authflow.MetricIdentityIncomplete, Name: "authflow_identity_incomplete_total", Help: "Successful exchanges with unusable identity payloads."},
	{ID: authflow.MetricAccessRestricted, Name: "authflow_access_restricted_total", Help: "Authenticated identities rejected by entry-point authorization."},
	{ID: authflow.MetricExchangeGateBlocked, Name: "authflow_exchange_gate_blocked_total", Help: "Submissions blocked by the in-flight gate."},
	{ID: authflow.MetricMarkersWritten, Name: "authflow_markers_written_total", Help: "Admin session marker writes."},
	{ID: authflow.MetricMarkersCleared, Name: "authflow_markers_cleared_total", Help: "Admin session marker clears."},
	{ID: authflow.MetricNavigationPerformed, Name: "authflow_navigation_performed_total", Help: "Deferred navigations performed after terminal success."},
}

// HistogramDefs is an exported constant or variable used by the authentication orchestrator.
var HistogramDefs = []HistogramDef{
	{ID: authflow.MetricExchangeLatency, Name: "authflow_exchange_latency", Help: "Credential exchange latency distribution."},
}

// HistogramBounds is an exported constant or variable used by the authentication orchestrator.
var HistogramBounds = []string{"0.01", "0.025", "0.05", "0.1", "0.25", "0.5", "1", "+Inf"}

// HistogramBoundSuffix is an exported constant or variable used by the authentication orchestrator.
var HistogramBoundSuffix = []string{"10ms", "25ms", "50ms", "100ms", "250ms", "500ms", "1s", "inf"}

// NormalizeBuckets pads or truncates a snapshot bucket slice to the fixed
// eight-bucket layout.
func NormalizeBuckets(buckets []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(buckets); i++ {
		out[i] = buckets[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative form
// both exposition formats expect.
func CumulativeBuckets(buckets [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(buckets); i++ {
		running += buckets[i]
		out[i] = running
	}
	return out
}
