package authflow

import "strings"

// Role is the canonical actor role of a portal identity. Roles are
// case-insensitive on the wire and canonicalized to lowercase on ingestion.
//
// Role instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Role string

const (
	// RoleStudent is an exported constant or variable used by the authentication orchestrator.
	RoleStudent Role = "student"
	// RoleEmployer is an exported constant or variable used by the authentication orchestrator.
	RoleEmployer Role = "employer"
	// RoleRegistrar is an exported constant or variable used by the authentication orchestrator.
	RoleRegistrar Role = "registrar"
	// RoleAdmin is an exported constant or variable used by the authentication orchestrator.
	RoleAdmin Role = "admin"
)

// ParseRole canonicalizes a wire role string. The second return value is
// false for an absent or unrecognized role; callers must never default it.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleEmployer:
		return RoleEmployer, true
	case RoleRegistrar:
		return RoleRegistrar, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// RouteTarget is a resolved destination path. Targets are derived by the
// route resolver and never stored.
type RouteTarget string

// PasswordLoginRequest is the input for [Engine.Login] and
// [Engine.RegistrarLogin].
type PasswordLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role,omitempty"`
}

// AdminLoginRequest is the input for [Engine.AdminLogin]. The admin entry
// point authenticates by username, not email.
type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the input for [Engine.Register]. ConfirmPassword is
// checked locally and never sent to the backend. OrganizationName is
// required only for employer self-registration.
type RegisterRequest struct {
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,portalpassword"`
	ConfirmPassword  string `json:"-" validate:"required,eqfield=Password"`
	Role             Role   `json:"role" validate:"required,oneof=student employer"`
	OrganizationName string `json:"organizationName,omitempty"`
}

// GoogleLoginRequest is the input for [Engine.GoogleLogin]. IDToken is the
// opaque identity token minted by the federated provider; authflow forwards
// it without inspection.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
	Role    Role   `json:"role,omitempty"`
}

// WalletLoginRequest is the input for [Engine.WalletLogin]. Signature must
// cover Message exactly as produced by [WalletChallenge]; authflow
// forwards the triple without verifying it.
type WalletLoginRequest struct {
	Address   string `json:"address" validate:"required"`
	Signature string `json:"signature" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

// OTPVerifyRequest is the input for [Engine.VerifyOTP].
type OTPVerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

// OTPResendRequest is the input for [Engine.ResendOTP]. Resend establishes
// no session and is sent without credentials.
type OTPResendRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SetPasswordRequest is the input for [Engine.SetPassword], the terminal
// step of the pending-setup state. ConfirmPassword is checked locally only.
type SetPasswordRequest struct {
	Password        string `json:"password" validate:"required,portalpassword"`
	ConfirmPassword string `json:"-" validate:"required,eqfield=Password"`
}

// UserClaim is the normalized identity claim extracted from a successful
// exchange. A claim with RequiresPasswordSet=true is a pending-setup
// intermediate identity and must never be routed by role.
type UserClaim struct {
	Role                Role `json:"role"`
	IsVerified          bool `json:"isVerified"`
	RequiresPasswordSet bool `json:"requiresPasswordSet"`
}

// AuthResponse is the fully normalized server response. It is either
// trusted in full or converted to a classified failure by the normalizer,
// never partially trusted. AccessToken carries the unified token field
// (wire "accessToken" preferred over legacy "token").
type AuthResponse struct {
	OK          bool
	User        *UserClaim
	AccessToken string
	DevOTP      string
}

// ResolvedState is the output of the identity resolver and the sole input
// of the route resolver.
type ResolvedState struct {
	// PendingSetup is the highest-priority state: the identity exists but
	// has no password yet and must be sent to the set-password destination
	// regardless of role.
	PendingSetup bool
	Role         Role
	IsVerified   bool
}

// FlowResult is returned by every terminal engine flow. Route is the
// resolved destination; Response carries server-supplied extras such as
// the unified access token and the development OTP echo.
type FlowResult struct {
	State    ResolvedState
	Route    RouteTarget
	Response *AuthResponse
}
