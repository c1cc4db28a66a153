package authflow

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrValidation is an exported constant or variable used by the authentication orchestrator.
	ErrValidation = errors.New("request validation failed")
	// ErrMalformedResponse is an exported constant or variable used by the authentication orchestrator.
	ErrMalformedResponse = errors.New("malformed backend response")
	// ErrApplication is an exported constant or variable used by the authentication orchestrator.
	ErrApplication = errors.New("request rejected by backend")
	// ErrIdentityIncomplete is an exported constant or variable used by the authentication orchestrator.
	ErrIdentityIncomplete = errors.New("user profile data missing or corrupted")
	// ErrAccessRestricted is an exported constant or variable used by the authentication orchestrator.
	ErrAccessRestricted = errors.New("access restricted for this entry point")
	// ErrExchangeInFlight is an exported constant or variable used by the authentication orchestrator.
	ErrExchangeInFlight = errors.New("credential exchange already in flight for this surface")
	// ErrEngineNotReady is an exported constant or variable used by the authentication orchestrator.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrMarkerStoreUnavailable is an exported constant or variable used by the authentication orchestrator.
	ErrMarkerStoreUnavailable = errors.New("session marker store unavailable")
)

// ValidationError reports a local, pre-network rejection. Zero network
// calls were made when a ValidationError is returned.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// MalformedResponseError reports a response whose declared content type is
// not JSON. This usually indicates a misrouted request (wrong backend
// address) rather than a rejected credential, so it is kept distinct from
// [ApplicationError].
type MalformedResponseError struct {
	StatusCode  int
	ContentType string
	Preview     string
}

func (e *MalformedResponseError) Error() string {
	if e == nil {
		return ErrMalformedResponse.Error()
	}
	return ErrMalformedResponse.Error() + ": status " + strconv.Itoa(e.StatusCode) +
		", content-type " + strconv.Quote(e.ContentType) + ", body " + strconv.Quote(e.Preview)
}

func (e *MalformedResponseError) Unwrap() error { return ErrMalformedResponse }

// ApplicationError reports a structured rejection from the backend: a JSON
// body with a non-success status. Message carries the highest-priority
// server message (joined field errors, then error, then message).
type ApplicationError struct {
	StatusCode  int
	Message     string
	FieldErrors []string
}

func (e *ApplicationError) Error() string {
	if e == nil || e.Message == "" {
		return ErrApplication.Error()
	}
	return e.Message
}

func (e *ApplicationError) Unwrap() error { return ErrApplication }

// AccessRestrictedError reports a successfully authenticated identity whose
// role is not authorized for the entry point it came through.
// Authentication and authorization are distinct, sequential checks.
type AccessRestrictedError struct {
	Role Role
}

func (e *AccessRestrictedError) Error() string {
	if e == nil || e.Role == "" {
		return ErrAccessRestricted.Error()
	}
	return ErrAccessRestricted.Error() + ": role " + string(e.Role)
}

func (e *AccessRestrictedError) Unwrap() error { return ErrAccessRestricted }
