package authflow

import "errors"

// UserMessage converts any pipeline failure into the single user-visible
// notification string. Every failure class is terminal for the attempt;
// nothing here implies a retry.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}

	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Message
	}

	switch {
	case errors.Is(err, ErrMalformedResponse):
		return "the server returned an unexpected response; check the portal address and try again"
	case errors.Is(err, ErrIdentityIncomplete):
		return "user profile data missing or corrupted"
	case errors.Is(err, ErrAccessRestricted):
		return "this account is not authorized for this sign-in page"
	case errors.Is(err, ErrExchangeInFlight):
		return "a request is already in progress"
	default:
		return "sign-in failed; please try again"
	}
}
