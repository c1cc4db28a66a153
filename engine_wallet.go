package authflow

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// WalletChallenge builds the message a wallet provider must sign for the
// given address. The nonce makes every challenge single-use on the server
// side; authflow itself keeps no challenge state.
func WalletChallenge(address string) string {
	return "credport login\naddress: " + address +
		"\nnonce: " + uuid.NewString() +
		"\nissued-at: " + time.Now().UTC().Format(time.RFC3339)
}

// WalletLogin forwards an address, a signature, and the signed challenge
// message to the backend. Signature production and verification are
// external: the wallet provider signs, the backend verifies. authflow only
// orchestrates the exchange and the resulting identity.
//
// WalletLogin may return an error when input validation, dependency calls, or security checks fail.
// WalletLogin does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) WalletLogin(ctx context.Context, req WalletLoginRequest) (*FlowResult, error) {
	if e == nil || e.checker == nil {
		return nil, ErrEngineNotReady
	}

	spec := flowSpec{
		method:          http.MethodPost,
		path:            pathWalletLogin,
		withCredentials: true,
		needsIdentity:   true,
		entry:           entryGeneric,
		navigate:        true,
		successEvent:    auditEventWalletLoginSuccess,
		failureEvent:    auditEventWalletLoginFailure,
		successMetric:   MetricWalletLoginSuccess,
		failureMetric:   MetricWalletLoginFailure,
	}

	if fields := e.checker.Struct(req); fields != nil {
		return nil, e.failLocal(ctx, spec, "", fields)
	}

	return e.runExchange(ctx, spec, req, "")
}
