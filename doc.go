// Package authflow is the client-side authentication orchestrator for the
// credport credential-verification portal.
//
// Four actor roles (student, employer, registrar, admin) reach the portal
// through password login, email/password registration with OTP verification,
// federated Google login, or wallet-signature login. authflow owns the state
// machine between a UI event and its terminal state: it dispatches exactly one
// credential exchange against the portal backend, normalizes and classifies
// the response, resolves role and pending-setup status, writes the privileged
// session markers for admin identities, and resolves the destination route.
//
// # Architecture boundaries
//
// authflow is the public surface. It exposes [Engine], [Builder], [Config],
// value types (AuthResponse, UserClaim, FlowResult, etc.) and the failure
// taxonomy in errors.go. Transport and request validation live under
// internal/ and are never exported. Session markers are owned by the markers
// subpackage; presentation code must never write them directly.
//
// # What this package must NOT do
//
//   - Render forms or pages, or hold any presentation state.
//   - Issue, verify, or refresh credentials itself; the portal backend, the
//     identity provider, and the wallet provider are external collaborators.
//   - Retry a failed exchange. Every classified failure is terminal for the
//     attempt; the user must resubmit.
//
// # Pipeline contract
//
// Dispatcher, Normalizer, Identity Resolver, Session Marker Manager, Route
// Resolver run in that order. Any stage can short-circuit with a classified
// failure, and no partial state is committed past the failing stage: markers
// are written only at the single terminal point of a successful admin
// resolution.
package authflow
