// Package middleware exposes the HTTP-side shell guard for admin-only views.
//
// # Guards
//
//   - [RequireAdminMarkers] gates a handler on the presence of the
//     privileged session markers, short-circuiting re-authentication on
//     later page loads without a network round-trip.
//
// # Architecture boundaries
//
// This package translates marker state into HTTP pass/redirect semantics.
// It does NOT authenticate anyone: a missing or cleared marker simply sends
// the visitor back through the normal login pipeline. Marker staleness is
// the server session's responsibility.
//
// # What this package must NOT do
//
//   - Write session markers (the engine is the only writer).
//   - Verify tokens or call the backend.
package middleware
