// Package markers owns the privileged client-local session markers.
//
// Markers are created exactly once per successful admin resolution and are
// never expired client-side; staleness is the server session's problem.
// They exist so a later page load can short-circuit re-authentication for
// admin-only views without a fresh network round-trip. The engine is the
// only writer; logout collaborators must call Clear.
package markers
