// Package transport performs the raw HTTP credential exchanges against the
// portal backend. It owns the cookie jar that carries the server-issued
// session cookie and decides, per exchange, whether that jar participates.
// Response classification is not done here; callers receive the raw status,
// declared content type, and body.
package transport
