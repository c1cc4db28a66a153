// Package token inspects portal access tokens without verifying them.
//
// The client has no signing key and never needs one: token contents are
// used for diagnostics only (whoami output, marker bookkeeping), never for
// an authentication decision. The server remains the sole verifier.
package token
