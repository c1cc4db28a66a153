package markers

import (
	"context"
	"errors"
	"time"
)

// ErrStoreUnavailable is returned when the backing store cannot be reached.
var ErrStoreUnavailable = errors.New("markers: store unavailable")

// Markers is the full privileged marker set. AdminToken is optional: it is
// recorded only when the server supplied one alongside the admin identity.
type Markers struct {
	AdminAuthenticated bool      `json:"admin_authenticated"`
	AdminLoginTime     time.Time `json:"admin_login_time"`
	AdminToken         string    `json:"admin_token,omitempty"`
}

// Store is the owned marker store. Writes happen only at the terminal
// point of a successful admin resolution; everything else reads.
type Store interface {
	// Put replaces the marker set.
	Put(ctx context.Context, m Markers) error

	// Get returns the current markers. The second value is false when no
	// markers have been written since the last Clear.
	Get(ctx context.Context) (Markers, bool, error)

	// Clear removes the markers. Logout collaborators are contractually
	// required to call it; nothing clears markers automatically.
	Clear(ctx context.Context) error
}
