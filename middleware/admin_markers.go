package middleware

import (
	"context"
	"net/http"

	"github.com/credport/authflow/markers"
)

type markersContextKey struct{}

// MarkersFromContext returns the markers injected by [RequireAdminMarkers].
func MarkersFromContext(ctx context.Context) (markers.Markers, bool) {
	m, ok := ctx.Value(markersContextKey{}).(markers.Markers)
	return m, ok
}

// RequireAdminMarkers gates a handler on an authenticated admin marker set.
// Visitors without markers are redirected to loginPath instead of being
// refused outright, so an expired shell state degrades into a fresh login.
func RequireAdminMarkers(store markers.Store, loginPath string) func(http.Handler) http.Handler {
	if loginPath == "" {
		loginPath = "/"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			m, ok, err := store.Get(r.Context())
			if err != nil || !ok || !m.AdminAuthenticated {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), markersContextKey{}, m)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
