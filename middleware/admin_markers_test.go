package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/credport/authflow/markers"
)

func adminMarkers() markers.Markers {
	return markers.Markers{
		AdminAuthenticated: true,
		AdminLoginTime:     time.Now().UTC(),
		AdminToken:         "tok",
	}
}

func guardedProbe(t *testing.T, store markers.Store) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	var sawMarkers bool
	handler := RequireAdminMarkers(store, "/admin/login")(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, sawMarkers = MarkersFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/admin/portal", nil))
	return rec, sawMarkers
}

func TestGuardRedirectsWithoutMarkers(t *testing.T) {
	rec, _ := guardedProbe(t, markers.NewMemoryStore())

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != "/admin/login" {
		t.Errorf("redirect location = %q", got)
	}
}

func TestGuardRedirectsOnUnauthenticatedMarkers(t *testing.T) {
	store := markers.NewMemoryStore()
	m := adminMarkers()
	m.AdminAuthenticated = false
	if err := store.Put(context.Background(), m); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	rec, _ := guardedProbe(t, store)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect", rec.Code)
	}
}

func TestGuardPassesWithMarkers(t *testing.T) {
	store := markers.NewMemoryStore()
	if err := store.Put(context.Background(), adminMarkers()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	rec, sawMarkers := guardedProbe(t, store)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !sawMarkers {
		t.Error("markers must be injected into the request context")
	}
}

func TestGuardNilStoreRedirects(t *testing.T) {
	rec, _ := guardedProbe(t, nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect", rec.Code)
	}
}

func TestGuardClearedMarkersRedirectAgain(t *testing.T) {
	store := markers.NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, adminMarkers()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if rec, _ := guardedProbe(t, store); rec.Code != http.StatusOK {
		t.Fatalf("pre-clear status = %d", rec.Code)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if rec, _ := guardedProbe(t, store); rec.Code != http.StatusSeeOther {
		t.Fatalf("post-clear status = %d, want redirect", rec.Code)
	}
}

func TestMarkersFromContextAbsent(t *testing.T) {
	if _, ok := MarkersFromContext(context.Background()); ok {
		t.Fatal("bare context must carry no markers")
	}
}
