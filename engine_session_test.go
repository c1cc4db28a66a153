package authflow

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveSessionNeverNavigates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/auth/me" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeAuthJSON(t, w, http.StatusOK, userBody("registrar", true))
	}))
	defer srv.Close()

	engine, nav := newTestEngine(t, srv.URL)

	result, err := engine.ResolveSession(context.Background())
	if err != nil {
		t.Fatalf("ResolveSession failed: %v", err)
	}
	if result.Route != "/registrar" {
		t.Errorf("route = %q", result.Route)
	}
	if len(nav.Targets()) != 0 {
		t.Error("session resolution must never navigate")
	}
}

func TestResolveSessionAdminRefreshesMarkers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAuthJSON(t, w, http.StatusOK, map[string]any{
			"user":        map[string]any{"role": "admin", "isVerified": true},
			"accessToken": "refreshed-tok",
		})
	}))
	defer srv.Close()

	engine, _ := newTestEngine(t, srv.URL)

	if _, err := engine.ResolveSession(context.Background()); err != nil {
		t.Fatalf("ResolveSession failed: %v", err)
	}

	m, present, err := engine.Markers().Get(context.Background())
	if err != nil || !present {
		t.Fatalf("markers missing: present=%t err=%v", present, err)
	}
	if m.AdminToken != "refreshed-tok" {
		t.Errorf("admin token = %q", m.AdminToken)
	}
}

func TestResolveSessionExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAuthJSON(t, w, http.StatusUnauthorized, map[string]any{"error": "not authenticated"})
	}))
	defer srv.Close()

	engine, _ := newTestEngine(t, srv.URL)

	_, err := engine.ResolveSession(context.Background())
	if !errors.Is(err, ErrApplication) {
		t.Fatalf("expected ErrApplication, got %v", err)
	}

	snapshot := engine.MetricsSnapshot()
	if snapshot.Counters[MetricSessionResolveFailure] != 1 {
		t.Error("resolve failure must be counted")
	}
}

func TestInvalidateMarkers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAuthJSON(t, w, http.StatusOK, map[string]any{
			"user":        map[string]any{"role": "admin", "isVerified": true},
			"accessToken": "tok",
		})
	}))
	defer srv.Close()

	engine, _ := newTestEngine(t, srv.URL)
	ctx := context.Background()

	if _, err := engine.AdminLogin(ctx, AdminLoginRequest{Username: "root", Password: "RootPass#1"}); err != nil {
		t.Fatalf("AdminLogin failed: %v", err)
	}
	if _, present, _ := engine.Markers().Get(ctx); !present {
		t.Fatal("markers expected after admin login")
	}

	if err := engine.InvalidateMarkers(ctx); err != nil {
		t.Fatalf("InvalidateMarkers failed: %v", err)
	}
	if _, present, _ := engine.Markers().Get(ctx); present {
		t.Fatal("markers must be gone after invalidation")
	}

	// Clearing an already-clear store is not an error.
	if err := engine.InvalidateMarkers(ctx); err != nil {
		t.Fatalf("second InvalidateMarkers failed: %v", err)
	}

	snapshot := engine.MetricsSnapshot()
	if snapshot.Counters[MetricMarkersCleared] != 2 {
		t.Errorf("markers cleared count = %d, want 2", snapshot.Counters[MetricMarkersCleared])
	}
}
