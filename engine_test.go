package authflow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// recordingNavigator captures every navigation target handed to it.
type recordingNavigator struct {
	mu      sync.Mutex
	targets []RouteTarget

	// onNavigate, when set, runs inside Navigate before recording. Tests use
	// it to observe engine state at the exact moment navigation happens.
	onNavigate func(RouteTarget) error
}

func (n *recordingNavigator) Navigate(_ context.Context, target RouteTarget) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.onNavigate != nil {
		if err := n.onNavigate(target); err != nil {
			return err
		}
	}
	n.targets = append(n.targets, target)
	return nil
}

func (n *recordingNavigator) Targets() []RouteTarget {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]RouteTarget, len(n.targets))
	copy(out, n.targets)
	return out
}

// testConfig returns a config pointed at baseURL with the navigation delay
// zeroed so tests do not sleep.
func testConfig(baseURL string) Config {
	cfg := DefaultConfig()
	cfg.HTTP.BaseURL = baseURL
	cfg.Routes.NavigationDelay = 0
	return cfg
}

func newTestEngine(t *testing.T, baseURL string, mutate ...func(*Builder)) (*Engine, *recordingNavigator) {
	t.Helper()

	nav := &recordingNavigator{}
	builder := New().
		WithConfig(testConfig(baseURL)).
		WithNavigator(nav).
		WithMetricsEnabled(true)
	for _, fn := range mutate {
		fn(builder)
	}

	engine, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine, nav
}

func writeAuthJSON(t *testing.T, w http.ResponseWriter, status int, body map[string]any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func userBody(role string, verified bool) map[string]any {
	return map[string]any{
		"user": map[string]any{"role": role, "isVerified": verified},
	}
}

func TestEngineNotReady(t *testing.T) {
	var engine *Engine

	if _, err := engine.Login(context.Background(), PasswordLoginRequest{}); err != ErrEngineNotReady {
		t.Fatalf("expected ErrEngineNotReady, got %v", err)
	}
	if _, err := engine.ResolveSession(context.Background()); err != ErrEngineNotReady {
		t.Fatalf("expected ErrEngineNotReady, got %v", err)
	}
	if err := engine.InvalidateMarkers(context.Background()); err != ErrEngineNotReady {
		t.Fatalf("expected ErrEngineNotReady, got %v", err)
	}
}

func TestNavigationDelayHonorsContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAuthJSON(t, w, http.StatusOK, userBody("student", true))
	}))
	defer srv.Close()

	nav := &recordingNavigator{}
	cfg := testConfig(srv.URL)
	cfg.Routes.NavigationDelay = 5 * time.Second

	engine, err := New().WithConfig(cfg).WithNavigator(nav).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	result, err := engine.Login(ctx, PasswordLoginRequest{
		Email:    "ada@example.edu",
		Password: "Sup3rSecret",
		Role:     RoleStudent,
	})
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled from deferred navigation, got %v", err)
	}
	// The terminal state was committed before the navigation wait.
	if result == nil || result.Route != "/student" {
		t.Fatalf("expected committed result with /student route, got %+v", result)
	}
	if len(nav.Targets()) != 0 {
		t.Fatalf("navigator must not fire after cancellation, got %v", nav.Targets())
	}
}
