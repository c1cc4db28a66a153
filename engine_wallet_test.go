package authflow

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWalletChallengeShape(t *testing.T) {
	challenge := WalletChallenge("0xabc123")

	lines := strings.Split(challenge, "\n")
	if len(lines) != 4 {
		t.Fatalf("challenge has %d lines, want 4: %q", len(lines), challenge)
	}
	if lines[0] != "credport login" {
		t.Errorf("header line = %q", lines[0])
	}
	if lines[1] != "address: 0xabc123" {
		t.Errorf("address line = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "nonce: ") {
		t.Errorf("nonce line = %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "issued-at: ") {
		t.Errorf("issued-at line = %q", lines[3])
	}
}

func TestWalletChallengeNoncesDiffer(t *testing.T) {
	if WalletChallenge("0xabc") == WalletChallenge("0xabc") {
		t.Fatal("consecutive challenges must not repeat")
	}
}

func TestWalletLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/wallet-login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeAuthJSON(t, w, http.StatusOK, userBody("employer", true))
	}))
	defer srv.Close()

	engine, nav := newTestEngine(t, srv.URL)

	message := WalletChallenge("0xabc123")
	result, err := engine.WalletLogin(context.Background(), WalletLoginRequest{
		Address:   "0xabc123",
		Signature: "0xsigned",
		Message:   message,
	})
	if err != nil {
		t.Fatalf("WalletLogin failed: %v", err)
	}
	if result.Route != "/employer" {
		t.Errorf("route = %q", result.Route)
	}
	if targets := nav.Targets(); len(targets) != 1 {
		t.Errorf("navigator targets = %v", targets)
	}
}

func TestWalletLoginPendingSetup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAuthJSON(t, w, http.StatusOK, map[string]any{
			"user": map[string]any{"role": "employer", "requiresPasswordSet": true},
		})
	}))
	defer srv.Close()

	engine, _ := newTestEngine(t, srv.URL)

	result, err := engine.WalletLogin(context.Background(), WalletLoginRequest{
		Address:   "0xabc123",
		Signature: "0xsigned",
		Message:   "credport login\naddress: 0xabc123\nnonce: n\nissued-at: now",
	})
	if err != nil {
		t.Fatalf("WalletLogin failed: %v", err)
	}
	if result.Route != "/set-password" {
		t.Errorf("route = %q, want /set-password", result.Route)
	}
}

func TestWalletLoginValidation(t *testing.T) {
	engine, _ := newTestEngine(t, "http://127.0.0.1:0")

	_, err := engine.WalletLogin(context.Background(), WalletLoginRequest{Address: "0xabc123"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestWalletLoginRejectedSignature(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAuthJSON(t, w, http.StatusUnauthorized, map[string]any{"error": "signature verification failed"})
	}))
	defer srv.Close()

	engine, _ := newTestEngine(t, srv.URL)

	_, err := engine.WalletLogin(context.Background(), WalletLoginRequest{
		Address:   "0xabc123",
		Signature: "0xforged",
		Message:   "credport login\naddress: 0xabc123\nnonce: n\nissued-at: now",
	})

	var appErr *ApplicationError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *ApplicationError, got %v", err)
	}
	if appErr.Message != "signature verification failed" {
		t.Errorf("message = %q", appErr.Message)
	}
}
