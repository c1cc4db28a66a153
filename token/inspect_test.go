package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestInspectExtractsClaims(t *testing.T) {
	issued := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	expires := issued.Add(time.Hour)

	raw := signedToken(t, jwt.MapClaims{
		"sub":  "user-42",
		"role": "employer",
		"iat":  issued.Unix(),
		"exp":  expires.Unix(),
	})

	info, err := Inspect(raw)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if info.Subject != "user-42" {
		t.Errorf("subject = %q", info.Subject)
	}
	if info.Role != "employer" {
		t.Errorf("role = %q", info.Role)
	}
	if !info.IssuedAt.Equal(issued) {
		t.Errorf("issued at = %v, want %v", info.IssuedAt, issued)
	}
	if !info.ExpiresAt.Equal(expires) {
		t.Errorf("expires at = %v, want %v", info.ExpiresAt, expires)
	}
}

func TestInspectIgnoresSignature(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{"sub": "user-42"})

	// Corrupt the signature segment; inspection must still succeed because
	// it never verifies.
	tampered := raw[:len(raw)-4] + "AAAA"

	info, err := Inspect(tampered)
	if err != nil {
		t.Fatalf("Inspect must not verify signatures: %v", err)
	}
	if info.Subject != "user-42" {
		t.Errorf("subject = %q", info.Subject)
	}
}

func TestInspectMissingTimestamps(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{"sub": "user-42"})

	info, err := Inspect(raw)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if !info.IssuedAt.IsZero() || !info.ExpiresAt.IsZero() {
		t.Errorf("absent timestamps must stay zero, got %+v", info)
	}
}

func TestInspectOpaqueValue(t *testing.T) {
	for _, raw := range []string{"", "opaque-session-handle", "a.b", "x.y.z"} {
		if _, err := Inspect(raw); !errors.Is(err, ErrNotAToken) {
			t.Errorf("Inspect(%q): expected ErrNotAToken, got %v", raw, err)
		}
	}
}
