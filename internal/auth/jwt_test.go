package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	m := &Manager{Secret: []byte("test-secret"), TTL: time.Hour}

	raw, err := m.Issue("user-1", "u@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := m.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("UserID = %q", claims.UserID)
	}
	if claims.Email != "u@example.com" {
		t.Fatalf("Email = %q", claims.Email)
	}
}

func TestParseExpiredToken(t *testing.T) {
	m := &Manager{Secret: []byte("test-secret"), TTL: -time.Minute}

	raw, err := m.Issue("user-1", "")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := m.Parse(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseWrongSecret(t *testing.T) {
	issuer := &Manager{Secret: []byte("secret-a"), TTL: time.Hour}
	verifier := &Manager{Secret: []byte("secret-b"), TTL: time.Hour}

	raw, err := issuer.Issue("user-1", "")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifier.Parse(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseGarbage(t *testing.T) {
	m := &Manager{Secret: []byte("test-secret"), TTL: time.Hour}
	if _, err := m.Parse("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
