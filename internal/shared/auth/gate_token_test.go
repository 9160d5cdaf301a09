package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSignAndVerify(t *testing.T) {
	s, err := NewSigner("secret", time.Hour)
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	token, err := s.Sign("session-1", "true")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	claims, err := s.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.ID != "session-1" || claims.Flag != "true" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	s, _ := NewSigner("secret", time.Hour)
	other, _ := NewSigner("other", time.Hour)
	token, _ := other.Sign("session-1", "true")

	if _, err := s.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
	if _, err := s.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}

	good, _ := s.Sign("session-1", "true")
	parts := strings.Split(good, ".")
	parts[1] = parts[1] + "x"
	if _, err := s.Verify(strings.Join(parts, ".")); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for edited payload, got %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	s, _ := NewSigner("secret", time.Minute)
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }
	token, _ := s.Sign("session-1", "true")

	s.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := s.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestNewSignerRequiresSecret(t *testing.T) {
	if _, err := NewSigner("  ", time.Hour); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestSignRequiresSession(t *testing.T) {
	s, _ := NewSigner("secret", 0)
	if _, err := s.Sign("", "true"); err == nil {
		t.Fatal("expected error")
	}
}
