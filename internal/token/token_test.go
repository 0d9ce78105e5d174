package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestIssueValidate_RoundTrip(t *testing.T) {
	svc := NewService("test-secret", "test", time.Hour)

	tok, err := svc.Issue(42, "alice@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := svc.Validate(tok)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %q, want alice@example.com", claims.Email)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatal("issued-at and expiry must be embedded")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Errorf("expiry horizon = %s, want 1h", got)
	}
}

func TestValidate_Expired(t *testing.T) {
	svc := NewService("test-secret", "test", time.Nanosecond)
	// NewService only defaults non-positive TTLs, so a nanosecond sticks
	tok, err := svc.Issue(1, "bob@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, err := svc.Validate(tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(expired) = %v, want ErrInvalidToken", err)
	}
}

func TestValidate_Tampered(t *testing.T) {
	svc := NewService("test-secret", "test", time.Hour)
	tok, _ := svc.Issue(1, "bob@example.com")

	// flip a character in the signature segment
	tampered := tok[:len(tok)-2] + "xx"
	if _, err := svc.Validate(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(tampered) = %v, want ErrInvalidToken", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	issuer := NewService("secret-a", "test", time.Hour)
	verifier := NewService("secret-b", "test", time.Hour)

	tok, _ := issuer.Issue(1, "bob@example.com")
	if _, err := verifier.Validate(tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(wrong secret) = %v, want ErrInvalidToken", err)
	}
}

func TestValidate_Malformed(t *testing.T) {
	svc := NewService("test-secret", "test", time.Hour)
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Validate(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate(%q) = %v, want ErrInvalidToken", tok, err)
		}
	}
}

func TestFromAuthHeader(t *testing.T) {
	svc := NewService("test-secret", "test", time.Hour)
	tok, _ := svc.Issue(7, "carol@example.com")

	claims, err := svc.FromAuthHeader("Bearer " + tok)
	if err != nil {
		t.Fatalf("FromAuthHeader: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}

	// bearer keyword is case-insensitive
	if _, err := svc.FromAuthHeader("bearer " + tok); err != nil {
		t.Errorf("lowercase bearer rejected: %v", err)
	}
}

func TestFromAuthHeader_Malformed(t *testing.T) {
	svc := NewService("test-secret", "test", time.Hour)
	tok, _ := svc.Issue(7, "carol@example.com")

	cases := []string{
		"",
		tok,            // no scheme
		"Basic " + tok, // wrong scheme
		"Bearer",       // no token
		"Bearer ",      // empty token
	}
	for _, header := range cases {
		if _, err := svc.FromAuthHeader(header); !errors.Is(err, ErrMissingBearer) {
			t.Errorf("FromAuthHeader(%q) = %v, want ErrMissingBearer", header, err)
		}
	}
}

func TestFromAuthHeader_BadTokenIsNotMissingHeader(t *testing.T) {
	svc := NewService("test-secret", "test", time.Hour)
	_, err := svc.FromAuthHeader("Bearer not-a-token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
	if strings.Contains(err.Error(), "authorization header") {
		t.Errorf("bad token must not read as a header problem: %v", err)
	}
}
