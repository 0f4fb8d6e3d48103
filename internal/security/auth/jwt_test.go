package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndVerify(t *testing.T) {
	tm := NewTokenManager("test-secret", "vecino")

	token, err := tm.Issue("user-1", "ana@example.com", "ana_r")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.ID != "user-1" {
		t.Errorf("id = %q", claims.ID)
	}
	if claims.Email != "ana@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if claims.Username != "ana_r" {
		t.Errorf("username = %q", claims.Username)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl > TokenTTL || ttl < TokenTTL-time.Minute {
		t.Errorf("expiry %v away, want about %v", ttl, TokenTTL)
	}
}

func TestIssueRequiresID(t *testing.T) {
	tm := NewTokenManager("test-secret", "vecino")

	if _, err := tm.Issue("", "ana@example.com", "ana_r"); err == nil {
		t.Fatal("expected an error for an empty id")
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", "vecino").Issue("user-1", "ana@example.com", "")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewTokenManager("secret-b", "vecino").Verify(token); err == nil {
		t.Fatal("expected verification to fail with a different secret")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	claims := Claims{
		ID:    "user-1",
		Email: "ana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			Issuer:    "vecino",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewTokenManager("test-secret", "vecino").Verify(token); err == nil {
		t.Fatal("expected verification of an expired token to fail")
	}
}

func TestVerifyGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", "vecino")

	if _, err := tm.Verify("not.a.token"); err == nil {
		t.Fatal("expected an error")
	}
}

func TestExtractToken(t *testing.T) {
	token, err := ExtractToken("Bearer abc123")
	if err != nil {
		t.Fatalf("ExtractToken() error = %v", err)
	}
	if token != "abc123" {
		t.Errorf("token = %q", token)
	}

	for _, header := range []string{"", "abc123", "Basic abc123", "Bearer a b"} {
		if _, err := ExtractToken(header); err == nil {
			t.Errorf("header %q: expected an error", header)
		}
	}
}
