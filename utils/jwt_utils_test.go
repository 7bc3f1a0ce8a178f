package utils

import (
	"testing"

	"github.com/dgrijalva/jwt-go"
)

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestExtractUsernameFromToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString := signToken(t, jwt.MapClaims{"username": "mirko", "role": "manager"}, "test-secret")
	username, err := ExtractUsernameFromToken(tokenString)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if username != "mirko" {
		t.Errorf("expected username mirko, got %q", username)
	}
}

func TestExtractUsernameFromTokenMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := ExtractUsernameFromToken("whatever"); err == nil {
		t.Fatal("expected error when JWT_SECRET is unset")
	}
}

func TestExtractUsernameFromTokenInvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := ExtractUsernameFromToken("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestExtractUsernameFromTokenMissingClaim(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString := signToken(t, jwt.MapClaims{"role": "manager"}, "test-secret")
	if _, err := ExtractUsernameFromToken(tokenString); err == nil {
		t.Fatal("expected error when username claim is absent")
	}
}

func TestExtractUsernameFromTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString := signToken(t, jwt.MapClaims{"username": "mirko"}, "another-secret")
	if _, err := ExtractUsernameFromToken(tokenString); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}
