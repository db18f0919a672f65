package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("secret", "user-1", "Sarah Chen")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken("secret", token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("expected user id 'user-1', got %q", claims.UserID)
	}
	if claims.Username != "Sarah Chen" {
		t.Errorf("expected username 'Sarah Chen', got %q", claims.Username)
	}
	if claims.ID == "" {
		t.Error("expected a token id")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _ := GenerateToken("secret", "user-1", "sarah")

	if _, err := ValidateToken("other", token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	claims := Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ValidateToken("secret", token); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected expired token error, got %v", err)
	}
}

func TestValidateTokenWithoutUser(t *testing.T) {
	token, _ := GenerateToken("secret", "", "nobody")

	if _, err := ValidateToken("secret", token); !errors.Is(err, ErrNoSubject) {
		t.Errorf("expected ErrNoSubject, got %v", err)
	}
}

func TestValidateTokenRejectsOtherAlgorithms(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ValidateToken("secret", token); err == nil {
		t.Error("expected error for unsigned token")
	}
}
