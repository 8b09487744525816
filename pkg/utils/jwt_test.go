package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "thienxuan", "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("user ID = %s, want %s", claims.UserID, userID)
	}
	if claims.Username != "thienxuan" || claims.Role != "admin" {
		t.Fatalf("claims = %q/%q, want thienxuan/admin", claims.Username, claims.Role)
	}
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	m := NewJWTManager("secret", -time.Hour, 24*time.Hour)

	token, err := m.GenerateAccessToken(uuid.New(), "u", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Fatal("expired token was accepted")
	}
}

func TestTokenWithWrongSecretRejected(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)
	other := NewJWTManager("different", time.Hour, 24*time.Hour)

	token, err := m.GenerateAccessToken(uuid.New(), "u", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Fatal("token signed with another secret was accepted")
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := m.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	got, err := m.ValidateRefreshToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got != userID {
		t.Fatalf("user ID = %s, want %s", got, userID)
	}
}

func TestRefreshTokenNotValidAsAccessClaims(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)

	if _, err := m.ValidateRefreshToken("garbage"); err == nil {
		t.Fatal("garbage refresh token was accepted")
	}
}
