package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/web-visions/energy-solar-backend/pkg/config"
	"github.com/web-visions/energy-solar-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "energy-solar-test",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	payload := AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "buyer@example.com",
		Role:   enums.UserRoleUser,
	}

	signed, err := MintAccessToken(cfg, time.Now(), payload)
	if err != nil {
		t.Fatalf("MintAccessToken returned error: %v", err)
	}

	claims, err := ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("ParseAccessToken returned error: %v", err)
	}
	if claims.UserID != payload.UserID {
		t.Fatalf("user id = %s, want %s", claims.UserID, payload.UserID)
	}
	if claims.Email != payload.Email {
		t.Fatalf("email = %q, want %q", claims.Email, payload.Email)
	}
	if claims.Role != enums.UserRoleUser {
		t.Fatalf("role = %q, want %q", claims.Role, enums.UserRoleUser)
	}
}

func TestMintAccessTokenValidation(t *testing.T) {
	payload := AccessTokenPayload{UserID: uuid.New(), Role: enums.UserRoleUser}

	cfg := testJWTConfig()
	cfg.Secret = ""
	if _, err := MintAccessToken(cfg, time.Now(), payload); err == nil {
		t.Fatal("expected error for missing secret")
	}

	cfg = testJWTConfig()
	payload.Role = enums.UserRole("superuser")
	if _, err := MintAccessToken(cfg, time.Now(), payload); err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	payload := AccessTokenPayload{UserID: uuid.New(), Role: enums.UserRoleUser}

	signed, err := MintAccessToken(cfg, time.Now().Add(-time.Hour), payload)
	if err != nil {
		t.Fatalf("MintAccessToken returned error: %v", err)
	}
	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	payload := AccessTokenPayload{UserID: uuid.New(), Role: enums.UserRoleAdmin}

	signed, err := MintAccessToken(cfg, time.Now(), payload)
	if err != nil {
		t.Fatalf("MintAccessToken returned error: %v", err)
	}

	other := cfg
	other.Secret = "different-secret"
	if _, err := ParseAccessToken(other, signed); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}
