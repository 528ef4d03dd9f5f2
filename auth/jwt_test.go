package auth

import (
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.GenerateToken(42, "76561198000000042", "tester")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user ID 42, got %d", claims.UserID)
	}
	if claims.SteamID != "76561198000000042" {
		t.Errorf("unexpected steam ID %q", claims.SteamID)
	}
	if claims.Username != "tester" {
		t.Errorf("unexpected username %q", claims.Username)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", time.Hour).GenerateToken(1, "76561198000000001", "tester")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := NewJWTService("secret-b", time.Hour).ValidateToken(token); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	token, err := NewJWTService("secret", -time.Minute).GenerateToken(1, "76561198000000001", "tester")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := NewJWTService("secret", -time.Minute).ValidateToken(token); err == nil {
		t.Error("expected validation to fail for expired token")
	}
}

func TestParseSteamID64(t *testing.T) {
	id, err := ParseSteamID64(" 76561198012345678 ")
	if err != nil {
		t.Fatalf("ParseSteamID64 failed: %v", err)
	}
	if id != "76561198012345678" {
		t.Errorf("unexpected steam ID %q", id)
	}

	if _, err := ParseSteamID64("7656119801234567"); err == nil {
		t.Error("expected error for a 16-digit ID")
	}
	if _, err := ParseSteamID64("76561198o1234567x"); err == nil {
		t.Error("expected error for non-numeric ID")
	}
}
