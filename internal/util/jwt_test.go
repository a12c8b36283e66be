package util

import (
	"testing"
	"time"

	"learnhub_backend/internal/model"
)

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{
		Name:  "测试用户",
		Email: "test@example.com",
		Role:  model.Instructor,
	}
	user.ID = 42
	secret := "unit-test-secret"

	token, err := GenerateJWT(user, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	claims, err := ParseJWT(token, secret)
	if err != nil {
		t.Fatalf("ParseJWT failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("userID = %d, want 42", claims.UserID)
	}
	if claims.Role != model.Instructor {
		t.Errorf("role = %s, want instructor", claims.Role)
	}
	if claims.Email != "test@example.com" {
		t.Errorf("email = %s, want test@example.com", claims.Email)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	user := &model.User{Email: "test@example.com", Role: model.Student}
	user.ID = 1

	token, err := GenerateJWT(user, "secret-a", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	if _, err := ParseJWT(token, "secret-b"); err == nil {
		t.Error("expected error when parsing with wrong secret")
	}
}

func TestParseJWTExpired(t *testing.T) {
	user := &model.User{Email: "test@example.com", Role: model.Student}
	user.ID = 1

	token, err := GenerateJWT(user, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	if _, err := ParseJWT(token, "secret"); err == nil {
		t.Error("expected error for expired token")
	}
}
