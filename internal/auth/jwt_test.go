package auth

import (
	"testing"

	"github.com/google/uuid"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", 1)
	userID := uuid.New()

	token, err := svc.Generate(userID, "amira@campus.edu", "student", []string{"student", "organizer"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user id = %s, want %s", claims.UserID, userID)
	}
	if claims.Role != "student" {
		t.Errorf("role = %s, want student", claims.Role)
	}
	if len(claims.Roles) != 2 || claims.Roles[1] != "organizer" {
		t.Errorf("roles = %v, want [student organizer]", claims.Roles)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", 1)
	if _, err := svc.Validate("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", 1).Generate(uuid.New(), "x@campus.edu", "student", nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewJWTService("secret-b", 1).Validate(token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}
