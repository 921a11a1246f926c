package auth_test

import (
	"testing"

	"github.com/udaya-sanjeewa/charcoal-api/auth"
)

func TestTokenUsesConfiguredSecret(t *testing.T) {
	auth.SetSigningSecret("configured-secret")
	defer auth.SetSigningSecret("")

	token, err := auth.IssueToken("uid_1", "buyer@example.com", "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := auth.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims["user_id"] != "uid_1" {
		t.Errorf("expected uid_1, got %v", claims["user_id"])
	}

	// a token signed under a different key is rejected
	auth.SetSigningSecret("rotated-secret")
	if _, err := auth.ParseToken(token); err == nil {
		t.Error("token signed with the old secret should be rejected")
	}
}

func TestTokenFallsBackToEnvSecret(t *testing.T) {
	auth.SetSigningSecret("")
	t.Setenv("JWT_SECRET", "env-secret")

	token, err := auth.IssueToken("uid_2", "other@example.com", "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := auth.ParseToken(token); err != nil {
		t.Errorf("parse: %v", err)
	}
}
