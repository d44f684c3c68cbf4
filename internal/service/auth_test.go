package service

import (
	"errors"
	"testing"

	"github.com/gramline/gramline/internal/model"
	"github.com/gramline/gramline/internal/repository"
)

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name     string
		username string
		email    string
		password string
		status   string
		ok       bool
	}{
		{"valid", "alice", "alice@example.com", "s3cure-horse-battery", "", true},
		{"short username", "ab", "ab@example.com", "s3cure-horse-battery", "", false},
		{"bad username chars", "bob!", "bob@example.com", "s3cure-horse-battery", "", false},
		{"bad email", "carol", "not-an-email", "s3cure-horse-battery", "", false},
		{"short password", "dave", "dave@example.com", "short", "", false},
		{"common password", "erin", "erin@example.com", "password12345", "", false},
		{"bad status", "frank", "frank@example.com", "s3cure-horse-battery", "hidden", false},
		{"private status", "grace", "grace@example.com", "s3cure-horse-battery", "private", true},
	}

	for _, c := range cases {
		user, err := env.auth.Register(c.username, c.email, c.password, "", c.status)
		if c.ok && err != nil {
			t.Fatalf("%s: expected ok, got %v", c.name, err)
		}
		if !c.ok && err == nil {
			t.Fatalf("%s: expected error, got nil", c.name)
		}
		if c.ok && c.status == "" && user.ProfileStatus != model.ProfileStatusOpen {
			t.Fatalf("%s: expected default open status, got %q", c.name, user.ProfileStatus)
		}
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "")

	_, err := env.auth.Register("alice", "other@example.com", "s3cure-horse-battery", "", "")
	if !errors.Is(err, repository.ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "")

	user, err := env.auth.Login("alice", "s3cure-horse-battery")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("expected alice, got %q", user.Username)
	}

	_, err = env.auth.Login("alice", "wrong-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	_, err = env.auth.Login("nobody", "s3cure-horse-battery")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "alice", "")

	token, err := env.auth.GenerateJWT(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := env.auth.VerifyJWT(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims["user_id"] != user.ID {
		t.Fatalf("expected user_id %q, got %v", user.ID, claims["user_id"])
	}

	_, err = env.auth.VerifyJWT(token + "tampered")
	if err == nil {
		t.Fatal("expected error for tampered token")
	}
}
