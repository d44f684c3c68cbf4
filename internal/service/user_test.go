package service

import (
	"strings"
	"testing"

	"github.com/gramline/gramline/internal/model"
)

func TestUpdateProfilePartial(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "")

	updated, err := env.user.UpdateProfile(alice.ID, strptr("hello there"), nil)
	if err != nil {
		t.Fatalf("update bio: %v", err)
	}
	if updated.Bio != "hello there" {
		t.Fatalf("expected bio update, got %q", updated.Bio)
	}
	if updated.ProfileStatus != model.ProfileStatusOpen {
		t.Fatalf("bio-only update must not change status, got %q", updated.ProfileStatus)
	}

	updated, err = env.user.UpdateProfile(alice.ID, nil, strptr("private"))
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.ProfileStatus != model.ProfileStatusPrivate {
		t.Fatalf("expected private status, got %q", updated.ProfileStatus)
	}
	if updated.Bio != "hello there" {
		t.Fatalf("status-only update must not change bio, got %q", updated.Bio)
	}
}

func TestUpdateProfileRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "")

	_, err := env.user.UpdateProfile(alice.ID, nil, strptr("invisible"))
	if err == nil {
		t.Fatal("expected error for unknown status")
	}

	longBio := strings.Repeat("x", 200)
	_, err = env.user.UpdateProfile(alice.ID, &longBio, nil)
	if err == nil {
		t.Fatal("expected error for oversized bio")
	}
}

func TestProfileFollowerFlag(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "")
	bob := env.register(t, "bob", "private")

	_, isFollower, err := env.user.Profile(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if isFollower {
		t.Fatal("expected isFollower false before following")
	}

	env.mustFollow(t, alice, bob)

	_, isFollower, err = env.user.Profile(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if !isFollower {
		t.Fatal("expected isFollower true after following")
	}
}
