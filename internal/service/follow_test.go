package service

import (
	"errors"
	"testing"

	"github.com/gramline/gramline/internal/repository"
)

func TestFollowSelf(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "")

	_, err := env.follow.Follow(alice.ID, alice.ID)
	if !errors.Is(err, ErrSelfFollow) {
		t.Fatalf("expected ErrSelfFollow, got %v", err)
	}
}

func TestFollowDuplicate(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "")
	bob := env.register(t, "bob", "")

	env.mustFollow(t, alice, bob)

	_, err := env.follow.Follow(alice.ID, bob.ID)
	if !errors.Is(err, repository.ErrDuplicateFollow) {
		t.Fatalf("expected ErrDuplicateFollow, got %v", err)
	}
}

func TestFollowUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "")

	_, err := env.follow.Follow(alice.ID, "no-such-user")
	if !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUnfollow(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "")
	bob := env.register(t, "bob", "")

	env.mustFollow(t, alice, bob)

	err := env.follow.Unfollow(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("unfollow: %v", err)
	}

	err = env.follow.Unfollow(alice.ID, bob.ID)
	if !errors.Is(err, repository.ErrFollowNotFound) {
		t.Fatalf("expected ErrFollowNotFound, got %v", err)
	}
}

func TestFollowLists(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "")
	bob := env.register(t, "bob", "")
	carol := env.register(t, "carol", "")

	env.mustFollow(t, alice, carol)
	env.mustFollow(t, bob, carol)
	env.mustFollow(t, carol, alice)

	followers, err := env.follow.Followers(carol.ID)
	if err != nil {
		t.Fatalf("followers: %v", err)
	}
	if len(followers) != 2 {
		t.Fatalf("expected 2 followers, got %d", len(followers))
	}

	following, err := env.follow.Following(carol.ID)
	if err != nil {
		t.Fatalf("following: %v", err)
	}
	if len(following) != 1 || following[0].Username != "alice" {
		t.Fatalf("expected carol to follow only alice, got %d entries", len(following))
	}

	// Edges are directed: alice follows carol, not the other way round.
	isFollower, err := env.follow.IsFollowing(alice.ID, carol.ID)
	if err != nil || !isFollower {
		t.Fatalf("expected alice -> carol edge, got %v %v", isFollower, err)
	}
	isFollower, err = env.follow.IsFollowing(bob.ID, alice.ID)
	if err != nil || isFollower {
		t.Fatalf("expected no bob -> alice edge, got %v %v", isFollower, err)
	}
}

func TestProfileCounts(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "")
	bob := env.register(t, "bob", "")
	carol := env.register(t, "carol", "")

	env.mustFollow(t, bob, alice)
	env.mustFollow(t, carol, alice)
	env.mustFollow(t, alice, bob)

	profile, _, err := env.user.Profile(alice.ID, alice.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.FollowersCount != 2 {
		t.Fatalf("expected 2 followers, got %d", profile.FollowersCount)
	}
	if profile.FollowingCount != 1 {
		t.Fatalf("expected 1 following, got %d", profile.FollowingCount)
	}
}
