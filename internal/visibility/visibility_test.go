package visibility

import (
	"testing"

	"github.com/gramline/gramline/internal/model"
)

func user(id, status string) *model.User {
	return &model.User{ID: id, ProfileStatus: status}
}

func TestCanView(t *testing.T) {
	cases := []struct {
		name       string
		viewerID   string
		owner      *model.User
		isFollower bool
		want       bool
	}{
		{"owner reads own private content", "u1", user("u1", "private"), false, true},
		{"anyone reads open content", "u2", user("u1", "open"), false, true},
		{"follower reads private content", "u2", user("u1", "private"), true, true},
		{"stranger blocked from private content", "u2", user("u1", "private"), false, false},
	}

	for _, c := range cases {
		got := CanView(c.viewerID, c.owner, c.isFollower)
		if got != c.want {
			t.Fatalf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestOpenDetailAllowed(t *testing.T) {
	if !OpenDetailAllowed(user("u1", "open")) {
		t.Fatal("open owner must pass")
	}
	// Strict status check: neither the owner nor a follower gets through.
	if OpenDetailAllowed(user("u1", "private")) {
		t.Fatal("private owner must be refused on the open route")
	}
}

func TestPrivateDetailAllowed(t *testing.T) {
	cases := []struct {
		name       string
		viewerID   string
		owner      *model.User
		isFollower bool
		want       bool
	}{
		{"owner of private content", "u1", user("u1", "private"), false, true},
		{"follower of private owner", "u2", user("u1", "private"), true, true},
		{"stranger to private owner", "u2", user("u1", "private"), false, false},
		{"owner of open content", "u1", user("u1", "open"), false, true},
		{"non-owner of open content", "u2", user("u1", "open"), false, false},
	}

	for _, c := range cases {
		got := PrivateDetailAllowed(c.viewerID, c.owner, c.isFollower)
		if got != c.want {
			t.Fatalf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}
