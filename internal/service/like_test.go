package service

import (
	"errors"
	"testing"

	"github.com/gramline/gramline/internal/repository"
	"github.com/gramline/gramline/internal/validation"
)

func TestLikeRequiresTarget(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "")

	_, err := env.like.Like(alice.ID, nil, nil, nil)
	if !errors.Is(err, validation.ErrMissingTarget) {
		t.Fatalf("expected ErrMissingTarget, got %v", err)
	}

	_, err = env.like.Like(alice.ID, strptr("no-such-post"), nil, nil)
	if !errors.Is(err, repository.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestLikeDuplicate(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "")
	bob := env.register(t, "bob", "")

	post, err := env.post.Create(alice.ID, "a post", nil, nil)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	_, err = env.like.Like(bob.ID, &post.ID, nil, nil)
	if err != nil {
		t.Fatalf("first like: %v", err)
	}

	_, err = env.like.Like(bob.ID, &post.ID, nil, nil)
	if !errors.Is(err, repository.ErrDuplicateLike) {
		t.Fatalf("expected ErrDuplicateLike, got %v", err)
	}
}

func TestLikeIndependentTargets(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "")
	bob := env.register(t, "bob", "")

	post, err := env.post.Create(alice.ID, "a post", nil, nil)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	comment, err := env.comment.Create(alice.ID, &post.ID, nil, "a comment")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	// Liking the post and liking a comment on it are separate likes.
	_, err = env.like.Like(bob.ID, &post.ID, nil, nil)
	if err != nil {
		t.Fatalf("like post: %v", err)
	}
	_, err = env.like.Like(bob.ID, nil, nil, &comment.ID)
	if err != nil {
		t.Fatalf("like comment: %v", err)
	}
}

func TestLikeCountTracksLikes(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "")
	bob := env.register(t, "bob", "")
	carol := env.register(t, "carol", "")

	post, err := env.post.Create(alice.ID, "a post", nil, nil)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	likeBob, err := env.like.Like(bob.ID, &post.ID, nil, nil)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	_, err = env.like.Like(carol.ID, &post.ID, nil, nil)
	if err != nil {
		t.Fatalf("like: %v", err)
	}

	got, err := env.posts.ByID(post.ID)
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if got.LikeCount != 2 {
		t.Fatalf("expected like_count 2, got %d", got.LikeCount)
	}

	err = env.like.Unlike(bob.ID, likeBob.ID)
	if err != nil {
		t.Fatalf("unlike: %v", err)
	}

	got, err = env.posts.ByID(post.ID)
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if got.LikeCount != 1 {
		t.Fatalf("expected like_count 1 after unlike, got %d", got.LikeCount)
	}
}

func TestUnlikeOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "")
	bob := env.register(t, "bob", "")

	post, err := env.post.Create(alice.ID, "a post", nil, nil)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	like, err := env.like.Like(bob.ID, &post.ID, nil, nil)
	if err != nil {
		t.Fatalf("like: %v", err)
	}

	err = env.like.Unlike(alice.ID, like.ID)
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	err = env.like.Unlike(bob.ID, like.ID)
	if err != nil {
		t.Fatalf("unlike: %v", err)
	}

	err = env.like.Unlike(bob.ID, like.ID)
	if !errors.Is(err, repository.ErrLikeNotFound) {
		t.Fatalf("expected ErrLikeNotFound, got %v", err)
	}
}
