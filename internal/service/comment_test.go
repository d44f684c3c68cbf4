package service

import (
	"errors"
	"testing"
	"time"

	"github.com/gramline/gramline/internal/repository"
	"github.com/gramline/gramline/internal/validation"
)

func TestCommentRequiresTargetAndText(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "")

	_, err := env.comment.Create(alice.ID, nil, nil, "hello")
	if !errors.Is(err, validation.ErrMissingTarget) {
		t.Fatalf("expected ErrMissingTarget, got %v", err)
	}

	post, err := env.post.Create(alice.ID, "a post", nil, nil)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	_, err = env.comment.Create(alice.ID, &post.ID, nil, "   ")
	if !errors.Is(err, ErrTextRequired) {
		t.Fatalf("expected ErrTextRequired, got %v", err)
	}

	comment, err := env.comment.Create(alice.ID, &post.ID, nil, "nice")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if comment.PostID == nil || *comment.PostID != post.ID {
		t.Fatalf("expected comment bound to post, got %+v", comment)
	}
}

func TestCommentUnknownTarget(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "")

	_, err := env.comment.Create(alice.ID, strptr("no-such-post"), nil, "hello")
	if !errors.Is(err, repository.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestCommentOnExpiredStory(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "")

	expired := env.backdatedStory(t, alice.ID, "old", 30*time.Hour)

	_, err := env.comment.Create(alice.ID, nil, &expired.ID, "too late")
	if !errors.Is(err, repository.ErrStoryNotFound) {
		t.Fatalf("expected ErrStoryNotFound, got %v", err)
	}
}

func TestCommentListVisibility(t *testing.T) {
	env := newTestEnv(t)
	priya := env.register(t, "priya", "private")
	fan := env.register(t, "fan", "")
	other := env.register(t, "other", "")

	env.mustFollow(t, fan, priya)

	post, err := env.post.Create(priya.ID, "a post", nil, nil)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	_, err = env.comment.Create(priya.ID, &post.ID, nil, "self comment")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	rows, err := env.comment.ForPost(fan.ID, post.ID)
	if err != nil {
		t.Fatalf("follower list: %v", err)
	}
	if len(rows) != 1 || rows[0].OwnerUsername != "priya" {
		t.Fatalf("unexpected comment rows: %d", len(rows))
	}

	_, err = env.comment.ForPost(other.ID, post.ID)
	if !errors.Is(err, ErrPrivateContent) {
		t.Fatalf("expected ErrPrivateContent for stranger, got %v", err)
	}
}

func TestCommentDeleteOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "")
	bob := env.register(t, "bob", "")

	post, err := env.post.Create(alice.ID, "a post", nil, nil)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	comment, err := env.comment.Create(bob.ID, &post.ID, nil, "from bob")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	err = env.comment.Delete(alice.ID, comment.ID)
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	err = env.comment.Delete(bob.ID, comment.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
}
