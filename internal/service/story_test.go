package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gramline/gramline/internal/model"
	"github.com/gramline/gramline/internal/repository"
	"github.com/gramline/gramline/internal/validation"
)

func (e *testEnv) backdatedStory(t *testing.T, userID, caption string, age time.Duration) *model.Story {
	t.Helper()

	story := &model.Story{
		ID:        uuid.New().String(),
		UserID:    userID,
		Caption:   caption,
		CreatedAt: time.Now().UTC().Add(-age),
	}
	err := e.stories.Create(story)
	if err != nil {
		t.Fatalf("insert story: %v", err)
	}
	return story
}

func TestStoryBatchAllOrNothing(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "")

	_, err := env.story.CreateBatch(alice.ID, []string{"one", "  ", "three"})
	if !errors.Is(err, validation.ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}

	rows, count, err := env.story.OpenFeed(10, 0)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if count != 0 || len(rows) != 0 {
		t.Fatalf("rejected batch must insert nothing, got count=%d", count)
	}

	stories, err := env.story.CreateBatch(alice.ID, []string{"one", "two", "three"})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(stories) != 3 {
		t.Fatalf("expected 3 stories, got %d", len(stories))
	}
}

func TestStoryExpiryHidesFromReads(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "")
	bob := env.register(t, "bob", "")

	live := env.backdatedStory(t, alice.ID, "live", time.Hour)
	expired := env.backdatedStory(t, alice.ID, "expired", 25*time.Hour)

	rows, count, err := env.story.OpenFeed(10, 0)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if count != 1 || rows[0].ID != live.ID {
		t.Fatalf("expected only the live story, got count=%d", count)
	}

	_, _, err = env.story.OpenDetail(bob.ID, live.ID)
	if err != nil {
		t.Fatalf("live detail: %v", err)
	}

	// Expired reads as absent, not forbidden.
	_, _, err = env.story.OpenDetail(bob.ID, expired.ID)
	if !errors.Is(err, repository.ErrStoryNotFound) {
		t.Fatalf("expected ErrStoryNotFound for expired story, got %v", err)
	}
}

func TestStoryExpiryKeepsOwnerMutations(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "")

	expired := env.backdatedStory(t, alice.ID, "expired", 48*time.Hour)

	updated, err := env.story.Update(alice.ID, expired.ID, strptr("still editable"), nil, nil)
	if err != nil {
		t.Fatalf("owner update of expired story: %v", err)
	}
	if updated.Caption != "still editable" {
		t.Fatalf("expected updated caption, got %q", updated.Caption)
	}

	err = env.story.Delete(alice.ID, expired.ID)
	if err != nil {
		t.Fatalf("owner delete of expired story: %v", err)
	}
}

func TestStoryPrivateFeedWindow(t *testing.T) {
	env := newTestEnv(t)
	viewer := env.register(t, "viewer", "")
	priya := env.register(t, "priya", "private")

	env.mustFollow(t, viewer, priya)

	env.backdatedStory(t, priya.ID, "fresh", time.Hour)
	env.backdatedStory(t, priya.ID, "stale", 30*time.Hour)

	rows, count, err := env.story.PrivateFeed(viewer.ID, 10, 0)
	if err != nil {
		t.Fatalf("private feed: %v", err)
	}
	if count != 1 || rows[0].Caption != "fresh" {
		t.Fatalf("expected only the fresh story, got count=%d", count)
	}
}

func TestStoryDetailGuards(t *testing.T) {
	env := newTestEnv(t)
	priya := env.register(t, "priya", "private")
	fan := env.register(t, "fan", "")
	other := env.register(t, "other", "")

	env.mustFollow(t, fan, priya)

	story := env.backdatedStory(t, priya.ID, "secret", time.Hour)

	_, _, err := env.story.OpenDetail(priya.ID, story.ID)
	if !errors.Is(err, ErrPrivateContent) {
		t.Fatalf("expected ErrPrivateContent on open route, got %v", err)
	}

	_, _, err = env.story.PrivateDetail(fan.ID, story.ID)
	if err != nil {
		t.Fatalf("follower private detail: %v", err)
	}

	_, _, err = env.story.PrivateDetail(other.ID, story.ID)
	if !errors.Is(err, ErrPrivateContent) {
		t.Fatalf("expected ErrPrivateContent for stranger, got %v", err)
	}
}
