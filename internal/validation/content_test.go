package validation

import (
	"errors"
	"testing"
)

func TestContent(t *testing.T) {
	cases := []struct {
		name     string
		caption  string
		imageKey string
		videoKey string
		ok       bool
	}{
		{"caption only", "hello", "", "", true},
		{"image only", "", "post_images/x.jpg", "", true},
		{"video only", "", "", "post_videos/x.mp4", true},
		{"all empty", "", "", "", false},
		{"whitespace caption counts as empty", "   \t", "", "", false},
		{"whitespace caption with image", "   ", "post_images/x.jpg", "", true},
	}

	for _, c := range cases {
		err := Content(c.caption, c.imageKey, c.videoKey)
		if c.ok && err != nil {
			t.Fatalf("%s: expected ok, got %v", c.name, err)
		}
		if !c.ok && !errors.Is(err, ErrEmptyContent) {
			t.Fatalf("%s: expected ErrEmptyContent, got %v", c.name, err)
		}
	}
}

func TestCommentTarget(t *testing.T) {
	id := "some-id"
	empty := ""

	if err := CommentTarget(&id, nil); err != nil {
		t.Fatalf("post target: %v", err)
	}
	if err := CommentTarget(nil, &id); err != nil {
		t.Fatalf("story target: %v", err)
	}
	// Both set at once is tolerated.
	if err := CommentTarget(&id, &id); err != nil {
		t.Fatalf("both targets: %v", err)
	}
	if err := CommentTarget(nil, nil); !errors.Is(err, ErrMissingTarget) {
		t.Fatalf("expected ErrMissingTarget, got %v", err)
	}
	// An empty string is as good as absent.
	if err := CommentTarget(&empty, nil); !errors.Is(err, ErrMissingTarget) {
		t.Fatalf("expected ErrMissingTarget for empty id, got %v", err)
	}
}

func TestLikeTarget(t *testing.T) {
	id := "some-id"

	if err := LikeTarget(nil, nil, &id); err != nil {
		t.Fatalf("comment target: %v", err)
	}
	if err := LikeTarget(nil, nil, nil); !errors.Is(err, ErrMissingTarget) {
		t.Fatalf("expected ErrMissingTarget, got %v", err)
	}
}
