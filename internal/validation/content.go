package validation

import (
	"strings"
)

var (
	ErrEmptyContent  = fail("you must choose at least one caption, image or video")
	ErrMissingTarget = fail("you must choose at least one target")
)

// Content enforces the content-presence rule shared by posts and stories.
// A whitespace-only caption counts as empty. Media fields are storage keys,
// so presence is a non-empty key.
func Content(caption, imageKey, videoKey string) error {
	if strings.TrimSpace(caption) == "" && imageKey == "" && videoKey == "" {
		return ErrEmptyContent
	}
	return nil
}

// CommentTarget requires at least one of post or story. Both being set at
// once is accepted; exclusivity is deliberately not enforced.
func CommentTarget(postID, storyID *string) error {
	if isNil(postID) && isNil(storyID) {
		return ErrMissingTarget
	}
	return nil
}

// LikeTarget requires at least one of post, story or comment, with the same
// relaxation as CommentTarget.
func LikeTarget(postID, storyID, commentID *string) error {
	if isNil(postID) && isNil(storyID) && isNil(commentID) {
		return ErrMissingTarget
	}
	return nil
}

func isNil(id *string) bool {
	return id == nil || *id == ""
}
