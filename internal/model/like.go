package model

import "time"

// Like targets a post, story or comment. Uniqueness is enforced per
// (user, target) pair at the storage layer, so liking a post and a comment on
// that post are independent likes.
type Like struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	PostID    *string   `db:"post_id"`
	StoryID   *string   `db:"story_id"`
	CommentID *string   `db:"comment_id"`
	CreatedAt time.Time `db:"created_at"`
}
