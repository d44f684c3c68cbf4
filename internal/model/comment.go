package model

import "time"

// Comment targets a post or a story. At least one target is required; both
// being set is tolerated.
type Comment struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	PostID    *string   `db:"post_id"`
	StoryID   *string   `db:"story_id"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
}
