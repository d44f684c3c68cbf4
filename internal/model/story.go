package model

import "time"

// VisibilityWindow is how long a story stays eligible for listing and detail
// reads after creation. Expired stories are filtered from queries, not deleted.
const VisibilityWindow = 24 * time.Hour

type Story struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Caption   string    `db:"caption"`
	ImageKey  string    `db:"image_key"`
	VideoKey  string    `db:"video_key"`
	Views     int       `db:"views"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *Story) Expired(now time.Time) bool {
	return now.Sub(s.CreatedAt) > VisibilityWindow
}
