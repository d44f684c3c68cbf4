package model

import "time"

// Post must carry at least one of caption, image or video. Media fields hold
// storage keys; URLs are resolved at projection time.
type Post struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Caption   string    `db:"caption"`
	ImageKey  string    `db:"image_key"`
	VideoKey  string    `db:"video_key"`
	LikeCount int       `db:"like_count"`
	Views     int       `db:"views"`
	CreatedAt time.Time `db:"created_at"`
}
