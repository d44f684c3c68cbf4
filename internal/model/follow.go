package model

import "time"

// Follow is a directed edge: follower -> following. The pair is unique and
// self-follows are rejected before persistence.
type Follow struct {
	ID          string    `db:"id"`
	FollowerID  string    `db:"follower_id"`
	FollowingID string    `db:"following_id"`
	CreatedAt   time.Time `db:"created_at"`
}
