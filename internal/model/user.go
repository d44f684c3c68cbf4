package model

import (
	"time"
)

const (
	ProfileStatusOpen    = "open"
	ProfileStatusPrivate = "private"
)

type User struct {
	ID            string    `db:"id"`
	Username      string    `db:"username"`
	Email         string    `db:"email"`
	PasswordHash  string    `db:"password_hash"`
	Bio           string    `db:"bio"`
	ProfileStatus string    `db:"profile_status"`
	AvatarKey     string    `db:"avatar_key"`
	CreatedAt     time.Time `db:"created_at"`

	// Computed fields (not in database)
	FollowersCount int    `db:"-"`
	FollowingCount int    `db:"-"`
	AvatarURL      string `db:"-"`
}

func (u *User) IsOpen() bool {
	return u.ProfileStatus == ProfileStatusOpen
}

func (u *User) IsPrivate() bool {
	return u.ProfileStatus == ProfileStatusPrivate
}
