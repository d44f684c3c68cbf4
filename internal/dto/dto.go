package dto

import (
	"time"

	"github.com/gramline/gramline/internal/model"
	"github.com/gramline/gramline/internal/repository"
)

// MediaResolver turns a storage key into a client-facing URL.
type MediaResolver func(key string) string

// UserSummary is the owner stub embedded in posts, stories and comments.
type UserSummary struct {
	ID        string `json:"id,omitempty"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Profile is the full profile view, served to the owner, to followers, and
// to anyone when the profile is open.
type Profile struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Bio            string    `json:"bio,omitempty"`
	ProfileStatus  string    `json:"profile_status"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// PrivateProfile is the redacted view a stranger gets of a private account.
type PrivateProfile struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Message   string `json:"message"`
}

type Post struct {
	ID        string      `json:"id"`
	Owner     UserSummary `json:"owner"`
	Caption   string      `json:"caption,omitempty"`
	ImageURL  string      `json:"image_url,omitempty"`
	VideoURL  string      `json:"video_url,omitempty"`
	LikeCount int         `json:"like_count"`
	Views     int         `json:"views"`
	CreatedAt time.Time   `json:"created_at"`
}

type Story struct {
	ID        string      `json:"id"`
	Owner     UserSummary `json:"owner"`
	Caption   string      `json:"caption,omitempty"`
	ImageURL  string      `json:"image_url,omitempty"`
	VideoURL  string      `json:"video_url,omitempty"`
	Views     int         `json:"views"`
	CreatedAt time.Time   `json:"created_at"`
}

type Comment struct {
	ID        string      `json:"id"`
	Owner     UserSummary `json:"owner"`
	PostID    *string     `json:"post_id,omitempty"`
	StoryID   *string     `json:"story_id,omitempty"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"created_at"`
}

type Like struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PostID    *string   `json:"post_id,omitempty"`
	StoryID   *string   `json:"story_id,omitempty"`
	CommentID *string   `json:"comment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserSummary(user *model.User, resolve MediaResolver) UserSummary {
	return UserSummary{
		ID:        user.ID,
		Username:  user.Username,
		AvatarURL: resolveKey(user.AvatarKey, resolve),
	}
}

func NewProfile(user *model.User) Profile {
	return Profile{
		ID:             user.ID,
		Username:       user.Username,
		Bio:            user.Bio,
		ProfileStatus:  user.ProfileStatus,
		AvatarURL:      user.AvatarURL,
		FollowersCount: user.FollowersCount,
		FollowingCount: user.FollowingCount,
		CreatedAt:      user.CreatedAt,
	}
}

func NewPrivateProfile(user *model.User) PrivateProfile {
	return PrivateProfile{
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
		Message:   "This profile is private",
	}
}

func NewPost(post *model.Post, owner *model.User, resolve MediaResolver) Post {
	return Post{
		ID:        post.ID,
		Owner:     NewUserSummary(owner, resolve),
		Caption:   post.Caption,
		ImageURL:  resolveKey(post.ImageKey, resolve),
		VideoURL:  resolveKey(post.VideoKey, resolve),
		LikeCount: post.LikeCount,
		Views:     post.Views,
		CreatedAt: post.CreatedAt,
	}
}

func NewPostFromRow(row *repository.PostRow, resolve MediaResolver) Post {
	return Post{
		ID: row.ID,
		Owner: UserSummary{
			ID:        row.UserID,
			Username:  row.OwnerUsername,
			AvatarURL: resolveKey(row.OwnerAvatarKey, resolve),
		},
		Caption:   row.Caption,
		ImageURL:  resolveKey(row.ImageKey, resolve),
		VideoURL:  resolveKey(row.VideoKey, resolve),
		LikeCount: row.LikeCount,
		Views:     row.Views,
		CreatedAt: row.CreatedAt,
	}
}

func NewStory(story *model.Story, owner *model.User, resolve MediaResolver) Story {
	return Story{
		ID:        story.ID,
		Owner:     NewUserSummary(owner, resolve),
		Caption:   story.Caption,
		ImageURL:  resolveKey(story.ImageKey, resolve),
		VideoURL:  resolveKey(story.VideoKey, resolve),
		Views:     story.Views,
		CreatedAt: story.CreatedAt,
	}
}

func NewStoryFromRow(row *repository.StoryRow, resolve MediaResolver) Story {
	return Story{
		ID: row.ID,
		Owner: UserSummary{
			ID:        row.UserID,
			Username:  row.OwnerUsername,
			AvatarURL: resolveKey(row.OwnerAvatarKey, resolve),
		},
		Caption:   row.Caption,
		ImageURL:  resolveKey(row.ImageKey, resolve),
		VideoURL:  resolveKey(row.VideoKey, resolve),
		Views:     row.Views,
		CreatedAt: row.CreatedAt,
	}
}

func NewComment(comment *model.Comment, owner *model.User, resolve MediaResolver) Comment {
	return Comment{
		ID:        comment.ID,
		Owner:     NewUserSummary(owner, resolve),
		PostID:    comment.PostID,
		StoryID:   comment.StoryID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
}

func NewCommentFromRow(row *repository.CommentRow, resolve MediaResolver) Comment {
	return Comment{
		ID: row.ID,
		Owner: UserSummary{
			ID:        row.UserID,
			Username:  row.OwnerUsername,
			AvatarURL: resolveKey(row.OwnerAvatarKey, resolve),
		},
		PostID:    row.PostID,
		StoryID:   row.StoryID,
		Text:      row.Text,
		CreatedAt: row.CreatedAt,
	}
}

func NewLike(like *model.Like) Like {
	return Like{
		ID:        like.ID,
		UserID:    like.UserID,
		PostID:    like.PostID,
		StoryID:   like.StoryID,
		CommentID: like.CommentID,
		CreatedAt: like.CreatedAt,
	}
}

func resolveKey(key string, resolve MediaResolver) string {
	if key == "" {
		return ""
	}
	return resolve(key)
}
