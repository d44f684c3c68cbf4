package service

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gramline/gramline/internal/model"
	"github.com/gramline/gramline/internal/repository"
	"github.com/gramline/gramline/internal/validation"
)

type LikeService struct {
	likes    repository.LikeRepository
	posts    repository.PostRepository
	stories  repository.StoryRepository
	comments repository.CommentRepository
}

func NewLikeService(
	likes repository.LikeRepository,
	posts repository.PostRepository,
	stories repository.StoryRepository,
	comments repository.CommentRepository,
) *LikeService {
	return &LikeService{
		likes:    likes,
		posts:    posts,
		stories:  stories,
		comments: comments,
	}
}

// Like records a like against any combination of post, story, and comment.
// Each referenced row must exist; the unique constraints keep one like per
// user per target even when the same request races itself.
func (s *LikeService) Like(userID string, postID, storyID, commentID *string) (*model.Like, error) {
	err := validation.LikeTarget(postID, storyID, commentID)
	if err != nil {
		return nil, err
	}

	if postID != nil {
		_, err = s.posts.ByID(*postID)
		if err != nil {
			return nil, err
		}
	}
	if storyID != nil {
		cutoff := time.Now().UTC().Add(-model.VisibilityWindow)
		_, err = s.stories.VisibleByID(*storyID, cutoff)
		if err != nil {
			return nil, err
		}
	}
	if commentID != nil {
		_, err = s.comments.ByID(*commentID)
		if err != nil {
			return nil, err
		}
	}

	like := &model.Like{
		ID:        uuid.New().String(),
		UserID:    userID,
		PostID:    postID,
		StoryID:   storyID,
		CommentID: commentID,
		CreatedAt: time.Now().UTC(),
	}

	err = s.likes.Create(like)
	if err != nil {
		return nil, err
	}

	if postID != nil {
		s.bumpLikeCount(*postID, 1)
	}

	return like, nil
}

// Unlike removes the viewer's own like and rolls the counter back.
func (s *LikeService) Unlike(actorID, likeID string) error {
	like, err := s.likes.ByID(likeID)
	if err != nil {
		return err
	}

	if like.UserID != actorID {
		return ErrNotOwner
	}

	err = s.likes.Delete(likeID)
	if err != nil {
		return err
	}

	if like.PostID != nil {
		s.bumpLikeCount(*like.PostID, -1)
	}

	return nil
}

// bumpLikeCount keeps posts.like_count in step with the likes table. The
// counter is denormalized display data; a failed bump is logged, not
// surfaced, so the like itself always wins.
func (s *LikeService) bumpLikeCount(postID string, delta int) {
	err := s.posts.AddLikeCount(postID, delta)
	if err != nil {
		slog.Warn("failed to adjust like count", "error", err, "post_id", postID, "delta", delta)
	}
}
