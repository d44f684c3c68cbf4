package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gramline/gramline/internal/model"
	"github.com/gramline/gramline/internal/repository"
	"github.com/gramline/gramline/internal/validation"
	"github.com/gramline/gramline/internal/visibility"
)

var ErrTextRequired = errors.New("comment text is required")

type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	stories  repository.StoryRepository
	users    repository.UserRepository
	follows  repository.FollowRepository
}

func NewCommentService(
	comments repository.CommentRepository,
	posts repository.PostRepository,
	stories repository.StoryRepository,
	users repository.UserRepository,
	follows repository.FollowRepository,
) *CommentService {
	return &CommentService{
		comments: comments,
		posts:    posts,
		stories:  stories,
		users:    users,
		follows:  follows,
	}
}

// Create attaches a comment to a post, a story, or both. The referenced
// rows must exist; a comment on an expired story is rejected as not found.
func (s *CommentService) Create(userID string, postID, storyID *string, text string) (*model.Comment, error) {
	err := validation.CommentTarget(postID, storyID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
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

	comment := &model.Comment{
		ID:        uuid.New().String(),
		UserID:    userID,
		PostID:    postID,
		StoryID:   storyID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	err = s.comments.Create(comment)
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// ForPost lists a post's comments, newest first. The viewer has to be able
// to see the post itself; otherwise the comments stay hidden too.
func (s *CommentService) ForPost(viewerID, postID string) ([]*repository.CommentRow, error) {
	post, err := s.posts.ByID(postID)
	if err != nil {
		return nil, err
	}

	err = s.checkViewer(viewerID, post.UserID)
	if err != nil {
		return nil, err
	}

	return s.comments.ForPost(postID)
}

// ForStory lists a live story's comments. Expired stories are not found.
func (s *CommentService) ForStory(viewerID, storyID string) ([]*repository.CommentRow, error) {
	cutoff := time.Now().UTC().Add(-model.VisibilityWindow)
	story, err := s.stories.VisibleByID(storyID, cutoff)
	if err != nil {
		return nil, err
	}

	err = s.checkViewer(viewerID, story.UserID)
	if err != nil {
		return nil, err
	}

	return s.comments.ForStory(storyID)
}

// Delete removes the viewer's own comment.
func (s *CommentService) Delete(actorID, commentID string) error {
	comment, err := s.comments.ByID(commentID)
	if err != nil {
		return err
	}

	if comment.UserID != actorID {
		return ErrNotOwner
	}

	return s.comments.Delete(commentID)
}

func (s *CommentService) checkViewer(viewerID, ownerID string) error {
	owner, err := s.users.ByID(ownerID)
	if err != nil {
		return err
	}

	isFollower := false
	if viewerID != ownerID {
		isFollower, err = s.follows.Exists(viewerID, ownerID)
		if err != nil {
			return err
		}
	}

	if !visibility.CanView(viewerID, owner, isFollower) {
		return ErrPrivateContent
	}

	return nil
}
