package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/gramline/gramline/internal/model"
	"github.com/gramline/gramline/internal/repository"
)

var (
	ErrSelfFollow = errors.New("you cannot follow yourself")
)

type FollowService struct {
	follows repository.FollowRepository
	users   repository.UserRepository
}

func NewFollowService(follows repository.FollowRepository, users repository.UserRepository) *FollowService {
	return &FollowService{
		follows: follows,
		users:   users,
	}
}

// Follow creates the directed edge follower -> following. There is no
// follow-back or request/accept flow; the edge is live immediately.
func (s *FollowService) Follow(followerID, followingID string) (*model.Follow, error) {
	if followerID == followingID {
		return nil, ErrSelfFollow
	}

	// Reject edges to unknown users before touching the constraint.
	_, err := s.users.ByID(followingID)
	if err != nil {
		return nil, err
	}

	follow := &model.Follow{
		ID:          uuid.New().String(),
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   time.Now().UTC(),
	}

	err = s.follows.Create(follow)
	if err != nil {
		return nil, err
	}

	return follow, nil
}

func (s *FollowService) Unfollow(followerID, followingID string) error {
	return s.follows.Delete(followerID, followingID)
}

func (s *FollowService) IsFollowing(followerID, followingID string) (bool, error) {
	return s.follows.Exists(followerID, followingID)
}

func (s *FollowService) Followers(userID string) ([]*model.User, error) {
	_, err := s.users.ByID(userID)
	if err != nil {
		return nil, err
	}
	return s.follows.Followers(userID)
}

func (s *FollowService) Following(userID string) ([]*model.User, error) {
	_, err := s.users.ByID(userID)
	if err != nil {
		return nil, err
	}
	return s.follows.Following(userID)
}
