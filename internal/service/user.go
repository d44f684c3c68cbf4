package service

import (
	"mime/multipart"

	"github.com/gramline/gramline/internal/model"
	"github.com/gramline/gramline/internal/repository"
	"github.com/gramline/gramline/internal/validation"
)

type UserService struct {
	users   repository.UserRepository
	follows repository.FollowRepository
	media   *MediaService
}

func NewUserService(users repository.UserRepository, follows repository.FollowRepository, media *MediaService) *UserService {
	return &UserService{
		users:   users,
		follows: follows,
		media:   media,
	}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.users.ByID(id)
}

// Profile loads a user with follower counts and avatar URL filled in, plus
// whether the viewer follows them (the redaction branch needs it).
func (s *UserService) Profile(viewerID, userID string) (*model.User, bool, error) {
	user, err := s.users.ByID(userID)
	if err != nil {
		return nil, false, err
	}

	user.FollowersCount, err = s.follows.CountFollowers(userID)
	if err != nil {
		return nil, false, err
	}

	user.FollowingCount, err = s.follows.CountFollowing(userID)
	if err != nil {
		return nil, false, err
	}

	user.AvatarURL = s.media.URL(user.AvatarKey)

	isFollower := false
	if viewerID != userID {
		isFollower, err = s.follows.Exists(viewerID, userID)
		if err != nil {
			return nil, false, err
		}
	}

	return user, isFollower, nil
}

// UpdateProfile applies partial changes to bio and profile status.
func (s *UserService) UpdateProfile(userID string, bio, profileStatus *string) (*model.User, error) {
	user, err := s.users.ByID(userID)
	if err != nil {
		return nil, err
	}

	if bio != nil {
		err = validation.ValidateBio(*bio)
		if err != nil {
			return nil, err
		}
		user.Bio = *bio
	}

	if profileStatus != nil {
		err = validation.ValidateProfileStatus(*profileStatus)
		if err != nil {
			return nil, err
		}
		user.ProfileStatus = *profileStatus
	}

	err = s.users.Update(user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// SetAvatar uploads a new avatar and drops the old blob.
func (s *UserService) SetAvatar(userID string, header *multipart.FileHeader) (*model.User, error) {
	user, err := s.users.ByID(userID)
	if err != nil {
		return nil, err
	}

	key, err := s.media.Upload("avatars", header, validation.ImageConstraints)
	if err != nil {
		return nil, err
	}

	oldKey := user.AvatarKey
	user.AvatarKey = key

	err = s.users.Update(user)
	if err != nil {
		s.media.Remove(key)
		return nil, err
	}

	s.media.Remove(oldKey)
	user.AvatarURL = s.media.URL(key)

	return user, nil
}
