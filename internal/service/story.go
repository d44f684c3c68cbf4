package service

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"github.com/gramline/gramline/internal/model"
	"github.com/gramline/gramline/internal/repository"
	"github.com/gramline/gramline/internal/validation"
	"github.com/gramline/gramline/internal/visibility"
)

type StoryService struct {
	stories repository.StoryRepository
	users   repository.UserRepository
	follows repository.FollowRepository
	media   *MediaService
}

func NewStoryService(
	stories repository.StoryRepository,
	users repository.UserRepository,
	follows repository.FollowRepository,
	media *MediaService,
) *StoryService {
	return &StoryService{
		stories: stories,
		users:   users,
		follows: follows,
		media:   media,
	}
}

func (s *StoryService) Create(userID, caption string, image, video *multipart.FileHeader) (*model.Story, error) {
	err := validation.Content(caption, presence(image), presence(video))
	if err != nil {
		return nil, err
	}

	imageKey, videoKey, err := s.media.UploadPair("story_images", "story_videos", image, video)
	if err != nil {
		return nil, err
	}

	story := &model.Story{
		ID:        uuid.New().String(),
		UserID:    userID,
		Caption:   caption,
		ImageKey:  imageKey,
		VideoKey:  videoKey,
		CreatedAt: time.Now().UTC(),
	}

	err = s.stories.Create(story)
	if err != nil {
		s.media.Remove(imageKey)
		s.media.Remove(videoKey)
		return nil, fmt.Errorf("failed to create story: %w", err)
	}

	return story, nil
}

// CreateBatch inserts several text-only stories in one call. Every caption
// is validated before the first insert, so a bad entry anywhere in the
// batch rejects the whole request with nothing written.
func (s *StoryService) CreateBatch(userID string, captions []string) ([]*model.Story, error) {
	for _, caption := range captions {
		err := validation.Content(caption, "", "")
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	stories := make([]*model.Story, 0, len(captions))
	for _, caption := range captions {
		story := &model.Story{
			ID:        uuid.New().String(),
			UserID:    userID,
			Caption:   caption,
			CreatedAt: now,
		}

		err := s.stories.Create(story)
		if err != nil {
			return nil, fmt.Errorf("failed to create story: %w", err)
		}

		stories = append(stories, story)
	}

	return stories, nil
}

func (s *StoryService) OpenFeed(limit, offset int) ([]*repository.StoryRow, int, error) {
	return s.stories.OpenFeed(s.cutoff(), limit, offset)
}

func (s *StoryService) PrivateFeed(viewerID string, limit, offset int) ([]*repository.StoryRow, int, error) {
	return s.stories.PrivateFeed(viewerID, s.cutoff(), limit, offset)
}

// OpenDetail serves the .../open detail route. An expired story is not
// found, not forbidden; the privacy guard only sees live stories.
func (s *StoryService) OpenDetail(viewerID, storyID string) (*model.Story, *model.User, error) {
	story, owner, err := s.visibleWithOwner(storyID)
	if err != nil {
		return nil, nil, err
	}

	if !visibility.OpenDetailAllowed(owner) {
		return nil, nil, ErrPrivateContent
	}

	s.countView(story)
	return story, owner, nil
}

func (s *StoryService) PrivateDetail(viewerID, storyID string) (*model.Story, *model.User, error) {
	story, owner, err := s.visibleWithOwner(storyID)
	if err != nil {
		return nil, nil, err
	}

	isFollower, err := s.follows.Exists(viewerID, owner.ID)
	if err != nil {
		return nil, nil, err
	}

	if !visibility.PrivateDetailAllowed(viewerID, owner, isFollower) {
		return nil, nil, ErrPrivateContent
	}

	s.countView(story)
	return story, owner, nil
}

// Update applies partial changes for the owner. Owner mutations skip the
// visibility window: an expired story can still be edited.
func (s *StoryService) Update(actorID, storyID string, caption *string, image, video *multipart.FileHeader) (*model.Story, error) {
	story, err := s.stories.ByID(storyID)
	if err != nil {
		return nil, err
	}

	if story.UserID != actorID {
		return nil, ErrNotOwner
	}

	merged := *story
	if caption != nil {
		merged.Caption = *caption
	}

	mergedImage := merged.ImageKey
	if image != nil {
		mergedImage = presence(image)
	}
	mergedVideo := merged.VideoKey
	if video != nil {
		mergedVideo = presence(video)
	}

	err = validation.Content(merged.Caption, mergedImage, mergedVideo)
	if err != nil {
		return nil, err
	}

	newImageKey, newVideoKey, err := s.media.UploadPair("story_images", "story_videos", image, video)
	if err != nil {
		return nil, err
	}

	oldImageKey, oldVideoKey := "", ""
	if newImageKey != "" {
		oldImageKey = merged.ImageKey
		merged.ImageKey = newImageKey
	}
	if newVideoKey != "" {
		oldVideoKey = merged.VideoKey
		merged.VideoKey = newVideoKey
	}

	err = s.stories.Update(&merged)
	if err != nil {
		s.media.Remove(newImageKey)
		s.media.Remove(newVideoKey)
		return nil, err
	}

	s.media.Remove(oldImageKey)
	s.media.Remove(oldVideoKey)

	return &merged, nil
}

func (s *StoryService) Delete(actorID, storyID string) error {
	story, err := s.stories.ByID(storyID)
	if err != nil {
		return err
	}

	if story.UserID != actorID {
		return ErrNotOwner
	}

	err = s.stories.Delete(storyID)
	if err != nil {
		return err
	}

	s.media.Remove(story.ImageKey)
	s.media.Remove(story.VideoKey)

	return nil
}

func (s *StoryService) cutoff() time.Time {
	return time.Now().UTC().Add(-model.VisibilityWindow)
}

func (s *StoryService) visibleWithOwner(storyID string) (*model.Story, *model.User, error) {
	story, err := s.stories.VisibleByID(storyID, s.cutoff())
	if err != nil {
		return nil, nil, err
	}

	owner, err := s.users.ByID(story.UserID)
	if err != nil {
		return nil, nil, err
	}

	return story, owner, nil
}

func (s *StoryService) countView(story *model.Story) {
	err := s.stories.IncrementViews(story.ID)
	if err != nil {
		slog.Warn("failed to increment story views", "error", err, "story_id", story.ID)
		return
	}
	story.Views++
}
