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

type PostService struct {
	posts   repository.PostRepository
	users   repository.UserRepository
	follows repository.FollowRepository
	media   *MediaService
}

func NewPostService(
	posts repository.PostRepository,
	users repository.UserRepository,
	follows repository.FollowRepository,
	media *MediaService,
) *PostService {
	return &PostService{
		posts:   posts,
		users:   users,
		follows: follows,
		media:   media,
	}
}

// Create validates content presence before any blob is uploaded, so a
// rejected post leaves no state behind.
func (s *PostService) Create(userID, caption string, image, video *multipart.FileHeader) (*model.Post, error) {
	err := validation.Content(caption, presence(image), presence(video))
	if err != nil {
		return nil, err
	}

	imageKey, videoKey, err := s.media.UploadPair("post_images", "post_videos", image, video)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		ID:        uuid.New().String(),
		UserID:    userID,
		Caption:   caption,
		ImageKey:  imageKey,
		VideoKey:  videoKey,
		CreatedAt: time.Now().UTC(),
	}

	err = s.posts.Create(post)
	if err != nil {
		s.media.Remove(imageKey)
		s.media.Remove(videoKey)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

func (s *PostService) OpenFeed(limit, offset int) ([]*repository.PostRow, int, error) {
	return s.posts.OpenFeed(limit, offset)
}

func (s *PostService) PrivateFeed(viewerID string, limit, offset int) ([]*repository.PostRow, int, error) {
	return s.posts.PrivateFeed(viewerID, limit, offset)
}

// OpenDetail serves the .../open detail route: the guard recomputes the
// owner's status strictly, with no owner or follower override.
func (s *PostService) OpenDetail(viewerID, postID string) (*model.Post, *model.User, error) {
	post, owner, err := s.postWithOwner(postID)
	if err != nil {
		return nil, nil, err
	}

	if !visibility.OpenDetailAllowed(owner) {
		return nil, nil, ErrPrivateContent
	}

	s.countView(post)
	return post, owner, nil
}

// PrivateDetail serves the .../private detail route: followers and the
// owner get through, everyone else is refused.
func (s *PostService) PrivateDetail(viewerID, postID string) (*model.Post, *model.User, error) {
	post, owner, err := s.postWithOwner(postID)
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

	s.countView(post)
	return post, owner, nil
}

// Update applies partial changes for the owner. The merged post is
// revalidated before anything is written; a failed validation leaves both
// row and blobs untouched.
func (s *PostService) Update(actorID, postID string, caption *string, image, video *multipart.FileHeader) (*model.Post, error) {
	post, err := s.posts.ByID(postID)
	if err != nil {
		return nil, err
	}

	if post.UserID != actorID {
		return nil, ErrNotOwner
	}

	merged := *post
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

	newImageKey, newVideoKey, err := s.media.UploadPair("post_images", "post_videos", image, video)
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

	err = s.posts.Update(&merged)
	if err != nil {
		s.media.Remove(newImageKey)
		s.media.Remove(newVideoKey)
		return nil, err
	}

	s.media.Remove(oldImageKey)
	s.media.Remove(oldVideoKey)

	return &merged, nil
}

func (s *PostService) Delete(actorID, postID string) error {
	post, err := s.posts.ByID(postID)
	if err != nil {
		return err
	}

	if post.UserID != actorID {
		return ErrNotOwner
	}

	err = s.posts.Delete(postID)
	if err != nil {
		return err
	}

	s.media.Remove(post.ImageKey)
	s.media.Remove(post.VideoKey)

	return nil
}

func (s *PostService) postWithOwner(postID string) (*model.Post, *model.User, error) {
	post, err := s.posts.ByID(postID)
	if err != nil {
		return nil, nil, err
	}

	owner, err := s.users.ByID(post.UserID)
	if err != nil {
		return nil, nil, err
	}

	return post, owner, nil
}

func (s *PostService) countView(post *model.Post) {
	err := s.posts.IncrementViews(post.ID)
	if err != nil {
		slog.Warn("failed to increment post views", "error", err, "post_id", post.ID)
		return
	}
	post.Views++
}

// presence turns an optional upload into a non-empty marker for the
// content-presence check, which runs before the blob has a real key.
func presence(header *multipart.FileHeader) string {
	if header == nil {
		return ""
	}
	return header.Filename
}
