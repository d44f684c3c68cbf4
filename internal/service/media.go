package service

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/gramline/gramline/internal/storage"
	"github.com/gramline/gramline/internal/validation"
)

// MediaService validates and stores uploaded blobs, returning the storage
// key the owning row keeps.
type MediaService struct {
	storage storage.Storage
}

func NewMediaService(storage storage.Storage) *MediaService {
	return &MediaService{storage: storage}
}

// Upload validates the file against the given constraints and stores it
// under folder with a random name.
func (s *MediaService) Upload(folder string, header *multipart.FileHeader, constraints ...validation.FileConstraints) (string, error) {
	err := validation.ValidateFile(header, constraints...)
	if err != nil {
		return "", err
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	ext := filepath.Ext(header.Filename)
	key := folder + "/" + uuid.New().String() + ext

	err = s.storage.Save(key, file)
	if err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}

	return key, nil
}

// UploadPair stores an optional image and an optional video. If the video
// upload fails after the image succeeded, the image blob is removed again.
func (s *MediaService) UploadPair(imageFolder, videoFolder string, image, video *multipart.FileHeader) (string, string, error) {
	imageKey := ""
	if image != nil {
		var err error
		imageKey, err = s.Upload(imageFolder, image, validation.ImageConstraints)
		if err != nil {
			return "", "", err
		}
	}

	videoKey := ""
	if video != nil {
		var err error
		videoKey, err = s.Upload(videoFolder, video, validation.VideoConstraints)
		if err != nil {
			s.Remove(imageKey)
			return "", "", err
		}
	}

	return imageKey, videoKey, nil
}

// Remove deletes a blob, logging instead of failing: media cleanup is
// best-effort and never blocks the row mutation that triggered it.
func (s *MediaService) Remove(key string) {
	if key == "" {
		return
	}
	err := s.storage.Delete(key)
	if err != nil {
		slog.Warn("failed to delete media", "error", err, "key", key)
	}
}

// URL resolves a storage key to a client-facing URL. Empty keys stay empty.
func (s *MediaService) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.storage.URL(key)
}
