package storage

import (
	"io"

	"github.com/gramline/gramline/internal/config"
)

// Storage persists media blobs (post/story images and videos, avatars).
// Keys are opaque paths like "post_images/<uuid>.jpg".
type Storage interface {
	// Save stores a blob at the given key
	Save(key string, file io.Reader) error

	// Delete removes the blob at the given key
	Delete(key string) error

	// URL returns the public URL for accessing the blob
	URL(key string) string
}

// New picks the storage backend from config: S3-compatible when a bucket is
// configured, local disk otherwise (development fallback).
func New(cfg *config.Config) (Storage, error) {
	if cfg.S3Bucket != "" {
		return NewS3Storage(S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
		})
	}
	return NewLocalStorage("./data/media", "/media"), nil
}
