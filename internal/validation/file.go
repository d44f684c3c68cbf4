package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// FileConstraints defines validation rules for file uploads
type FileConstraints struct {
	AllowedMimeTypes  map[string]bool
	AllowedExtensions map[string]bool
	MaxSize           int64
}

var (
	// ImageConstraints covers post/story images and avatars
	ImageConstraints = FileConstraints{
		AllowedMimeTypes: map[string]bool{
			"image/jpeg": true,
			"image/png":  true,
			"image/webp": true,
		},
		AllowedExtensions: map[string]bool{
			".jpg":  true,
			".jpeg": true,
			".png":  true,
			".webp": true,
		},
		MaxSize: 5 << 20, // 5MB
	}

	// VideoConstraints covers post/story videos
	VideoConstraints = FileConstraints{
		AllowedMimeTypes: map[string]bool{
			"video/mp4":  true,
			"video/webm": true,
		},
		AllowedExtensions: map[string]bool{
			".mp4":  true,
			".webm": true,
		},
		MaxSize: 50 << 20, // 50MB
	}
)

// ValidateFile validates a file upload against one or more constraint sets.
// If multiple constraints are provided, the file must match at least one.
func ValidateFile(header *multipart.FileHeader, constraints ...FileConstraints) error {
	if len(constraints) == 0 {
		return fmt.Errorf("no file constraints provided")
	}

	var lastErr error
	for _, constraint := range constraints {
		lastErr = validateAgainst(header, constraint)
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func validateAgainst(header *multipart.FileHeader, constraints FileConstraints) error {
	if header.Size > constraints.MaxSize {
		return failf("file is too large (max %d bytes)", constraints.MaxSize)
	}

	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Sniff the real content type from the first 512 bytes; the
	// Content-Type header is client-controlled.
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file: %w", err)
	}

	seeker, ok := file.(io.Seeker)
	if ok {
		_, err = seeker.Seek(0, 0)
		if err != nil {
			return fmt.Errorf("failed to reset file pointer: %w", err)
		}
	}

	detectedType := http.DetectContentType(buffer[:n])

	// http.DetectContentType cannot identify every video container and
	// falls back to application/octet-stream; accept the declared type for
	// those after the extension check below.
	if !constraints.AllowedMimeTypes[detectedType] {
		declared := header.Header.Get("Content-Type")
		if detectedType != "application/octet-stream" || !constraints.AllowedMimeTypes[declared] {
			return failf("invalid file type (detected: %s)", detectedType)
		}
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !constraints.AllowedExtensions[ext] {
		return failf("invalid file extension: %s", ext)
	}

	return nil
}
