package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes blobs to local disk. Development fallback when no S3
// bucket is configured; the server exposes baseURL as a static file route.
type LocalStorage struct {
	root    string
	baseURL string
}

func NewLocalStorage(root, baseURL string) *LocalStorage {
	return &LocalStorage{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (l *LocalStorage) Save(key string, file io.Reader) error {
	path := filepath.Join(l.root, filepath.FromSlash(key))

	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create media file: %w", err)
	}
	defer func() { _ = out.Close() }()

	_, err = io.Copy(out, file)
	if err != nil {
		return fmt.Errorf("failed to write media file: %w", err)
	}
	return nil
}

func (l *LocalStorage) Delete(key string) error {
	err := os.Remove(filepath.Join(l.root, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete media file: %w", err)
	}
	return nil
}

func (l *LocalStorage) URL(key string) string {
	if key == "" {
		return ""
	}
	return l.baseURL + "/" + key
}

// Root is the on-disk directory served at the base URL.
func (l *LocalStorage) Root() string {
	return l.root
}
