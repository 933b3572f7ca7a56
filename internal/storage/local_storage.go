package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"rentnest-backend/internal/logger"
)

// PublicPath is the URL prefix the HTTP layer serves stored images under.
const PublicPath = "/uploads/images/"

// LocalStorage implements image storage on the local filesystem.
type LocalStorage struct {
	baseURL   string // Server URL (e.g., "http://localhost:8080")
	imagesDir string // Directory holding the image files
}

// NewLocalStorage creates the images directory under uploadsDir if needed.
func NewLocalStorage(baseURL, uploadsDir string) (*LocalStorage, error) {
	imagesDir := filepath.Join(uploadsDir, "images")
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}

	return &LocalStorage{
		baseURL:   strings.TrimRight(baseURL, "/"),
		imagesDir: imagesDir,
	}, nil
}

// path resolves key inside the images directory. Keys that would escape it
// are rejected.
func (s *LocalStorage) path(key string) (string, error) {
	clean := filepath.Base(filepath.Clean("/" + key))
	if clean != key || clean == "." || clean == "/" {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return filepath.Join(s.imagesDir, clean), nil
}

// Save writes the uploaded file to the local filesystem
func (s *LocalStorage) Save(ctx context.Context, key string, reader io.Reader) (string, error) {
	fullPath, err := s.path(key)
	if err != nil {
		return "", err
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	logger.Debug("Stored image", "key", key, "path", fullPath)
	return s.baseURL + PublicPath + key, nil
}

// Delete removes the file from the local filesystem
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	fullPath, err := s.path(key)
	if err != nil {
		return err
	}

	err = os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// Open opens the stored file for reading
func (s *LocalStorage) Open(key string) (io.ReadCloser, error) {
	fullPath, err := s.path(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}
