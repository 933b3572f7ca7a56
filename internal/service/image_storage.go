package service

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/logger"
	"rentnest-backend/internal/storage"

	"github.com/google/uuid"
)

// sniffLen is how much of an upload is read to detect its content type.
const sniffLen = 512

var extensionByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type imageStorageService struct {
	store        storage.ImageStore
	maxSize      int64
	allowedTypes map[string]bool
}

// NewImageStorageService accepts uploads of the given content types up to
// maxSize bytes.
func NewImageStorageService(store storage.ImageStore, maxSize int64, allowedTypes []string) ImageStorageService {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(strings.TrimSpace(t))] = true
	}
	return &imageStorageService{
		store:        store,
		maxSize:      maxSize,
		allowedTypes: allowed,
	}
}

// Upload checks the declared type, then the sniffed type of the content,
// before anything is written.
func (s *imageStorageService) Upload(ctx context.Context, filename, contentType string, size int64, content io.Reader) (*UploadedImage, error) {
	declared := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if !s.allowedTypes[declared] {
		return nil, domain.Invalid("file type %q is not allowed", contentType)
	}
	if size <= 0 {
		return nil, domain.Invalid("file is empty")
	}
	if s.maxSize > 0 && size > s.maxSize {
		return nil, domain.Invalid("file exceeds the %d byte limit", s.maxSize)
	}

	br := bufio.NewReaderSize(content, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}
	detected := http.DetectContentType(head)
	if !s.allowedTypes[detected] {
		return nil, domain.Invalid("file content is not an allowed image type")
	}

	ext, ok := extensionByType[detected]
	if !ok {
		ext = strings.ToLower(filepath.Ext(filename))
	}
	key := uuid.New().String() + ext

	// The body is bounded on its own, whatever size was declared.
	var reader io.Reader = br
	if s.maxSize > 0 {
		reader = io.LimitReader(br, s.maxSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return nil, domain.Invalid("file exceeds the %d byte limit", s.maxSize)
	}
	url, err := s.store.Save(ctx, key, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	logger.Info("Image uploaded", "publicID", key, "originalName", filename, "size", size)
	return &UploadedImage{URL: url, PublicID: key}, nil
}

func (s *imageStorageService) Delete(ctx context.Context, publicID string) error {
	return s.store.Delete(ctx, publicID)
}
