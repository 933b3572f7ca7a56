package http

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"rentnest-backend/internal/logger"
	"rentnest-backend/internal/storage"

	"github.com/gorilla/mux"
)

// multipartOverhead is the allowance for form boundaries and headers on top
// of the file itself.
const multipartOverhead = 1 << 20

// uploadImage accepts one multipart file in the "file" field and returns
// the URL and key the client attaches to a listing.
func (s *Server) uploadImage(w http.ResponseWriter, r *http.Request) {
	if s.opts.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes+multipartOverhead)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, badRequest("file exceeds the %d byte limit", s.opts.MaxUploadBytes))
			return
		}
		s.writeError(w, badRequest("multipart field \"file\" is required"))
		return
	}
	defer file.Close()

	img, err := s.svc.Images.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, img)
}

// ImageHandler serves stored listing images.
type ImageHandler struct {
	store storage.ImageStore
}

func NewImageHandler(store storage.ImageStore) *ImageHandler {
	return &ImageHandler{store: store}
}

// HandleDownload streams the file named by the {key} path variable.
func (h *ImageHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	file, err := h.store.Open(key)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("Failed to open image", "key", key, "error", err)
		}
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".webp":
		contentType = "image/webp"
	case ".gif":
		contentType = "image/gif"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if _, err := io.Copy(w, file); err != nil {
		logger.Warn("Failed to stream image", "key", key, "error", err)
	}
}

// RegisterImageRoutes serves the image store under storage.PublicPath.
func RegisterImageRoutes(router *mux.Router, store storage.ImageStore) {
	handler := NewImageHandler(store)
	router.HandleFunc(storage.PublicPath+"{key}", handler.HandleDownload).Methods(http.MethodGet).Name("uploads.get")
}
