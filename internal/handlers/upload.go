package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/favhome/deliveries/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxUploadSize = 10 << 20

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

type uploadResponse struct {
	OK  bool   `json:"ok"`
	URL string `json:"url,omitempty"`
}

func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "no file", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "no file", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Log.Error("failed to close uploaded file", zap.Error(err))
		}
	}()

	if header.Filename == "" {
		http.Error(w, "empty filename", http.StatusBadRequest)
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		http.Error(w, "filetype not allowed", http.StatusBadRequest)
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Generated name keeps uploads collision-free and strips any path
	// components the client sent.
	name := fmt.Sprintf("%d_%s%s", time.Now().UTC().Unix(), uuid.NewString(), ext)
	dst, err := os.Create(filepath.Join(h.uploadDir, name))
	if err != nil {
		logger.Log.Error("failed to create upload file", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer func() {
		if err := dst.Close(); err != nil {
			logger.Log.Error("failed to close upload file", zap.Error(err))
		}
	}()

	if _, err := io.Copy(dst, io.LimitReader(file, maxUploadSize)); err != nil {
		logger.Log.Error("failed to save upload", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{OK: true, URL: "/uploads/" + name})
}

// ServeUpload serves files from the uploads directory and nowhere else.
func (h *Handler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	if name == "" || strings.Contains(name, "..") {
		http.NotFound(w, r)
		return
	}
	clean := filepath.Clean(name)
	if clean != filepath.Base(clean) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(h.uploadDir, clean))
}
