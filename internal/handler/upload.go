package handler

import (
	"net/http"

	"github.com/vitrinecms/vitrine/internal/upload"
)

// UploadHandler accepts admin image uploads and returns the served URL.
type UploadHandler struct {
	uploader *upload.Uploader
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(u *upload.Uploader) *UploadHandler {
	return &UploadHandler{uploader: u}
}

// Upload stores a multipart image and responds with its URL.
// POST /api/v1/admin/upload
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, upload.MaxImageSize)
	if err := r.ParseMultipartForm(upload.MaxImageSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	url, err := h.uploader.Save(header.Filename, file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Upload rejected: unsupported or oversized image")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"url":     url,
	})
}
