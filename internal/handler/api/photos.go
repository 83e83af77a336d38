// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/olegiv/bandsite/internal/auth"
	"github.com/olegiv/bandsite/internal/service"
)

const (
	// maxBatchFiles caps the files accepted by one upload request.
	maxBatchFiles = 20
	// multipartMemory is kept in memory before spilling to temp files.
	multipartMemory = 32 << 20
)

// uploadFields are the multipart fields that may carry photos.
var uploadFields = []string{"file", "files", "files[]"}

// UploadError reports one file that could not be stored.
type UploadError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// BatchUploadResponse is returned when several files were posted.
type BatchUploadResponse struct {
	Uploaded []service.PhotoView `json:"uploaded"`
	Errors   []UploadError       `json:"errors"`
}

// ListPhotos handles GET /api/admin/photos.
func (h *Handler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := h.Photos.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "fetch photos")
		return
	}
	WriteList(w, service.MapSlice(photos, service.NewPhotoView), 0)
}

// UploadPhotos handles POST /api/admin/photos. A single file answers with
// the photo; several files answer with per-file results.
func (h *Handler) UploadPhotos(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		WriteUnauthorized(w, "Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes*maxBatchFiles+(1<<20))
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "Upload too large", nil)
			return
		}
		WriteBadRequest(w, "Expected a multipart/form-data body", nil)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	var files []*multipart.FileHeader
	for _, field := range uploadFields {
		files = append(files, r.MultipartForm.File[field]...)
	}

	switch {
	case len(files) == 0:
		WriteValidationError(w, map[string]string{"file": "No file provided"})
		return
	case len(files) > maxBatchFiles:
		WriteValidationError(w, map[string]string{"file": "Too many files in one upload"})
		return
	}

	title := r.FormValue("title")

	if len(files) == 1 {
		photo, err := h.uploadOne(r, id, title, files[0])
		if err != nil {
			writeServiceError(w, r, err, "upload photo")
			return
		}
		WriteCreated(w, photo)
		return
	}

	resp := BatchUploadResponse{
		Uploaded: make([]service.PhotoView, 0, len(files)),
		Errors:   make([]UploadError, 0),
	}
	for _, fh := range files {
		// A shared title would make every photo look the same; batch
		// uploads are titled from their file names.
		photo, err := h.uploadOne(r, id, "", fh)
		if err != nil {
			resp.Errors = append(resp.Errors, UploadError{Filename: fh.Filename, Error: uploadErrorMessage(err)})
			continue
		}
		resp.Uploaded = append(resp.Uploaded, photo)
	}

	status := http.StatusCreated
	if len(resp.Uploaded) == 0 {
		status = http.StatusBadRequest
	}
	WriteJSON(w, status, Response{Data: resp})
}

func (h *Handler) uploadOne(r *http.Request, id auth.Identity, title string, fh *multipart.FileHeader) (service.PhotoView, error) {
	f, err := fh.Open()
	if err != nil {
		return service.PhotoView{}, err
	}
	defer func() { _ = f.Close() }()

	p, err := h.Photos.Upload(r.Context(), id, title, fh.Filename, f)
	if err != nil {
		return service.PhotoView{}, err
	}
	return service.NewPhotoView(p), nil
}

func uploadErrorMessage(err error) string {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		if msg, ok := verr.Fields["file"]; ok {
			return msg
		}
		return verr.Error()
	}
	slog.Error("failed to upload photo", "error", err)
	return "Failed to upload photo"
}

// DeletePhoto handles DELETE /api/admin/photos/{id}.
func (h *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "photo")
	if !ok {
		return
	}
	if err := h.Photos.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "delete photo")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
