// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/bandsite/internal/service"
)

func TestPhotos_UploadSingle(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	req := multipartRequest(t, "/api/admin/photos", token,
		[]uploadPart{{field: "file", filename: "stage.png", data: pngBytes(t)}},
		map[string]string{"title": "On stage"})
	rec := env.do(req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	photo := unmarshalData[service.PhotoView](t, rec)
	assert.Equal(t, "On stage", photo.Title)
	assert.True(t, strings.HasPrefix(photo.URL, "/uploads/photos/"), photo.URL)
	assert.True(t, strings.HasPrefix(photo.ThumbnailURL, "/uploads/photos/thumbs/"), photo.ThumbnailURL)
	assert.Equal(t, int64(40), photo.Width)
	assert.Equal(t, int64(30), photo.Height)
	assert.Equal(t, testAdminEmail, photo.UploadedBy)

	_, err := os.Stat(filepath.Join(env.uploads, "photos", photo.Filename))
	assert.NoError(t, err)
}

func TestPhotos_UploadBatch(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	req := multipartRequest(t, "/api/admin/photos", token, []uploadPart{
		{field: "files", filename: "crowd.png", data: pngBytes(t)},
		{field: "files", filename: "notes.txt", data: []byte("not an image")},
	}, map[string]string{"title": "ignored"})
	rec := env.do(req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Data BatchUploadResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Uploaded, 1)
	assert.Equal(t, "crowd", resp.Data.Uploaded[0].Title)
	require.Len(t, resp.Data.Errors, 1)
	assert.Equal(t, "notes.txt", resp.Data.Errors[0].Filename)
	assert.NotEmpty(t, resp.Data.Errors[0].Error)
}

func TestPhotos_UploadBatchAllFail(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	req := multipartRequest(t, "/api/admin/photos", token, []uploadPart{
		{field: "files[]", filename: "a.txt", data: []byte("plain")},
		{field: "files[]", filename: "b.txt", data: []byte("text")},
	}, nil)
	rec := env.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestPhotos_UploadRejects(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	t.Run("no file", func(t *testing.T) {
		req := multipartRequest(t, "/api/admin/photos", token, nil, map[string]string{"title": "x"})
		resp := assertErrorResponse(t, env.do(req), http.StatusBadRequest, "validation_error")
		assert.Contains(t, resp.Error.Details, "file")
	})

	t.Run("not an image", func(t *testing.T) {
		req := multipartRequest(t, "/api/admin/photos", token,
			[]uploadPart{{field: "file", filename: "song.mp3", data: []byte("ID3 not really")}}, nil)
		assertErrorResponse(t, env.do(req), http.StatusBadRequest, "validation_error")
	})

	t.Run("not multipart", func(t *testing.T) {
		rec := env.request(http.MethodPost, "/api/admin/photos", token, map[string]string{"file": "x"})
		assertErrorResponse(t, rec, http.StatusBadRequest, "bad_request")
	})

	t.Run("too many files", func(t *testing.T) {
		parts := make([]uploadPart, maxBatchFiles+1)
		for i := range parts {
			parts[i] = uploadPart{field: "files", filename: "f" + strconv.Itoa(i) + ".png", data: []byte("x")}
		}
		req := multipartRequest(t, "/api/admin/photos", token, parts, nil)
		resp := assertErrorResponse(t, env.do(req), http.StatusBadRequest, "validation_error")
		assert.True(t, strings.Contains(resp.Error.Details["file"], "Too many"))
	})
}

func TestPhotos_Delete(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	req := multipartRequest(t, "/api/admin/photos", token,
		[]uploadPart{{field: "file", filename: "stage.png", data: pngBytes(t)}}, nil)
	rec := env.do(req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	photo := unmarshalData[service.PhotoView](t, rec)

	path := "/api/admin/photos/" + strconv.FormatInt(photo.ID, 10)
	rec = env.request(http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	_, err := os.Stat(filepath.Join(env.uploads, "photos", photo.Filename))
	assert.True(t, os.IsNotExist(err))

	rec = env.request(http.MethodGet, "/api/admin/photos", token, nil)
	photos, _ := unmarshalList[service.PhotoView](t, rec)
	assert.Empty(t, photos)

	rec = env.request(http.MethodDelete, path, token, nil)
	assertErrorResponse(t, rec, http.StatusNotFound, "not_found")
}
