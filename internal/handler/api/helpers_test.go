// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/bandsite/internal/middleware"
	"github.com/olegiv/bandsite/internal/service"
	"github.com/olegiv/bandsite/internal/session"
	"github.com/olegiv/bandsite/internal/testutil"
)

const (
	testAdminEmail    = "admin@band.example"
	testAdminPassword = "correct-horse-battery"
	testSetupKey      = "setup-key-0123456789"
)

type testEnv struct {
	t       *testing.T
	db      *sql.DB
	handler *Handler
	router  http.Handler
	uploads string
}

// newTestEnv wires the API against an in-memory database the way main
// does, without CSRF and rate limits.
func newTestEnv(t *testing.T, opts ...func(*Deps)) *testEnv {
	t.Helper()

	db := testutil.TestMemoryDB(t)
	uploads := t.TempDir()

	sm := scs.New()
	sm.Store = memstore.New()

	lp := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit:       100,
		IPBurst:           100,
		MaxFailedAttempts: 3,
	})
	t.Cleanup(lp.Stop)

	authSvc := service.NewAuthenticator(db)
	deps := Deps{
		Auth:            authSvc,
		Events:          service.NewEventService(db, nil),
		Videos:          service.NewVideoService(db, nil),
		Photos:          service.NewPhotoService(db, nil, uploads, 5<<20, service.NewFileRemover(db)),
		Subscribers:     service.NewSubscriberService(db, nil, "Mind's Eye View", "https://band.example"),
		Views:           service.NewViews(db, nil, time.Minute),
		Sessions:        sm,
		LoginProtection: lp,
		SetupKey:        testSetupKey,
		MaxUploadBytes:  5 << 20,
		UploadsDir:      uploads,
		SiteURL:         "https://band.example",
	}
	for _, opt := range opts {
		opt(&deps)
	}

	h := NewHandler(deps)
	root := chi.NewRouter()
	root.Mount("/api", h.Routes(Middlewares{RequireAdmin: middleware.RequireAdmin(sm, authSvc)}))
	root.Get("/robots.txt", h.Robots)
	root.Get("/sitemap.xml", h.Sitemap)
	health := NewHealthHandler(h, db)
	root.Get("/health", health.Health)
	root.Get("/health/live", health.Liveness)
	root.Get("/health/ready", health.Readiness)

	return &testEnv{
		t:       t,
		db:      db,
		handler: h,
		router:  session.BearerToken(sm)(sm.LoadAndSave(root)),
		uploads: uploads,
	}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	e.t.Helper()
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// request sends a JSON body (nil for none) with an optional bearer token.
func (e *testEnv) request(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()

	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(e.t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.do(req)
}

// createAdmin adds the test admin directly through the service.
func (e *testEnv) createAdmin() {
	e.t.Helper()
	_, err := e.handler.Auth.CreateAdmin(context.Background(), testAdminEmail, "Admin", testAdminPassword)
	require.NoError(e.t, err)
}

// login creates the test admin and returns a bearer token.
func (e *testEnv) login() string {
	e.t.Helper()
	e.createAdmin()

	rec := e.request(http.MethodPost, "/api/login", "", LoginRequest{Email: testAdminEmail, Password: testAdminPassword})
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())

	resp := unmarshalData[LoginResponse](e.t, rec)
	require.NotEmpty(e.t, resp.Token)
	return resp.Token
}

// dataResponse is a generic wrapper for API responses with a "data" field.
type dataResponse[T any] struct {
	Data T     `json:"data"`
	Meta *Meta `json:"meta"`
}

func unmarshalData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var resp dataResponse[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Data
}

func unmarshalList[T any](t *testing.T, w *httptest.ResponseRecorder) ([]T, *Meta) {
	t.Helper()
	var resp dataResponse[[]T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Data, resp.Meta
}

// assertErrorResponse checks the status and error code of a response.
func assertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, status int, code string) ErrorResponse {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.Equal(t, code, resp.Error.Code)
	return resp
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for x := 0; x < 40; x++ {
		for y := 0; y < 30; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: uint8(y * 8), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type uploadPart struct {
	field, filename string
	data            []byte
}

// multipartRequest builds a POST with the given file parts and form values.
func multipartRequest(t *testing.T, path, token string, parts []uploadPart, values map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range values {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, p := range parts {
		fw, err := mw.CreateFormFile(p.field, p.filename)
		require.NoError(t, err)
		_, err = fw.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func futureDate(d time.Duration) string {
	return time.Now().UTC().Add(d).Truncate(time.Second).Format(time.RFC3339)
}
