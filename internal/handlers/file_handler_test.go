package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore registra las llamadas; nada llega a un bucket real.
type fakeStore struct {
	uploads []string
}

func (f *fakeStore) Upload(_ context.Context, key, _ string, _ io.Reader) error {
	f.uploads = append(f.uploads, key)
	return nil
}

func (f *fakeStore) SignedURL(_ context.Context, key string) (string, error) {
	return "https://files.example.com/" + key, nil
}

func (f *fakeStore) DeletePrefix(context.Context, string) error { return nil }

func newFileRouter(t *testing.T, store ObjectStore) (*gin.Engine, *fakeStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fs, _ := store.(*fakeStore)

	// db nil a propósito: las validaciones bajo test cortan antes de
	// tocar base de datos
	h := NewFileHandler(nil, store, noopRecorder{})

	r := gin.New()
	r.POST("/api/admin/files", h.Upload)
	return r, fs
}

func multipartUpload(t *testing.T, clientID, fileName, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	require.NoError(t, w.WriteField("client_id", clientID))

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	hdr.Set("Content-Type", contentType)

	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func postUpload(t *testing.T, r *gin.Engine, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/files", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpload_InvalidClientID(t *testing.T) {
	r, fs := newFileRouter(t, &fakeStore{})

	body, ct := multipartUpload(t, "no-es-un-uuid", "informe.pdf", "application/pdf", []byte("pdf"))
	w := postUpload(t, r, body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_id")
	assert.Empty(t, fs.uploads)
}

func TestUpload_MissingFile(t *testing.T) {
	r, _ := newFileRouter(t, &fakeStore{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("client_id", "5e9a13b6-6f4f-4e43-9f7e-2f4f9bb1c111"))
	require.NoError(t, mw.Close())

	w := postUpload(t, r, &buf, mw.FormDataContentType())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing_file")
}

func TestUpload_FileTooLarge(t *testing.T) {
	r, fs := newFileRouter(t, &fakeStore{})

	big := bytes.Repeat([]byte("a"), maxFileSize+1)
	body, ct := multipartUpload(t, "5e9a13b6-6f4f-4e43-9f7e-2f4f9bb1c111", "grande.pdf", "application/pdf", big)
	w := postUpload(t, r, body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "file_too_large")
	assert.Empty(t, fs.uploads)
}

func TestUpload_DisallowedContentType(t *testing.T) {
	r, fs := newFileRouter(t, &fakeStore{})

	body, ct := multipartUpload(t, "5e9a13b6-6f4f-4e43-9f7e-2f4f9bb1c111", "script.sh", "application/x-sh", []byte("#!/bin/sh"))
	w := postUpload(t, r, body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_file_type")
	assert.Empty(t, fs.uploads)
}

func TestUpload_StorageNotConfigured(t *testing.T) {
	r, _ := newFileRouter(t, nil)

	body, ct := multipartUpload(t, "5e9a13b6-6f4f-4e43-9f7e-2f4f9bb1c111", "informe.pdf", "application/pdf", []byte("pdf"))
	w := postUpload(t, r, body, ct)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "storage_not_configured")
}
