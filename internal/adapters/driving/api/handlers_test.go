package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall/internal/core/domain"
)

// mockIngestion records calls and returns canned values.
type mockIngestion struct {
	ingestErr error
	deleteErr error
	docs      []domain.Document
	lastRaw   *domain.RawFile
}

func (m *mockIngestion) Ingest(_ context.Context, raw *domain.RawFile) (*domain.IngestResult, error) {
	m.lastRaw = raw
	if m.ingestErr != nil {
		return nil, m.ingestErr
	}
	return &domain.IngestResult{
		DocumentID: "doc-1",
		Title:      "Uploaded",
		FileType:   domain.FileTypeText,
		FileSize:   int64(len(raw.Content)),
		ChunkCount: 2,
	}, nil
}

func (m *mockIngestion) Documents(_ context.Context, _ string) ([]domain.Document, error) {
	return m.docs, nil
}

func (m *mockIngestion) Delete(_ context.Context, _, _ string) error {
	return m.deleteErr
}

// mockRetrieval returns a fixed response.
type mockRetrieval struct {
	resp      *domain.SearchResponse
	lastOwner string
	lastOpts  domain.SearchOptions
}

func (m *mockRetrieval) Search(_ context.Context, query, ownerID string, opts domain.SearchOptions) *domain.SearchResponse {
	m.lastOwner = ownerID
	m.lastOpts = opts
	if m.resp != nil {
		return m.resp
	}
	return &domain.SearchResponse{Query: query, Message: "ok"}
}

func newTestRouter(ing *mockIngestion, ret *mockRetrieval) http.Handler {
	return NewRouter(NewHandler(ing, ret))
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadDocument(t *testing.T) {
	ing := &mockIngestion{}
	router := newTestRouter(ing, &mockRetrieval{})

	body, contentType := multipartBody(t, "notes.txt", "some notes")
	req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-ID", "alice")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, ing.lastRaw)
	assert.Equal(t, "notes.txt", ing.lastRaw.Filename)
	assert.Equal(t, "alice", ing.lastRaw.OwnerID)

	var result domain.IngestResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "doc-1", result.DocumentID)
}

func TestUploadDocument_RequiresIdentity(t *testing.T) {
	router := newTestRouter(&mockIngestion{}, &mockRetrieval{})

	body, contentType := multipartBody(t, "notes.txt", "some notes")
	req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUploadDocument_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unsupported type", domain.ErrUnsupportedFileType, http.StatusUnsupportedMediaType},
		{"too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"empty content", domain.ErrEmptyContent, http.StatusBadRequest},
		{"extraction failed", domain.ErrExtractionFailed, http.StatusUnprocessableEntity},
		{"storage", domain.ErrStorage, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockIngestion{ingestErr: tt.err}, &mockRetrieval{})

			body, contentType := multipartBody(t, "f.txt", "x")
			req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
			req.Header.Set("Content-Type", contentType)
			req.Header.Set("X-User-ID", "alice")

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestSearch(t *testing.T) {
	ret := &mockRetrieval{resp: &domain.SearchResponse{
		Query:        "gravity",
		Results:      []domain.SearchResult{{Content: "match", Score: 0.9, Relevance: "Highly Relevant"}},
		TotalResults: 1,
		Message:      "Found 1 relevant passage(s).",
	}}
	router := newTestRouter(&mockIngestion{}, ret)

	body := bytes.NewBufferString(`{"query":"gravity","limit":3,"dynamic_threshold":true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/search", body)
	req.Header.Set("X-User-ID", "alice")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", ret.lastOwner)
	assert.Equal(t, 3, ret.lastOpts.Limit)
	assert.True(t, ret.lastOpts.DynamicThreshold)

	var resp domain.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.TotalResults)
}

func TestSearch_FailuresStayHTTP200(t *testing.T) {
	ret := &mockRetrieval{resp: &domain.SearchResponse{
		Query: "x",
		Error: "embedding provider timed out",
	}}
	router := newTestRouter(&mockIngestion{}, ret)

	req := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewBufferString(`{"query":"x"}`))
	req.Header.Set("X-User-ID", "alice")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "embedding provider timed out", resp.Error)
}

func TestSearch_InvalidBody(t *testing.T) {
	router := newTestRouter(&mockIngestion{}, &mockRetrieval{})

	req := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewBufferString("{not json"))
	req.Header.Set("X-User-ID", "alice")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListDocuments(t *testing.T) {
	ing := &mockIngestion{docs: []domain.Document{
		{ID: "d1", Title: "One", FileType: domain.FileTypePDF, FileSize: 100, CreatedAt: time.Now()},
		{ID: "d2", Title: "Two", FileType: domain.FileTypeText, FileSize: 50, CreatedAt: time.Now()},
	}}
	router := newTestRouter(ing, &mockRetrieval{})

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	req.Header.Set("X-User-ID", "alice")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Documents []documentInfo `json:"documents"`
		Total     int            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, "pdf", body.Documents[0].FileType)
}

func TestDeleteDocument(t *testing.T) {
	router := newTestRouter(&mockIngestion{}, &mockRetrieval{})

	req := httptest.NewRequest(http.MethodDelete, "/api/documents/doc-1", nil)
	req.Header.Set("X-User-ID", "alice")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteDocument_NotFound(t *testing.T) {
	router := newTestRouter(&mockIngestion{deleteErr: domain.ErrNotFound}, &mockRetrieval{})

	req := httptest.NewRequest(http.MethodDelete, "/api/documents/nope", nil)
	req.Header.Set("X-User-ID", "alice")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth_NoIdentityNeeded(t *testing.T) {
	router := newTestRouter(&mockIngestion{}, &mockRetrieval{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
