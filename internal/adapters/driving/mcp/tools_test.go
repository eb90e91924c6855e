package mcp

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall/internal/core/domain"
)

type mockRetrieval struct {
	lastOwner string
	lastOpts  domain.SearchOptions
	resp      *domain.SearchResponse
}

func (m *mockRetrieval) Search(_ context.Context, query, ownerID string, opts domain.SearchOptions) *domain.SearchResponse {
	m.lastOwner = ownerID
	m.lastOpts = opts
	if m.resp != nil {
		return m.resp
	}
	return &domain.SearchResponse{Query: query, Message: "ok"}
}

type mockIngestion struct {
	lastRaw *domain.RawFile
	err     error
}

func (m *mockIngestion) Ingest(_ context.Context, raw *domain.RawFile) (*domain.IngestResult, error) {
	m.lastRaw = raw
	if m.err != nil {
		return nil, m.err
	}
	return &domain.IngestResult{DocumentID: "d1", Title: "Stub", ChunkCount: 3}, nil
}

func (m *mockIngestion) Documents(context.Context, string) ([]domain.Document, error) {
	return []domain.Document{{ID: "d1", Title: "Stub", Content: "full text"}}, nil
}

func (m *mockIngestion) Delete(context.Context, string, string) error {
	return nil
}

func TestNewServer_RequiresRetrieval(t *testing.T) {
	_, err := NewServer(&Ports{})
	assert.ErrorIs(t, err, ErrMissingRetrievalService)
}

func TestNewServer_IngestionOptional(t *testing.T) {
	s, err := NewServer(&Ports{Retrieval: &mockRetrieval{}})
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestHandleSearch_PassesOptionsAndOwner(t *testing.T) {
	ret := &mockRetrieval{}
	s, err := NewServer(&Ports{Retrieval: ret, Owner: "alice"})
	require.NoError(t, err)

	_, out, err := s.handleSearch(context.Background(), nil, SearchInput{
		Query:            "gravity",
		Limit:            3,
		MinSimilarity:    0.6,
		DynamicThreshold: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", ret.lastOwner)
	assert.Equal(t, 3, ret.lastOpts.Limit)
	assert.InDelta(t, 0.6, ret.lastOpts.MinSimilarity, 1e-9)
	assert.True(t, ret.lastOpts.DynamicThreshold)
	assert.Equal(t, "gravity", out.Query)
}

func TestHandleSearch_DefaultOwner(t *testing.T) {
	ret := &mockRetrieval{}
	s, err := NewServer(&Ports{Retrieval: ret})
	require.NoError(t, err)

	_, _, err = s.handleSearch(context.Background(), nil, SearchInput{Query: "q"})

	require.NoError(t, err)
	assert.Equal(t, DefaultOwner, ret.lastOwner)
}

func TestHandleSearch_StructuredErrorsPassThrough(t *testing.T) {
	ret := &mockRetrieval{resp: &domain.SearchResponse{
		Query: "q",
		Error: "embedding provider timed out",
	}}
	s, err := NewServer(&Ports{Retrieval: ret})
	require.NoError(t, err)

	_, out, err := s.handleSearch(context.Background(), nil, SearchInput{Query: "q"})

	// The failure travels inside the response, never as a tool error.
	require.NoError(t, err)
	assert.Equal(t, "embedding provider timed out", out.Error)
}

func TestHandleUpload(t *testing.T) {
	ing := &mockIngestion{}
	s, err := NewServer(&Ports{Retrieval: &mockRetrieval{}, Ingestion: ing, Owner: "alice"})
	require.NoError(t, err)

	_, out, err := s.handleUpload(context.Background(), nil, UploadInput{
		Filename: "notes.txt",
		Content:  base64.StdEncoding.EncodeToString([]byte("hello")),
	})

	require.NoError(t, err)
	require.NotNil(t, ing.lastRaw)
	assert.Equal(t, "notes.txt", ing.lastRaw.Filename)
	assert.Equal(t, []byte("hello"), ing.lastRaw.Content)
	assert.Equal(t, "alice", ing.lastRaw.OwnerID)
	assert.Equal(t, "d1", out.DocumentID)
}

func TestHandleUpload_BadBase64(t *testing.T) {
	s, err := NewServer(&Ports{Retrieval: &mockRetrieval{}, Ingestion: &mockIngestion{}})
	require.NoError(t, err)

	_, _, err = s.handleUpload(context.Background(), nil, UploadInput{
		Filename: "notes.txt",
		Content:  "!!! not base64 !!!",
	})

	assert.Error(t, err)
}

func TestExtractDocumentID(t *testing.T) {
	assert.Equal(t, "d1", extractDocumentID("recall://documents/d1"))
	assert.Equal(t, "", extractDocumentID("recall://other/d1"))
	assert.Equal(t, "", extractDocumentID("http://documents/d1"))
}
