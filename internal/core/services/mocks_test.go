package services

import (
	"context"
	"strings"

	"github.com/recall-labs/recall/internal/core/domain"
	"github.com/recall-labs/recall/internal/core/ports/driven"
)

// stubEmbedder returns fixed-dimension vectors derived from text length
// so distinct inputs get distinct but deterministic embeddings.
type stubEmbedder struct {
	dims    int
	embedFn func(ctx context.Context, text string) ([]float32, error)
	calls   int
}

func newStubEmbedder(dims int) *stubEmbedder {
	return &stubEmbedder{dims: dims}
}

func (e *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.calls++
	if e.embedFn != nil {
		return e.embedFn(ctx, text)
	}
	vec := make([]float32, e.dims)
	for i := range vec {
		vec[i] = float32(len(text)%7+i) / 10
	}
	return vec, nil
}

func (e *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (e *stubEmbedder) Dimensions() int              { return e.dims }
func (e *stubEmbedder) ModelName() string            { return "stub" }
func (e *stubEmbedder) Ping(context.Context) error   { return nil }
func (e *stubEmbedder) Close() error                 { return nil }

// failingStore wraps another store and fails selected operations.
type failingStore struct {
	driven.KnowledgeStore
	failChunksForOwner bool
}

func (s *failingStore) ChunksForOwner(ctx context.Context, ownerID string) ([]driven.ChunkRef, error) {
	if s.failChunksForOwner {
		return nil, domain.ErrStorage
	}
	return s.KnowledgeStore.ChunksForOwner(ctx, ownerID)
}

// keywordEmbedder maps texts containing a keyword near a target vector,
// everything else orthogonal to it. Lets tests control similarity.
type keywordEmbedder struct {
	keyword string
}

func (e *keywordEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if strings.Contains(strings.ToLower(text), e.keyword) {
		return []float32{1, 0, 0}, nil
	}
	return []float32{0, 1, 0}, nil
}

func (e *keywordEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i], _ = e.Embed(ctx, t)
	}
	return out, nil
}

func (e *keywordEmbedder) Dimensions() int            { return 3 }
func (e *keywordEmbedder) ModelName() string          { return "keyword-stub" }
func (e *keywordEmbedder) Ping(context.Context) error { return nil }
func (e *keywordEmbedder) Close() error               { return nil }
