// Package services contains the core engine logic wired between the
// driving and driven ports.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/recall-labs/recall/internal/chunker"
	"github.com/recall-labs/recall/internal/core/domain"
	"github.com/recall-labs/recall/internal/core/ports/driven"
	"github.com/recall-labs/recall/internal/core/ports/driving"
	"github.com/recall-labs/recall/internal/extractors"
	"github.com/recall-labs/recall/internal/logger"
	"github.com/recall-labs/recall/internal/sanitise"
)

const (
	// DefaultEmbedConcurrency bounds the embedding worker pool.
	DefaultEmbedConcurrency = 4

	// summaryLength caps the ingest preview summary, in runes.
	summaryLength = 280
)

var _ driving.IngestionService = (*Ingestion)(nil)

// Ingestion runs the upload pipeline: extract, sanitise, chunk, embed,
// persist.
type Ingestion struct {
	registry    *extractors.Registry
	chunker     *chunker.Chunker
	embedder    driven.EmbeddingService
	store       driven.KnowledgeStore
	blobs       driven.BlobStore
	concurrency int
	limiter     *rate.Limiter
}

// IngestionOption configures the ingestion service.
type IngestionOption func(*Ingestion)

// WithBlobStore keeps a copy of the original upload. Blob writes are
// best-effort and never fail the ingestion.
func WithBlobStore(b driven.BlobStore) IngestionOption {
	return func(s *Ingestion) {
		s.blobs = b
	}
}

// WithEmbedConcurrency bounds the number of parallel embedding calls.
func WithEmbedConcurrency(n int) IngestionOption {
	return func(s *Ingestion) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithRateLimit throttles embedding requests to the provider.
func WithRateLimit(rps float64, burst int) IngestionOption {
	return func(s *Ingestion) {
		if rps > 0 && burst > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// NewIngestion creates the ingestion service.
func NewIngestion(registry *extractors.Registry, ch *chunker.Chunker, embedder driven.EmbeddingService, store driven.KnowledgeStore, opts ...IngestionOption) *Ingestion {
	s := &Ingestion{
		registry:    registry,
		chunker:     ch,
		embedder:    embedder,
		store:       store,
		concurrency: DefaultEmbedConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest processes one uploaded file end to end. Validation, extraction
// and persistence errors are terminal; a single chunk's embedding
// failure only costs that chunk its vector.
func (s *Ingestion) Ingest(ctx context.Context, raw *domain.RawFile) (*domain.IngestResult, error) {
	if raw == nil || raw.Filename == "" || len(raw.Content) == 0 {
		return nil, fmt.Errorf("%w: empty upload", domain.ErrInvalidInput)
	}
	if raw.OwnerID == "" {
		return nil, domain.ErrUnauthenticated
	}

	logger.Section(fmt.Sprintf("Ingesting %s (%d bytes)", raw.Filename, len(raw.Content)))

	fileType, extracted, err := s.registry.Extract(ctx, raw)
	if err != nil {
		return nil, err
	}

	content := sanitise.CleanPreserveFormatting(extracted.Content)
	title := sanitise.CleanCollapse(extracted.Title)
	if content == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyContent, raw.Filename)
	}

	doc := &domain.Document{
		ID:        uuid.New().String(),
		OwnerID:   raw.OwnerID,
		Title:     title,
		Content:   content,
		FileType:  fileType,
		FileSize:  int64(len(raw.Content)),
		Metadata:  sanitise.CleanMetadata(extracted.Metadata),
		CreatedAt: time.Now().UTC(),
	}

	chunks := s.chunker.Split(doc)
	logger.Debug("Split %q into %d chunks", doc.Title, len(chunks))

	embedded := s.embedChunks(ctx, chunks)
	logger.Debug("Embedded %d/%d chunks", embedded, len(chunks))

	if s.blobs != nil {
		url, blobErr := s.blobs.Put(ctx, raw)
		if blobErr != nil {
			logger.Warn("Blob write failed for %s: %v", raw.Filename, blobErr)
		} else {
			doc.BlobURL = url
		}
	}

	if err := s.store.SaveDocumentWithChunks(ctx, doc, chunks); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	logger.Info("Ingested %q as %s (%d chunks)", doc.Title, doc.ID, len(chunks))

	firstPage := content
	if len(chunks) > 0 {
		firstPage = chunks[0].Content
	}

	return &domain.IngestResult{
		DocumentID:       doc.ID,
		Title:            doc.Title,
		FileType:         fileType,
		FileSize:         doc.FileSize,
		ChunkCount:       len(chunks),
		Summary:          truncateRunes(content, summaryLength),
		FirstPageContent: firstPage,
	}, nil
}

// embedChunks fills in chunk embeddings with a bounded worker pool.
// Failures are logged per chunk and leave the chunk without a vector;
// it is persisted anyway and simply never matches a query.
func (s *Ingestion) embedChunks(ctx context.Context, chunks []domain.Chunk) int {
	if len(chunks) == 0 {
		return 0
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		embedded int
	)
	sem := make(chan struct{}, s.concurrency)

	for i := range chunks {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if s.limiter != nil {
				if err := s.limiter.Wait(ctx); err != nil {
					logger.Warn("Chunk %d skipped: %v", chunks[i].Index, err)
					return
				}
			}

			vec, err := s.embedder.Embed(ctx, chunks[i].Content)
			if err != nil {
				logger.Warn("Embedding chunk %d failed: %v", chunks[i].Index, err)
				return
			}

			chunks[i].Embedding = vec
			mu.Lock()
			embedded++
			mu.Unlock()
		}(i)
	}

	wg.Wait()
	return embedded
}

// Documents lists the caller's documents, newest first.
func (s *Ingestion) Documents(ctx context.Context, ownerID string) ([]domain.Document, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.store.DocumentsForOwner(ctx, ownerID)
}

// Delete removes one of the caller's documents and its chunks. The
// caller must own the document.
func (s *Ingestion) Delete(ctx context.Context, ownerID, documentID string) error {
	if ownerID == "" {
		return domain.ErrUnauthenticated
	}

	doc, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return err
	}
	if doc.OwnerID != ownerID {
		return domain.ErrNotFound
	}

	if err := s.store.DeleteDocument(ctx, documentID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	if s.blobs != nil && doc.BlobURL != "" {
		if blobErr := s.blobs.Delete(ctx, doc.BlobURL); blobErr != nil {
			logger.Warn("Blob delete failed for %s: %v", doc.BlobURL, blobErr)
		}
	}

	logger.Info("Deleted document %s", documentID)
	return nil
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
