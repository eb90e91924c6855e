package driven

import (
	"context"

	"github.com/recall-labs/recall/internal/core/domain"
)

// ChunkRef is a chunk joined with the provenance a search result needs.
type ChunkRef struct {
	Chunk domain.Chunk

	// DocumentTitle is the owning document's title.
	DocumentTitle string
}

// KnowledgeStore persists documents and their chunk+embedding records.
// Every read is scoped to an owning user; there is no operation that
// crosses owners. Backed by SQLite.
type KnowledgeStore interface {
	// SaveDocument stores a document without chunks.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// SaveChunks stores a chunk batch in one transaction.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// SaveDocumentWithChunks stores a document and its full chunk set
	// atomically. Readers never observe a partially populated document.
	SaveDocumentWithChunks(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ChunksForOwner returns every chunk owned by the user, with
	// provenance, ordered by document then chunk index.
	ChunksForOwner(ctx context.Context, ownerID string) ([]ChunkRef, error)

	// DocumentsForOwner returns the user's documents, newest first.
	DocumentsForOwner(ctx context.Context, ownerID string) ([]domain.Document, error)

	// DeleteDocument removes a document and cascades to its chunks.
	DeleteDocument(ctx context.Context, id string) error

	// Close releases the underlying connection.
	Close() error
}
