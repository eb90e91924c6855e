package driving

import (
	"context"

	"github.com/recall-labs/recall/internal/core/domain"
)

// IngestionService runs the upload pipeline: extract, sanitise, chunk,
// embed, persist.
type IngestionService interface {
	// Ingest processes one uploaded file end to end. Validation and
	// extraction errors are terminal for that ingestion; a single
	// chunk's embedding failure is not.
	Ingest(ctx context.Context, raw *domain.RawFile) (*domain.IngestResult, error)

	// Documents lists the caller's documents, newest first.
	Documents(ctx context.Context, ownerID string) ([]domain.Document, error)

	// Delete removes one of the caller's documents and its chunks.
	Delete(ctx context.Context, ownerID, documentID string) error
}
