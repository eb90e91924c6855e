package driven

import (
	"context"

	"github.com/recall-labs/recall/internal/core/domain"
)

// BlobStore persists original uploaded files. It is strictly
// best-effort: a write failure never blocks or invalidates ingestion.
type BlobStore interface {
	// Put stores the raw file and returns a URL for later retrieval.
	Put(ctx context.Context, raw *domain.RawFile) (string, error)

	// Delete removes a stored blob by URL. Missing blobs are not an error.
	Delete(ctx context.Context, url string) error
}
