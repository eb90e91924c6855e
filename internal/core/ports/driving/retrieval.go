package driving

import (
	"context"

	"github.com/recall-labs/recall/internal/core/domain"
)

// RetrievalService answers natural-language queries against a user's
// stored knowledge.
type RetrievalService interface {
	// Search embeds the query, ranks the caller's chunks against it,
	// and returns a structured bundle. The bundle is always
	// well-formed: internal failures set its Error field rather than
	// surfacing as a returned error.
	Search(ctx context.Context, query, ownerID string, opts domain.SearchOptions) *domain.SearchResponse
}
