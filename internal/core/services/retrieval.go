package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/recall-labs/recall/internal/core/domain"
	"github.com/recall-labs/recall/internal/core/ports/driven"
	"github.com/recall-labs/recall/internal/core/ports/driving"
	"github.com/recall-labs/recall/internal/logger"
)

// maxSuggestions bounds the refinement hints offered on empty results.
const maxSuggestions = 3

var _ driving.RetrievalService = (*Retrieval)(nil)

// Retrieval answers semantic queries over a user's ingested knowledge.
// It never returns an error: every failure mode becomes a well-formed
// response the conversational layer can surface verbatim.
type Retrieval struct {
	embedder driven.EmbeddingService
	store    driven.KnowledgeStore
	ranker   *Ranker
}

// NewRetrieval creates the retrieval service.
func NewRetrieval(embedder driven.EmbeddingService, store driven.KnowledgeStore, ranker *Ranker) *Retrieval {
	return &Retrieval{
		embedder: embedder,
		store:    store,
		ranker:   ranker,
	}
}

// Search embeds the query, scans the caller's chunks, and ranks them by
// cosine similarity against an optionally adaptive threshold.
func (s *Retrieval) Search(ctx context.Context, query, ownerID string, opts domain.SearchOptions) *domain.SearchResponse {
	resp := &domain.SearchResponse{Query: query}

	if strings.TrimSpace(query) == "" {
		resp.Error = "query must not be empty"
		resp.Message = "Provide a search query describing what you are looking for."
		return resp
	}
	if ownerID == "" {
		resp.Error = "authentication required"
		resp.Message = "Sign in before searching your knowledge base."
		return resp
	}

	opts = opts.Clamp()
	threshold := opts.MinSimilarity
	if opts.DynamicThreshold {
		threshold = domain.AdaptiveThreshold(query, threshold)
		logger.Debug("Adaptive threshold %.2f -> %.2f for %q", opts.MinSimilarity, threshold, query)
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		logger.Warn("Query embedding failed: %v", err)
		resp.Error = embeddingErrorText(err)
		resp.Message = "The search could not be executed. Try again shortly."
		return resp
	}

	refs, err := s.store.ChunksForOwner(ctx, ownerID)
	if err != nil {
		logger.Warn("Chunk scan failed for owner %s: %v", ownerID, err)
		resp.Error = "knowledge store unavailable"
		resp.Message = "The search could not be executed. Try again shortly."
		return resp
	}

	if len(refs) == 0 {
		resp.Message = "Your knowledge base is empty. Upload documents before searching."
		return resp
	}

	results := s.ranker.Rank(queryVec, refs, threshold, opts.Limit)
	resp.Results = results
	resp.TotalResults = len(results)

	if len(results) == 0 {
		resp.Message = fmt.Sprintf("No passages matched %q above the similarity threshold (%.2f).", query, threshold)
		resp.Suggestions = refineQuery(query)
		return resp
	}

	resp.Summary = summarise(query, results, s.ranker.TopThreshold())
	resp.Message = fmt.Sprintf("Found %d relevant passage(s).", len(results))
	return resp
}

// embeddingErrorText maps provider failures onto caller-facing text.
func embeddingErrorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmbeddingTimeout):
		return "embedding provider timed out"
	case errors.Is(err, domain.ErrEmbeddingProvider):
		return "embedding provider unavailable"
	default:
		return "embedding failed"
	}
}

// refineQuery proposes up to three alternative queries when nothing
// matched: dropping the first or last term, and splitting conjunctions.
func refineQuery(query string) []string {
	tokens := strings.Fields(query)

	var candidates []string
	if len(tokens) > 1 {
		candidates = append(candidates,
			strings.Join(tokens[1:], " "),
			strings.Join(tokens[:len(tokens)-1], " "),
		)
	}
	lowered := strings.ToLower(query)
	for _, conj := range []string{" and ", " or "} {
		if idx := strings.Index(lowered, conj); idx > 0 {
			left := strings.TrimSpace(query[:idx])
			right := strings.TrimSpace(query[idx+len(conj):])
			candidates = append(candidates, left, right)
		}
	}

	seen := make(map[string]bool, len(candidates))
	var suggestions []string
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" || strings.EqualFold(c, query) || seen[strings.ToLower(c)] {
			continue
		}
		seen[strings.ToLower(c)] = true
		suggestions = append(suggestions, c)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}

// summarise describes non-empty results in one paragraph: how many
// passages, from how many distinct documents, and how many scored at or
// above topThreshold, the floor of the highest configured band.
func summarise(query string, results []domain.SearchResult, topThreshold float64) string {
	seen := make(map[string]bool)
	var names []string
	highly := 0
	for _, r := range results {
		if !seen[r.DocumentTitle] {
			seen[r.DocumentTitle] = true
			names = append(names, fmt.Sprintf("%q", r.DocumentTitle))
		}
		if r.Score >= topThreshold {
			highly++
		}
	}

	summary := fmt.Sprintf("Found %d passage(s) matching %q across %d document(s): %s.",
		len(results), query, len(names), strings.Join(names, ", "))
	if highly > 0 {
		summary += fmt.Sprintf(" %d of them are highly relevant.", highly)
	}
	return summary
}
