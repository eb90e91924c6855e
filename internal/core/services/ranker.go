package services

import (
	"math"
	"sort"

	"github.com/recall-labs/recall/internal/core/domain"
	"github.com/recall-labs/recall/internal/core/ports/driven"
)

// Ranker scores chunks against a query vector and keeps the best.
type Ranker struct {
	bands []domain.RelevanceBand
}

// NewRanker builds a ranker with the given score bands. Nil bands fall
// back to the defaults.
func NewRanker(bands []domain.RelevanceBand) *Ranker {
	if len(bands) == 0 {
		bands = domain.DefaultRelevanceBands
	}
	sorted := make([]domain.RelevanceBand, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Threshold > sorted[j].Threshold
	})
	return &Ranker{bands: sorted}
}

// TopThreshold returns the score floor of the highest configured band.
func (r *Ranker) TopThreshold() float64 {
	return r.bands[0].Threshold
}

// Rank scores every candidate chunk against the query vector, drops
// scores below minSimilarity, and returns at most limit results, best
// first. Chunks without an embedding, or with a vector of the wrong
// dimensionality, never participate. Ties are broken by document id
// then chunk position so identical inputs always rank identically.
func (r *Ranker) Rank(queryVec []float32, candidates []driven.ChunkRef, minSimilarity float64, limit int) []domain.SearchResult {
	scored := make([]domain.SearchResult, 0, len(candidates))
	for _, ref := range candidates {
		if !ref.Chunk.HasEmbedding(len(queryVec)) {
			continue
		}
		score, ok := CosineSimilarity(queryVec, ref.Chunk.Embedding)
		if !ok || score < minSimilarity {
			continue
		}
		scored = append(scored, domain.SearchResult{
			Content:       ref.Chunk.Content,
			Score:         score,
			Relevance:     domain.RelevanceLabel(score, r.bands),
			DocumentID:    ref.Chunk.DocumentID,
			DocumentTitle: ref.DocumentTitle,
			ChunkIndex:    ref.Chunk.Index,
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].DocumentID != scored[j].DocumentID {
			return scored[i].DocumentID < scored[j].DocumentID
		}
		return scored[i].ChunkIndex < scored[j].ChunkIndex
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// CosineSimilarity computes the cosine of the angle between two vectors
// of equal length. The second return is false when either vector has
// zero magnitude, in which case similarity is undefined.
func CosineSimilarity(a, b []float32) (float64, bool) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, false
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}
