package domain

import "strings"

// Limit and threshold bounds for retrieval.
const (
	// MinSearchLimit and MaxSearchLimit bound the result count.
	MinSearchLimit = 1
	MaxSearchLimit = 10

	// DefaultSearchLimit applies when the caller sends no limit.
	DefaultSearchLimit = 5

	// DefaultMinSimilarity applies when the caller sends no threshold.
	DefaultMinSimilarity = 0.4

	// DynamicThresholdFloor is the lowest the adaptive policy will go.
	DynamicThresholdFloor = 0.3

	// DynamicThresholdCeiling is the highest the adaptive policy will go.
	DynamicThresholdCeiling = 0.5
)

// SearchOptions configures a retrieval query.
type SearchOptions struct {
	// Limit is the maximum number of results, clamped to [1, 10].
	Limit int

	// MinSimilarity is the score cutoff, clamped to [0, 1].
	MinSimilarity float64

	// DynamicThreshold adjusts MinSimilarity by query length when set.
	DynamicThreshold bool
}

// Clamp normalises options into their valid ranges.
// Zero values fall back to the defaults.
func (o SearchOptions) Clamp() SearchOptions {
	if o.Limit == 0 {
		o.Limit = DefaultSearchLimit
	}
	if o.Limit < MinSearchLimit {
		o.Limit = MinSearchLimit
	}
	if o.Limit > MaxSearchLimit {
		o.Limit = MaxSearchLimit
	}
	if o.MinSimilarity == 0 {
		o.MinSimilarity = DefaultMinSimilarity
	}
	if o.MinSimilarity < 0 {
		o.MinSimilarity = 0
	}
	if o.MinSimilarity > 1 {
		o.MinSimilarity = 1
	}
	return o
}

// AdaptiveThreshold adjusts a similarity cutoff by query length.
// Short queries (< 3 tokens) trade precision for recall; long queries
// (> 7 tokens) are specific enough to demand closer matches.
func AdaptiveThreshold(query string, minSimilarity float64) float64 {
	tokens := len(strings.Fields(query))
	switch {
	case tokens < 3:
		adjusted := minSimilarity - 0.1
		if adjusted < DynamicThresholdFloor {
			return DynamicThresholdFloor
		}
		return adjusted
	case tokens > 7:
		adjusted := minSimilarity + 0.05
		if adjusted > DynamicThresholdCeiling {
			return DynamicThresholdCeiling
		}
		return adjusted
	default:
		return minSimilarity
	}
}

// RelevanceBand maps a minimum score to a human-readable label.
type RelevanceBand struct {
	Threshold float64
	Label     string
}

// DefaultRelevanceBands are the score bands used when none are configured.
// Band values are tunable configuration, not a fixed contract.
var DefaultRelevanceBands = []RelevanceBand{
	{Threshold: 0.8, Label: "Highly Relevant"},
	{Threshold: 0.65, Label: "Very Relevant"},
	{Threshold: 0.5, Label: "Relevant"},
	{Threshold: 0.3, Label: "Somewhat Relevant"},
}

// LowRelevanceLabel applies below the lowest configured band.
const LowRelevanceLabel = "Low Relevance"

// RelevanceLabel returns the label for a score given ordered bands.
// Bands must be sorted by descending threshold.
func RelevanceLabel(score float64, bands []RelevanceBand) string {
	for _, band := range bands {
		if score >= band.Threshold {
			return band.Label
		}
	}
	return LowRelevanceLabel
}

// SearchResult pairs a matched chunk with its score and provenance.
type SearchResult struct {
	// Content is the chunk text.
	Content string `json:"content"`

	// Score is the cosine similarity in [-1, 1].
	Score float64 `json:"score"`

	// Relevance is the label derived from the score bands.
	Relevance string `json:"relevance"`

	// DocumentID identifies the source document.
	DocumentID string `json:"document_id"`

	// DocumentTitle is the source document's title.
	DocumentTitle string `json:"document_title"`

	// ChunkIndex is the passage's position within the document.
	ChunkIndex int `json:"chunk_index"`
}

// SearchResponse is the bundle handed to the conversational tool layer.
// It is always well-formed: failures populate Error instead of propagating.
type SearchResponse struct {
	// Query echoes the search text.
	Query string `json:"query"`

	// Results are the ranked matches, best first.
	Results []SearchResult `json:"results"`

	// Summary is a one-paragraph description of non-empty results.
	Summary string `json:"summary,omitempty"`

	// TotalResults is len(Results).
	TotalResults int `json:"total_results"`

	// Message is guidance text for the caller.
	Message string `json:"message"`

	// Suggestions are query refinements offered when nothing matched.
	Suggestions []string `json:"suggestions,omitempty"`

	// Error is set when the search could not be executed.
	Error string `json:"error,omitempty"`
}

// IngestResult describes a completed ingestion.
type IngestResult struct {
	// DocumentID is the id of the created document.
	DocumentID string `json:"document_id"`

	// Title is the extracted title.
	Title string `json:"title"`

	// FileType is the detected format.
	FileType FileType `json:"file_type"`

	// FileSize is the upload size in bytes.
	FileSize int64 `json:"file_size"`

	// ChunkCount is the number of persisted chunks.
	ChunkCount int `json:"chunk_count"`

	// Summary is a short preview of the document content.
	Summary string `json:"summary"`

	// FirstPageContent is the leading text of the document.
	FirstPageContent string `json:"first_page_content"`
}
