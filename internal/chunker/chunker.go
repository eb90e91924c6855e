// Package chunker splits sanitised document text into overlapping
// passages sized for embedding and retrieval.
package chunker

import (
	"github.com/google/uuid"

	"github.com/recall-labs/recall/internal/core/domain"
)

// DefaultChunkSize is the default passage size in runes.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of runes shared between
// consecutive passages, so context at a boundary is never lost.
const DefaultOverlap = 200

// Chunker splits document content into fixed-size overlapping chunks.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in runes.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in runes.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must leave room for forward progress.
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// ChunkSize returns the configured passage size in runes.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// Overlap returns the configured overlap in runes.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Split cuts document content into chunks with contiguous zero-based
// indices. Every rune of input lands in at least one chunk, and the
// result is deterministic for identical input and configuration.
// Content shorter than one chunk yields exactly one chunk.
func (c *Chunker) Split(doc *domain.Document) []domain.Chunk {
	if doc == nil || doc.Content == "" {
		return nil
	}

	runes := []rune(doc.Content)
	total := len(runes)
	step := c.chunkSize - c.overlap

	chunks := make([]domain.Chunk, 0, total/step+1)

	index := 0
	for start := 0; start < total; start += step {
		end := start + c.chunkSize
		if end > total {
			end = total
		}

		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Index:      index,
			Content:    string(runes[start:end]),
			Metadata: map[string]any{
				"char_start": start,
				"char_end":   end,
			},
		})
		index++

		if end == total {
			break
		}
	}

	return chunks
}
