package driven

import (
	"context"

	"github.com/recall-labs/recall/internal/core/domain"
)

// Extractor converts the raw bytes of one file format into plain text.
// Each extractor handles exactly one FileType; the set is closed, so
// adding a format is a compile-time-checked extension.
type Extractor interface {
	// FileType returns the format this extractor handles.
	FileType() domain.FileType

	// Extract decodes the raw file into text and a title guess.
	// Returns domain.ErrExtractionFailed when the byte stream cannot be
	// decoded and domain.ErrEmptyContent when decoding succeeds but
	// yields no usable text.
	Extract(ctx context.Context, raw *domain.RawFile) (*ExtractResult, error)
}

// ExtractResult is the output of extraction, before sanitisation.
type ExtractResult struct {
	// Title is the best-effort document title.
	Title string

	// Content is the extracted plain text.
	Content string

	// Metadata carries format-specific hints (page count, authors).
	Metadata map[string]any
}
