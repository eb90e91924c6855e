// Package extractors provides document text extraction for the closed
// set of supported upload formats.
package extractors

import (
	"context"
	"fmt"

	"github.com/recall-labs/recall/internal/core/domain"
	"github.com/recall-labs/recall/internal/core/ports/driven"
	"github.com/recall-labs/recall/internal/extractors/docx"
	"github.com/recall-labs/recall/internal/extractors/epub"
	"github.com/recall-labs/recall/internal/extractors/markdown"
	"github.com/recall-labs/recall/internal/extractors/pdf"
	"github.com/recall-labs/recall/internal/extractors/plaintext"
)

// Registry maps file types to their extractors.
type Registry struct {
	extractors map[domain.FileType]driven.Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[domain.FileType]driven.Extractor),
	}
}

// NewDefaultRegistry creates a registry with all built-in extractors.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(pdf.New())
	r.Register(docx.New())
	r.Register(epub.New())
	return r
}

// Register adds an extractor, replacing any previous one for its type.
func (r *Registry) Register(e driven.Extractor) {
	r.extractors[e.FileType()] = e
}

// ForType returns the extractor for a file type.
func (r *Registry) ForType(t domain.FileType) (driven.Extractor, error) {
	e, ok := r.extractors[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, t)
	}
	return e, nil
}

// Extract detects the file type from the filename, validates the size
// ceiling, and runs the matching extractor. Detection and size checks
// happen before any parsing work.
func (r *Registry) Extract(ctx context.Context, raw *domain.RawFile) (domain.FileType, *driven.ExtractResult, error) {
	if raw == nil {
		return "", nil, domain.ErrInvalidInput
	}

	fileType, err := domain.DetectFileType(raw.Filename)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, raw.Filename)
	}

	if int64(len(raw.Content)) > domain.MaxFileSize {
		return fileType, nil, fmt.Errorf("%w: %d bytes (limit %d)",
			domain.ErrFileTooLarge, len(raw.Content), domain.MaxFileSize)
	}

	extractor, err := r.ForType(fileType)
	if err != nil {
		return fileType, nil, err
	}

	result, err := extractor.Extract(ctx, raw)
	if err != nil {
		return fileType, nil, err
	}

	return fileType, result, nil
}

// Types returns the registered file types.
func (r *Registry) Types() []domain.FileType {
	types := make([]domain.FileType, 0, len(r.extractors))
	for t := range r.extractors {
		types = append(types, t)
	}
	return types
}
