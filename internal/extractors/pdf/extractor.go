// Package pdf extracts content from PDF uploads.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/recall-labs/recall/internal/core/domain"
	"github.com/recall-labs/recall/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF files.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// FileType returns the format this extractor handles.
func (e *Extractor) FileType() domain.FileType {
	return domain.FileTypePDF
}

// Extract decodes page text from the PDF. Encrypted or corrupt files
// fail with ErrExtractionFailed; a decodable file with no text (a
// scanned PDF, for example) fails with ErrEmptyContent.
func (e *Extractor) Extract(ctx context.Context, raw *domain.RawFile) (result *driven.ExtractResult, err error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	// The pdf library panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", domain.ErrExtractionFailed, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	var b strings.Builder
	pageCount := reader.NumPage()

	for i := 1; i <= pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// One unreadable page does not fail the document.
			continue
		}

		if strings.TrimSpace(text) == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(text)
	}

	content := b.String()
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyContent
	}

	return &driven.ExtractResult{
		Title:   titleFromFilename(raw.Filename),
		Content: content,
		Metadata: map[string]any{
			"page_count": pageCount,
		},
	}, nil
}

// titleFromFilename derives a human-readable title from a filename.
func titleFromFilename(filename string) string {
	name := filepath.Base(filename)
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}
