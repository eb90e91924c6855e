package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// FileType identifies the format of an uploaded file.
// The set is closed: ingestion refuses anything else before parsing.
type FileType string

const (
	// FileTypePDF is a PDF document.
	FileTypePDF FileType = "pdf"

	// FileTypeDOCX is a Word (OOXML) document.
	FileTypeDOCX FileType = "docx"

	// FileTypeText is a plain text file.
	FileTypeText FileType = "txt"

	// FileTypeMarkdown is a Markdown file.
	FileTypeMarkdown FileType = "md"

	// FileTypeEPUB is an EPUB e-book.
	FileTypeEPUB FileType = "epub"
)

// MaxFileSize is the upload size ceiling in bytes.
// Oversized files are rejected before any extraction work.
const MaxFileSize = 15 * 1024 * 1024

// DetectFileType maps a filename extension to a FileType.
// Returns ErrUnsupportedFileType for anything outside the supported set.
func DetectFileType(filename string) (FileType, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "pdf":
		return FileTypePDF, nil
	case "docx":
		return FileTypeDOCX, nil
	case "txt", "text":
		return FileTypeText, nil
	case "md", "markdown":
		return FileTypeMarkdown, nil
	case "epub":
		return FileTypeEPUB, nil
	default:
		return "", ErrUnsupportedFileType
	}
}

// Valid reports whether the file type is one of the supported formats.
func (t FileType) Valid() bool {
	switch t {
	case FileTypePDF, FileTypeDOCX, FileTypeText, FileTypeMarkdown, FileTypeEPUB:
		return true
	}
	return false
}

// RawFile is an uploaded file before extraction.
type RawFile struct {
	// Filename is the name the file was uploaded with.
	Filename string

	// Content is the raw file bytes.
	Content []byte

	// OwnerID identifies the uploading user.
	OwnerID string

	// ContentType is the declared MIME type, if any. Detection is
	// extension based; this is kept for metadata only.
	ContentType string
}

// Document represents one uploaded source in a user's knowledge base.
// It is the canonical representation after extraction and sanitisation.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// OwnerID identifies the user the document belongs to.
	// All reads are scoped by it; it never changes after creation.
	OwnerID string

	// Title is the human-readable title guessed during extraction.
	Title string

	// Content is the full sanitised text before chunking.
	Content string

	// FileType is the detected format of the original upload.
	FileType FileType

	// FileSize is the original upload size in bytes.
	FileSize int64

	// BlobURL points at the optionally persisted original file.
	// Empty when blob storage was unavailable or failed.
	BlobURL string

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any

	// CreatedAt is when ingestion completed.
	CreatedAt time.Time
}

// Chunk represents a retrievable passage within a document.
// Documents are split into chunks for embedding and ranking.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// Index is the zero-based position within the document.
	// Indices are contiguous from 0 in creation order.
	Index int

	// Content is the sanitised text of this chunk.
	Content string

	// Embedding is the vector representation. Empty when embedding
	// failed during ingestion; such chunks are skipped by ranking.
	Embedding []float32

	// Metadata carries originating page or section hints.
	Metadata map[string]any
}

// HasEmbedding reports whether the chunk carries a usable vector of the
// given dimensionality. A mismatched vector is structurally invalid and
// excluded from scoring, not treated as an error.
func (c *Chunk) HasEmbedding(dimensions int) bool {
	return len(c.Embedding) > 0 && len(c.Embedding) == dimensions
}
