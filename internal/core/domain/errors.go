package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFileType indicates an upload with an extension outside
	// the supported set. Raised before any parsing is attempted.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrFileTooLarge indicates an upload above the size ceiling.
	// Raised before the file reaches a parser.
	ErrFileTooLarge = errors.New("file too large")

	// ErrExtractionFailed indicates the parser could not decode the byte
	// stream. The document may be corrupted or password-protected.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrEmptyContent indicates decoding succeeded but produced no usable text.
	ErrEmptyContent = errors.New("no extractable content")

	// ErrEmbeddingTimeout indicates an embedding call exceeded its deadline.
	ErrEmbeddingTimeout = errors.New("embedding request timed out")

	// ErrEmbeddingProvider indicates the embedding provider returned an error.
	ErrEmbeddingProvider = errors.New("embedding provider error")

	// ErrUnauthenticated indicates the caller supplied no user identity.
	// All operations are refused without one.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrStorage indicates a knowledge store read or write failure.
	ErrStorage = errors.New("storage failure")
)
