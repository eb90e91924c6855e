// Package domain contains the core business entities and rules for the
// personal knowledge engine: documents, chunks, search types, and the
// error taxonomy. It has no dependencies on adapters or infrastructure.
package domain
