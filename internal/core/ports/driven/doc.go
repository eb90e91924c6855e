// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): extraction, embedding, persistence, and
// blob storage.
package driven
