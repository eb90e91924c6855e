package mcp

import (
	"github.com/recall-labs/recall/internal/core/ports/driving"
)

// DefaultOwner identifies the local user when no owner is configured.
// The MCP transport carries no authentication of its own; a server
// started from the CLI serves exactly one user's knowledge base.
const DefaultOwner = "local"

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval answers semantic queries.
	Retrieval driving.RetrievalService

	// Ingestion accepts uploads and manages documents.
	Ingestion driving.IngestionService

	// Owner is the user whose knowledge base this server exposes.
	// Defaults to DefaultOwner.
	Owner string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	// Ingestion is optional; without it the server is read-only.
	return nil
}

// owner returns the configured owner or the default.
func (p *Ports) owner() string {
	if p.Owner == "" {
		return DefaultOwner
	}
	return p.Owner
}
