// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Recall. It lets AI assistants search and grow a user's personal
// knowledge base.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")
