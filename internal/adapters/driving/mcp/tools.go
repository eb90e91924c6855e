package mcp

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/recall-labs/recall/internal/core/domain"
)

// SearchInput is the input schema for the knowledge search tool.
type SearchInput struct {
	Query            string  `json:"query" jsonschema:"the question or topic to search the knowledge base for"`
	Limit            int     `json:"limit,omitempty" jsonschema:"maximum number of passages to return (1-10, default 5)"`
	MinSimilarity    float64 `json:"min_similarity,omitempty" jsonschema:"similarity cutoff between 0 and 1 (default 0.4)"`
	DynamicThreshold bool    `json:"dynamic_threshold,omitempty" jsonschema:"adjust the cutoff by query length"`
}

// UploadInput is the input schema for the document upload tool.
type UploadInput struct {
	Filename string `json:"filename" jsonschema:"original filename including extension (pdf, docx, txt, md, epub)"`
	Content  string `json:"content" jsonschema:"base64-encoded file content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "knowledge_search",
		Description: "Search the user's personal knowledge base for passages relevant to a query",
	}, s.handleSearch)

	if s.ports.Ingestion != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "upload_document",
			Description: "Add a document to the user's personal knowledge base",
		}, s.handleUpload)
	}
}

// handleSearch handles the knowledge search tool invocation. The
// response is always well-formed; execution failures are reported in
// its Error field rather than as a tool error, so the assistant can
// relay them conversationally.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, domain.SearchResponse, error) {
	opts := domain.SearchOptions{
		Limit:            input.Limit,
		MinSimilarity:    input.MinSimilarity,
		DynamicThreshold: input.DynamicThreshold,
	}

	resp := s.ports.Retrieval.Search(ctx, input.Query, s.ports.owner(), opts)
	return nil, *resp, nil
}

// handleUpload handles the document upload tool invocation.
func (s *Server) handleUpload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadInput,
) (*mcp.CallToolResult, domain.IngestResult, error) {
	content, err := base64.StdEncoding.DecodeString(input.Content)
	if err != nil {
		return nil, domain.IngestResult{}, fmt.Errorf("decoding content: %w", err)
	}

	raw := &domain.RawFile{
		Filename: input.Filename,
		Content:  content,
		OwnerID:  s.ports.owner(),
	}

	result, err := s.ports.Ingestion.Ingest(ctx, raw)
	if err != nil {
		return nil, domain.IngestResult{}, err
	}

	return nil, *result, nil
}
