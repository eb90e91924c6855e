// Package api exposes the engine over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/recall-labs/recall/internal/core/domain"
	"github.com/recall-labs/recall/internal/core/ports/driving"
	"github.com/recall-labs/recall/internal/logger"
)

// Handler serves the knowledge base API.
type Handler struct {
	ingestion driving.IngestionService
	retrieval driving.RetrievalService
}

// NewHandler creates the API handler.
func NewHandler(ingestion driving.IngestionService, retrieval driving.RetrievalService) *Handler {
	return &Handler{
		ingestion: ingestion,
		retrieval: retrieval,
	}
}

// UploadDocument accepts a multipart upload under the "file" field and
// runs it through the ingestion pipeline.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	// One extra MiB so an oversized upload is rejected by the pipeline
	// with a clear error instead of a truncated read.
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxFileSize+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field: "+err.Error())
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading upload: "+err.Error())
		return
	}

	raw := &domain.RawFile{
		Filename:    header.Filename,
		Content:     content,
		OwnerID:     userID(r),
		ContentType: header.Header.Get("Content-Type"),
	}

	result, err := h.ingestion.Ingest(r.Context(), raw)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// searchRequest is the JSON body for POST /api/search.
type searchRequest struct {
	Query            string  `json:"query"`
	Limit            int     `json:"limit,omitempty"`
	MinSimilarity    float64 `json:"min_similarity,omitempty"`
	DynamicThreshold bool    `json:"dynamic_threshold,omitempty"`
}

// Search runs a semantic query over the caller's knowledge base.
// The response is always 200 with a well-formed body; execution
// failures are reported in its error field.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	opts := domain.SearchOptions{
		Limit:            req.Limit,
		MinSimilarity:    req.MinSimilarity,
		DynamicThreshold: req.DynamicThreshold,
	}

	resp := h.retrieval.Search(r.Context(), req.Query, userID(r), opts)
	writeJSON(w, http.StatusOK, resp)
}

// documentInfo is the list representation of a document. Full content
// is omitted from listings.
type documentInfo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	FileType  string `json:"file_type"`
	FileSize  int64  `json:"file_size"`
	CreatedAt string `json:"created_at"`
}

// ListDocuments returns the caller's documents, newest first.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.ingestion.Documents(r.Context(), userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	infos := make([]documentInfo, len(docs))
	for i := range docs {
		infos[i] = documentInfo{
			ID:        docs[i].ID,
			Title:     docs[i].Title,
			FileType:  string(docs[i].FileType),
			FileSize:  docs[i].FileSize,
			CreatedAt: docs[i].CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"documents": infos,
		"total":     len(infos),
	})
}

// DeleteDocument removes one of the caller's documents.
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "documentID")
	if docID == "" {
		writeError(w, http.StatusBadRequest, "missing document id")
		return
	}

	if err := h.ingestion.Delete(r.Context(), userID(r), docID); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeDomainError maps pipeline errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnsupportedFileType):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, domain.ErrFileTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrEmptyContent):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrExtractionFailed):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrEmbeddingTimeout), errors.Is(err, domain.ErrEmbeddingProvider):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed: %v", err)
	}
	writeError(w, status, err.Error())
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Encoding response: %v", err)
	}
}
