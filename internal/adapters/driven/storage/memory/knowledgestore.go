// Package memory provides an in-memory KnowledgeStore for tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/recall-labs/recall/internal/core/domain"
	"github.com/recall-labs/recall/internal/core/ports/driven"
)

// Ensure KnowledgeStore implements the interface.
var _ driven.KnowledgeStore = (*KnowledgeStore)(nil)

// KnowledgeStore is an in-memory implementation of driven.KnowledgeStore.
type KnowledgeStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	chunks    map[string][]domain.Chunk // keyed by document ID
}

// NewKnowledgeStore creates a new in-memory knowledge store.
func NewKnowledgeStore() *KnowledgeStore {
	return &KnowledgeStore{
		documents: make(map[string]domain.Document),
		chunks:    make(map[string][]domain.Chunk),
	}
}

// SaveDocument stores a document.
func (s *KnowledgeStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = *doc
	return nil
}

// SaveChunks stores chunks for a document.
func (s *KnowledgeStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	docID := chunks[0].DocumentID
	s.chunks[docID] = append(s.chunks[docID], chunks...)
	return nil
}

// SaveDocumentWithChunks stores a document and its chunks together.
func (s *KnowledgeStore) SaveDocumentWithChunks(_ context.Context, doc *domain.Document, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = *doc
	s.chunks[doc.ID] = chunks
	return nil
}

// GetDocument retrieves a document by ID.
func (s *KnowledgeStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// ChunksForOwner returns the user's chunks with provenance, ordered by
// document then position.
func (s *KnowledgeStore) ChunksForOwner(_ context.Context, ownerID string) ([]driven.ChunkRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var refs []driven.ChunkRef
	for docID, chunks := range s.chunks {
		doc, ok := s.documents[docID]
		if !ok || doc.OwnerID != ownerID {
			continue
		}
		for _, chunk := range chunks {
			refs = append(refs, driven.ChunkRef{
				Chunk:         chunk,
				DocumentTitle: doc.Title,
			})
		}
	}

	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Chunk.DocumentID != refs[j].Chunk.DocumentID {
			return refs[i].Chunk.DocumentID < refs[j].Chunk.DocumentID
		}
		return refs[i].Chunk.Index < refs[j].Chunk.Index
	})

	return refs, nil
}

// DocumentsForOwner returns the user's documents, newest first.
func (s *KnowledgeStore) DocumentsForOwner(_ context.Context, ownerID string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []domain.Document
	for id := range s.documents {
		doc := s.documents[id]
		if doc.OwnerID == ownerID {
			docs = append(docs, doc)
		}
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})

	return docs, nil
}

// DeleteDocument removes a document and its chunks.
func (s *KnowledgeStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, id)
	delete(s.chunks, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *KnowledgeStore) Close() error {
	return nil
}
