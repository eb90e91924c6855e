package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall/internal/core/domain"
)

func doc(id, owner, title string, created time.Time) *domain.Document {
	return &domain.Document{ID: id, OwnerID: owner, Title: title, Content: "text", CreatedAt: created}
}

func chunk(docID string, index int) domain.Chunk {
	return domain.Chunk{
		ID:         docID + "-c" + string(rune('0'+index)),
		DocumentID: docID,
		Index:      index,
		Content:    "chunk",
		Embedding:  []float32{1, 0},
	}
}

func TestSaveAndGetDocument(t *testing.T) {
	s := NewKnowledgeStore()
	ctx := context.Background()

	require.NoError(t, s.SaveDocument(ctx, doc("d1", "alice", "One", time.Now())))

	got, err := s.GetDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "One", got.Title)

	_, err = s.GetDocument(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChunksForOwner_ScopedAndOrdered(t *testing.T) {
	s := NewKnowledgeStore()
	ctx := context.Background()

	require.NoError(t, s.SaveDocumentWithChunks(ctx, doc("d2", "alice", "Second", time.Now()),
		[]domain.Chunk{chunk("d2", 1), chunk("d2", 0)}))
	require.NoError(t, s.SaveDocumentWithChunks(ctx, doc("d1", "alice", "First", time.Now()),
		[]domain.Chunk{chunk("d1", 0)}))
	require.NoError(t, s.SaveDocumentWithChunks(ctx, doc("d3", "bob", "Other", time.Now()),
		[]domain.Chunk{chunk("d3", 0)}))

	refs, err := s.ChunksForOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, refs, 3)

	assert.Equal(t, "d1", refs[0].Chunk.DocumentID)
	assert.Equal(t, "First", refs[0].DocumentTitle)
	assert.Equal(t, "d2", refs[1].Chunk.DocumentID)
	assert.Equal(t, 0, refs[1].Chunk.Index)
	assert.Equal(t, 1, refs[2].Chunk.Index)
}

func TestDocumentsForOwner_NewestFirst(t *testing.T) {
	s := NewKnowledgeStore()
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, s.SaveDocument(ctx, doc("old", "alice", "Old", base.Add(-time.Hour))))
	require.NoError(t, s.SaveDocument(ctx, doc("new", "alice", "New", base)))

	docs, err := s.DocumentsForOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "new", docs[0].ID)
	assert.Equal(t, "old", docs[1].ID)
}

func TestDeleteDocument_RemovesChunks(t *testing.T) {
	s := NewKnowledgeStore()
	ctx := context.Background()

	require.NoError(t, s.SaveDocumentWithChunks(ctx, doc("d1", "alice", "Doc", time.Now()),
		[]domain.Chunk{chunk("d1", 0), chunk("d1", 1)}))

	require.NoError(t, s.DeleteDocument(ctx, "d1"))

	_, err := s.GetDocument(ctx, "d1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	refs, err := s.ChunksForOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, refs)
}
