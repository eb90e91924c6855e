package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall/internal/core/domain"
)

func TestNew_Defaults(t *testing.T) {
	c := New()
	assert.Equal(t, DefaultChunkSize, c.ChunkSize())
	assert.Equal(t, DefaultOverlap, c.Overlap())
}

func TestNew_OverlapMustBeSmallerThanChunkSize(t *testing.T) {
	c := New(WithChunkSize(100), WithOverlap(150))
	assert.Equal(t, 25, c.Overlap())
}

func TestSplit_ShortContentYieldsOneChunk(t *testing.T) {
	c := New()
	doc := &domain.Document{ID: "d1", Content: "short text"}

	chunks := c.Split(doc)

	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0].Content)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, "d1", chunks[0].DocumentID)
}

func TestSplit_EmptyContentYieldsNothing(t *testing.T) {
	c := New()
	assert.Nil(t, c.Split(&domain.Document{ID: "d1"}))
	assert.Nil(t, c.Split(nil))
}

func TestSplit_IndicesAreContiguousFromZero(t *testing.T) {
	c := New(WithChunkSize(10), WithOverlap(2))
	doc := &domain.Document{ID: "d1", Content: strings.Repeat("x", 50)}

	chunks := c.Split(doc)

	require.NotEmpty(t, chunks)
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Index)
	}
}

func TestSplit_EveryRuneIsCovered(t *testing.T) {
	c := New(WithChunkSize(10), WithOverlap(3))
	content := "abcdefghijklmnopqrstuvwxyz0123456789"
	doc := &domain.Document{ID: "d1", Content: content}

	chunks := c.Split(doc)

	covered := make([]bool, len([]rune(content)))
	for _, chunk := range chunks {
		start := chunk.Metadata["char_start"].(int)
		end := chunk.Metadata["char_end"].(int)
		for i := start; i < end; i++ {
			covered[i] = true
		}
	}
	for i, ok := range covered {
		assert.True(t, ok, "rune %d not covered", i)
	}
}

func TestSplit_ConsecutiveChunksOverlap(t *testing.T) {
	c := New(WithChunkSize(10), WithOverlap(4))
	doc := &domain.Document{ID: "d1", Content: strings.Repeat("abcde", 10)}

	chunks := c.Split(doc)
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1].Content)
		curr := []rune(chunks[i].Content)
		tail := string(prev[len(prev)-4:])
		assert.True(t, strings.HasPrefix(string(curr), tail),
			"chunk %d does not start with the previous chunk's tail", i)
	}
}

func TestSplit_RuneBoundariesNotBytes(t *testing.T) {
	c := New(WithChunkSize(5), WithOverlap(1))
	doc := &domain.Document{ID: "d1", Content: strings.Repeat("日本語テキ", 4)}

	chunks := c.Split(doc)

	for _, chunk := range chunks {
		// Multi-byte runes must never be split mid-sequence.
		assert.True(t, len([]rune(chunk.Content)) <= 5)
		assert.NotContains(t, chunk.Content, "�")
	}
}

func TestSplit_Deterministic(t *testing.T) {
	c := New(WithChunkSize(12), WithOverlap(3))
	doc := &domain.Document{ID: "d1", Content: strings.Repeat("determinism ", 20)}

	first := c.Split(doc)
	second := c.Split(doc)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Content, second[i].Content)
		assert.Equal(t, first[i].Index, second[i].Index)
		assert.Equal(t, first[i].Metadata, second[i].Metadata)
	}
}

func TestSplit_LastChunkReachesEnd(t *testing.T) {
	c := New(WithChunkSize(10), WithOverlap(2))
	content := strings.Repeat("y", 23)
	doc := &domain.Document{ID: "d1", Content: content}

	chunks := c.Split(doc)

	last := chunks[len(chunks)-1]
	assert.Equal(t, len([]rune(content)), last.Metadata["char_end"])
	assert.True(t, strings.HasSuffix(content, last.Content))
}
