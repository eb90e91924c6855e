package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall/internal/core/domain"
)

func TestDocumentsListCmd(t *testing.T) {
	cleanup := setupTestServices(&mockRetrieval{}, &mockCLIIngestion{docs: []domain.Document{
		{ID: "d1", Title: "Physics Notes", FileType: domain.FileTypePDF, FileSize: 2048},
	}})
	defer cleanup()

	out, err := execute(t, "documents", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "d1")
	assert.Contains(t, out, "Physics Notes")
	assert.Contains(t, out, "pdf")
}

func TestDocumentsListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices(&mockRetrieval{}, &mockCLIIngestion{})
	defer cleanup()

	out, err := execute(t, "documents", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents")
}

func TestDocumentsDeleteCmd(t *testing.T) {
	cleanup := setupTestServices(&mockRetrieval{}, &mockCLIIngestion{})
	defer cleanup()

	out, err := execute(t, "documents", "delete", "d1")

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted d1")
}

func TestDocumentsDeleteCmd_NotFound(t *testing.T) {
	cleanup := setupTestServices(&mockRetrieval{}, &mockCLIIngestion{err: domain.ErrNotFound})
	defer cleanup()

	_, err := execute(t, "documents", "delete", "ghost")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "recall version")
}
