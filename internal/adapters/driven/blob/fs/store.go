// Package fs stores uploaded files on the local filesystem.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/recall-labs/recall/internal/core/domain"
	"github.com/recall-labs/recall/internal/core/ports/driven"
)

var _ driven.BlobStore = (*Store)(nil)

// Store writes original uploads under <dataDir>/blobs. URLs use the
// file:// scheme and point at the stored copy.
type Store struct {
	root string
}

// NewStore creates the blob directory under dataDir if needed.
func NewStore(dataDir string) (*Store, error) {
	root := filepath.Join(dataDir, "blobs")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating blob directory: %w", err)
	}
	return &Store{root: root}, nil
}

// Put writes the raw file and returns its file:// URL. The stored name
// is prefixed with a fresh ID so repeated uploads of the same filename
// never collide.
func (s *Store) Put(_ context.Context, raw *domain.RawFile) (string, error) {
	name := uuid.NewString() + "_" + filepath.Base(raw.Filename)
	path := filepath.Join(s.root, name)
	if err := os.WriteFile(path, raw.Content, 0o644); err != nil {
		return "", fmt.Errorf("writing blob: %w", err)
	}
	return "file://" + path, nil
}

// Delete removes a stored blob. A missing blob is not an error.
func (s *Store) Delete(_ context.Context, url string) error {
	path := strings.TrimPrefix(url, "file://")
	if path == "" || !strings.HasPrefix(path, s.root) {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing blob: %w", err)
	}
	return nil
}
