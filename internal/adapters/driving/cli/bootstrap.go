package cli

import (
	"context"
	"fmt"

	"github.com/recall-labs/recall/internal/adapters/driven/ai"
	"github.com/recall-labs/recall/internal/adapters/driven/blob/fs"
	"github.com/recall-labs/recall/internal/adapters/driven/config/file"
	"github.com/recall-labs/recall/internal/adapters/driven/storage/sqlite"
	"github.com/recall-labs/recall/internal/chunker"
	"github.com/recall-labs/recall/internal/core/services"
	"github.com/recall-labs/recall/internal/extractors"
	"github.com/recall-labs/recall/internal/logger"
)

var (
	cfg     *file.Config
	cleanup []func() error
)

// initServices wires the full engine: config, store, embedder, blob
// store and the two core services. Tests preset the service vars and
// skip this entirely.
func initServices(ctx context.Context) error {
	if ingestionService != nil && retrievalService != nil {
		return nil
	}

	var err error
	cfg, err = file.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("Data directory: %s", cfg.DataDir)

	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening knowledge store: %w", err)
	}
	cleanup = append(cleanup, store.Close)

	embedder, err := ai.CreateAndValidateEmbeddingService(ctx, cfg.Embedding)
	if err != nil {
		return fmt.Errorf("creating embedding service: %w", err)
	}
	cleanup = append(cleanup, embedder.Close)
	logger.Info("Embedding provider: %s (%s, %d dims)",
		cfg.Embedding.Provider, embedder.ModelName(), embedder.Dimensions())

	blobs, err := fs.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("creating blob store: %w", err)
	}

	ch := chunker.New(
		chunker.WithChunkSize(cfg.Chunking.Size),
		chunker.WithOverlap(cfg.Chunking.Overlap),
	)

	ingestionService = services.NewIngestion(
		extractors.NewDefaultRegistry(), ch, embedder, store,
		services.WithBlobStore(blobs),
		services.WithEmbedConcurrency(cfg.Embedding.Concurrency),
		services.WithRateLimit(cfg.Embedding.RequestsPerSecond, cfg.Embedding.Burst),
	)

	ranker := services.NewRanker(cfg.Search.RelevanceBands())
	retrievalService = services.NewRetrieval(embedder, store, ranker)

	return nil
}

// shutdownServices releases resources acquired by initServices.
func shutdownServices() {
	for i := len(cleanup) - 1; i >= 0; i-- {
		if err := cleanup[i](); err != nil {
			logger.Warn("Cleanup failed: %v", err)
		}
	}
	cleanup = nil
}
