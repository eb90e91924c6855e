package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// The engine is agnostic to the provider behind it; only the vector
// dimensionality must stay consistent within one deployment.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
//   - Gemini (text-embedding-004)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts, preserving
	// input order one-to-one. More efficient than calling Embed in a
	// loop for providers with a batch API.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 768, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the provider is reachable with a lightweight
	// request. Used at startup before accepting work.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
