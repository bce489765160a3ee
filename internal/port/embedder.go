package port

import "recall/internal/domain"

// Embedder generates dense vector embeddings for text.
type Embedder interface {
	// Embed generates embeddings for the given texts.
	// Returns a slice of vectors, one per input text.
	Embed(texts []string) ([][]float32, error)

	// ModelName returns the name of the embedding model.
	ModelName() string
}

// SparseEmbedder generates sparse lexical term-weight vectors. Document and
// query sides are encoded differently, mirroring BM25-style retrieval.
type SparseEmbedder interface {
	EncodeDocument(text string) domain.SparseVector
	EncodeQuery(text string) domain.SparseVector
}
