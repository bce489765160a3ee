package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
	"recall/config"
	"recall/internal/adapter/analyzer"
	"recall/internal/adapter/embedding"
	"recall/internal/adapter/splitter"
	"recall/internal/adapter/store"
	"recall/internal/port"
)

// newEmbedder builds the dense embedder selected by the config.
func newEmbedder(cfg *config.Config) (port.Embedder, error) {
	e := cfg.Embedding
	switch e.Provider {
	case "openai":
		if e.BaseURL != "" {
			return embedding.NewOpenAICompatibleEmbedder(e.APIKeyEnv, e.Model, e.BaseURL)
		}
		return embedding.NewOpenAIEmbedder(e.APIKeyEnv, e.Model)
	case "ollama":
		return embedding.NewOllamaEmbedder(e.Model, e.BaseURL)
	case "mock":
		return embedding.NewMockEmbedder(e.Dimension), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", e.Provider)
	}
}

// openChildIndex opens the hybrid child index, creating the database
// file and its directory as needed. The caller must close the returned
// database.
func openChildIndex(cfg *config.Config, root string) (*store.BoltChildIndex, *bbolt.DB, error) {
	embedder, err := newEmbedder(cfg)
	if err != nil {
		return nil, nil, err
	}

	dbPath := config.Resolve(root, cfg.Paths.IndexDB)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("create index directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("open index: %w", err)
	}

	sparse := embedding.NewBM25SparseEncoder(analyzer.NewTokenizer())
	index := store.NewBoltChildIndex(db, embedder, sparse, cfg.Search.DenseWeight)
	return index, db, nil
}

func openParentStore(cfg *config.Config, root string) (*store.JSONParentStore, error) {
	return store.NewJSONParentStore(config.Resolve(root, cfg.Paths.ParentStore))
}

func newSplitter(cfg *config.Config) *splitter.ParentSplitter {
	s := cfg.Split
	return splitter.NewParentSplitter(s.MinParentSize, s.MaxParentSize, s.ChildSize, s.ChildOverlap)
}
