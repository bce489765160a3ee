package port

import "recall/internal/domain"

// ParentStore is a durable mapping from parent_id to parent chunk content
// and metadata. It is rebuilt wholesale on each indexing run.
type ParentStore interface {
	// Clear deletes all persisted entries.
	Clear() error

	// Put writes or overwrites one entry.
	Put(parent domain.ParentChunk) error

	// GetMany looks up each ID after deduplicating and sorting the input.
	// IDs with no match are silently skipped, never an error.
	GetMany(parentIDs []string) ([]domain.ParentRecord, error)
}

// ChildIndex is a hybrid (dense + sparse) searchable index over child chunks.
type ChildIndex interface {
	// EnsureReady idempotently creates the underlying collection, fixing the
	// dense dimensionality from one probe call to the embedder.
	EnsureReady() error

	// Add embeds and upserts all given child chunks. No dedup at this layer.
	Add(children []domain.ChildChunk) error

	// Search returns up to k chunks ranked by fused dense+sparse similarity,
	// excluding results scoring below scoreThreshold.
	Search(query string, k int, scoreThreshold float64) ([]domain.ScoredChild, error)

	// Count returns the number of indexed child chunks.
	Count() (int, error)
}
