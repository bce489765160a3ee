package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"recall/internal/domain"
	"recall/internal/port"
)

var (
	bucketPoints = []byte("child_points")
	bucketMeta   = []byte("index_meta")
	keyDimension = []byte("dense_dimension")

	// ErrDimensionMismatch is returned when the embedder's output size no
	// longer matches the dimensionality the collection was created with.
	// The collection must be recreated to switch providers.
	ErrDimensionMismatch = errors.New("dense dimension mismatch with existing collection")
)

// BoltChildIndex is a hybrid searchable index over child chunks: one dense
// embedding plus one sparse term-weight vector per chunk, persisted in bbolt
// and mirrored in memory for brute-force search.
type BoltChildIndex struct {
	db          *bbolt.DB
	embedder    port.Embedder
	sparse      port.SparseEmbedder
	denseWeight float64

	mu        sync.RWMutex
	ready     bool
	dimension int
	points    map[string]childPoint
	order     []string // insertion order, the tie-break for equal scores
}

type childPoint struct {
	Dense    []float32           `json:"dense"`
	Sparse   domain.SparseVector `json:"sparse"`
	Content  string              `json:"content"`
	ParentID string              `json:"parent_id"`
	Source   string              `json:"source"`
}

// NewBoltChildIndex creates the index over an open bbolt handle.
// denseWeight is the dense share of the fused score; the sparse side gets
// the remainder.
func NewBoltChildIndex(db *bbolt.DB, embedder port.Embedder, sparse port.SparseEmbedder, denseWeight float64) *BoltChildIndex {
	if denseWeight < 0 || denseWeight > 1 {
		denseWeight = 0.5
	}
	return &BoltChildIndex{
		db:          db,
		embedder:    embedder,
		sparse:      sparse,
		denseWeight: denseWeight,
		points:      make(map[string]childPoint),
	}
}

// EnsureReady idempotently creates the collection buckets and fixes the
// dense dimensionality from one probe call to the embedder. Reopening with
// an embedder of a different output size fails with ErrDimensionMismatch.
func (x *BoltChildIndex) EnsureReady() error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.ready {
		return nil
	}

	if err := x.db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketPoints, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	probe, err := x.embedder.Embed([]string{"test"})
	if err != nil {
		return fmt.Errorf("failed to probe embedding dimension: %w", err)
	}
	if len(probe) == 0 || len(probe[0]) == 0 {
		return fmt.Errorf("embedder returned an empty probe vector")
	}
	dim := len(probe[0])

	err = x.db.Update(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(bucketMeta)
		if stored := meta.Get(keyDimension); stored != nil {
			storedDim := int(binary.BigEndian.Uint32(stored))
			if storedDim != dim {
				return fmt.Errorf("%w: collection has %d, embedder produces %d",
					ErrDimensionMismatch, storedDim, dim)
			}
			return nil
		}
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, uint32(dim))
		return meta.Put(keyDimension, buf)
	})
	if err != nil {
		return err
	}

	x.dimension = dim
	if err := x.loadPoints(); err != nil {
		return fmt.Errorf("failed to load child points: %w", err)
	}

	x.ready = true
	return nil
}

// loadPoints mirrors all persisted points into memory. Caller holds the lock.
func (x *BoltChildIndex) loadPoints() error {
	x.points = make(map[string]childPoint)
	x.order = nil

	return x.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPoints).ForEach(func(k, v []byte) error {
			var p childPoint
			if err := json.Unmarshal(v, &p); err != nil {
				return nil // skip corrupted entries
			}
			id := string(k)
			x.points[id] = p
			x.order = append(x.order, id)
			return nil
		})
	})
}

// Add embeds and upserts all given child chunks in one transaction. The
// caller is responsible for not double-indexing; every run re-indexes the
// full population.
func (x *BoltChildIndex) Add(children []domain.ChildChunk) error {
	if len(children) == 0 {
		return nil
	}
	if err := x.EnsureReady(); err != nil {
		return err
	}

	texts := make([]string, len(children))
	for i, c := range children {
		texts[i] = c.Content
	}
	dense, err := x.embedder.Embed(texts)
	if err != nil {
		return fmt.Errorf("failed to embed child chunks: %w", err)
	}
	if len(dense) != len(children) {
		return fmt.Errorf("embedder returned %d vectors for %d chunks", len(dense), len(children))
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	type staged struct {
		id    string
		point childPoint
	}
	batch := make([]staged, len(children))
	for i, c := range children {
		if len(dense[i]) != x.dimension {
			return fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, x.dimension, len(dense[i]))
		}
		batch[i] = staged{
			id: uuid.NewString(),
			point: childPoint{
				Dense:    dense[i],
				Sparse:   x.sparse.EncodeDocument(c.Content),
				Content:  c.Content,
				ParentID: c.ParentID,
				Source:   c.Source,
			},
		}
	}

	err = x.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketPoints)
		for _, s := range batch {
			data, err := json.Marshal(s.point)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(s.id), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to upsert child chunks: %w", err)
	}

	for _, s := range batch {
		x.points[s.id] = s.point
		x.order = append(x.order, s.id)
	}
	return nil
}

// Search returns up to k chunks ranked by the fused dense+sparse score,
// excluding results below scoreThreshold. Ties keep insertion order.
func (x *BoltChildIndex) Search(query string, k int, scoreThreshold float64) ([]domain.ScoredChild, error) {
	if err := x.EnsureReady(); err != nil {
		return nil, err
	}

	dense, err := x.embedder.Embed([]string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(dense) == 0 {
		return nil, nil
	}
	queryDense := dense[0]
	querySparse := x.sparse.EncodeQuery(query)

	x.mu.RLock()
	defer x.mu.RUnlock()

	if len(queryDense) != x.dimension {
		return nil, fmt.Errorf("%w: query has %d, collection has %d",
			ErrDimensionMismatch, len(queryDense), x.dimension)
	}

	results := make([]domain.ScoredChild, 0, len(x.order))
	for _, id := range x.order {
		p := x.points[id]
		score := x.denseWeight*cosineDense(queryDense, p.Dense) +
			(1-x.denseWeight)*cosineSparse(querySparse, p.Sparse)
		if score < scoreThreshold {
			continue
		}
		results = append(results, domain.ScoredChild{
			Content:  p.Content,
			ParentID: p.ParentID,
			Source:   p.Source,
			Score:    score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Count returns the number of indexed child chunks.
func (x *BoltChildIndex) Count() (int, error) {
	if err := x.EnsureReady(); err != nil {
		return 0, err
	}
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.points), nil
}

func cosineDense(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func cosineSparse(a, b domain.SparseVector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for term, wa := range a {
		normA += float64(wa) * float64(wa)
		if wb, ok := b[term]; ok {
			dot += float64(wa) * float64(wb)
		}
	}
	for _, wb := range b {
		normB += float64(wb) * float64(wb)
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
