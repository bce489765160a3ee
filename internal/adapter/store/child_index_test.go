package store

import (
	"errors"
	"path/filepath"
	"testing"

	"go.etcd.io/bbolt"

	"recall/internal/adapter/analyzer"
	"recall/internal/adapter/embedding"
	"recall/internal/domain"
)

func openTestDB(t *testing.T) *bbolt.DB {
	t.Helper()
	db, err := bbolt.Open(filepath.Join(t.TempDir(), "index.db"), 0600, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestIndex(t *testing.T, db *bbolt.DB) *BoltChildIndex {
	t.Helper()
	sparse := embedding.NewBM25SparseEncoder(analyzer.NewTokenizer())
	return NewBoltChildIndex(db, embedding.NewMockEmbedder(32), sparse, 0.5)
}

func TestEnsureReadyIdempotent(t *testing.T) {
	idx := newTestIndex(t, openTestDB(t))

	if err := idx.EnsureReady(); err != nil {
		t.Fatal(err)
	}
	if err := idx.EnsureReady(); err != nil {
		t.Fatalf("second EnsureReady must be a no-op: %v", err)
	}
	if idx.dimension != 32 {
		t.Errorf("expected probed dimension 32, got %d", idx.dimension)
	}
}

func TestEnsureReadyDimensionMismatch(t *testing.T) {
	db := openTestDB(t)

	idx := newTestIndex(t, db)
	if err := idx.EnsureReady(); err != nil {
		t.Fatal(err)
	}

	// Reopen the same collection with a different embedding size.
	sparse := embedding.NewBM25SparseEncoder(analyzer.NewTokenizer())
	other := NewBoltChildIndex(db, embedding.NewMockEmbedder(64), sparse, 0.5)
	err := other.EnsureReady()
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestAddAndSearch(t *testing.T) {
	idx := newTestIndex(t, openTestDB(t))

	children := []domain.ChildChunk{
		{Content: "the quarterly budget was approved", ParentID: "fin_parent_0", Source: "fin.pdf"},
		{Content: "attention mechanism in transformers", ParentID: "ml_parent_0", Source: "ml.pdf"},
		{Content: "team offsite scheduling discussion", ParentID: "ops_parent_0", Source: "ops.pdf"},
	}
	if err := idx.Add(children); err != nil {
		t.Fatal(err)
	}

	n, err := idx.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("expected 3 points, got %d", n)
	}

	results, err := idx.Search("the quarterly budget was approved", 2, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if results[0].ParentID != "fin_parent_0" {
		t.Errorf("expected exact match first, got %s (score %f)", results[0].ParentID, results[0].Score)
	}
	if results[0].Score <= results[len(results)-1].Score && len(results) > 1 {
		t.Error("results must be ordered by descending score")
	}
}

func TestSearchThresholdFiltersLowScores(t *testing.T) {
	idx := newTestIndex(t, openTestDB(t))

	if err := idx.Add([]domain.ChildChunk{
		{Content: "completely unrelated gibberish zzz", ParentID: "p0", Source: "a.pdf"},
	}); err != nil {
		t.Fatal(err)
	}

	// An identical query scores ~1.0; the threshold keeps it.
	hits, err := idx.Search("completely unrelated gibberish zzz", 5, 0.9)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Errorf("expected the exact match to pass the threshold, got %d", len(hits))
	}

	// An impossible threshold filters everything.
	none, err := idx.Search("completely unrelated gibberish zzz", 5, 1.1)
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("expected no results above threshold 1.1, got %d", len(none))
	}
}

func TestSearchRespectsK(t *testing.T) {
	idx := newTestIndex(t, openTestDB(t))

	var children []domain.ChildChunk
	for i := 0; i < 10; i++ {
		children = append(children, domain.ChildChunk{
			Content:  "meeting notes about planning",
			ParentID: "p",
			Source:   "s.pdf",
		})
	}
	if err := idx.Add(children); err != nil {
		t.Fatal(err)
	}

	results, err := idx.Search("planning", 3, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Errorf("expected k=3 results, got %d", len(results))
	}
}

func TestAddPersistsAcrossReopen(t *testing.T) {
	db := openTestDB(t)

	idx := newTestIndex(t, db)
	if err := idx.Add([]domain.ChildChunk{
		{Content: "durable entry", ParentID: "p0", Source: "d.pdf"},
	}); err != nil {
		t.Fatal(err)
	}

	reopened := newTestIndex(t, db)
	n, err := reopened.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected the point to survive reopen, got %d", n)
	}
}

func TestSearchFailingEmbedder(t *testing.T) {
	db := openTestDB(t)
	sparse := embedding.NewBM25SparseEncoder(analyzer.NewTokenizer())
	idx := NewBoltChildIndex(db, embedding.NewFailingMockEmbedder(), sparse, 0.5)

	if _, err := idx.Search("anything", 5, 0.0); err == nil {
		t.Error("expected error from failing embedder")
	}
}

func TestAddEmptyBatch(t *testing.T) {
	idx := newTestIndex(t, openTestDB(t))

	if err := idx.Add(nil); err != nil {
		t.Errorf("empty batch must be a no-op: %v", err)
	}
}
