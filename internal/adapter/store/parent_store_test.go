package store

import (
	"os"
	"path/filepath"
	"testing"

	"recall/internal/domain"
)

func newTestParentStore(t *testing.T) *JSONParentStore {
	t.Helper()
	s, err := NewJSONParentStore(filepath.Join(t.TempDir(), "parent_store"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestPutAndGetMany(t *testing.T) {
	s := newTestParentStore(t)

	parent := domain.ParentChunk{
		ParentID: "alpha_parent_0",
		Content:  "full parent content",
		Metadata: map[string]string{"source": "alpha.pdf", "parent_id": "alpha_parent_0"},
	}
	if err := s.Put(parent); err != nil {
		t.Fatal(err)
	}

	records, err := s.GetMany([]string{"alpha_parent_0"})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Content != "full parent content" {
		t.Errorf("unexpected content %q", records[0].Content)
	}
	if records[0].Metadata["source"] != "alpha.pdf" {
		t.Errorf("unexpected metadata %v", records[0].Metadata)
	}
}

func TestGetManyMissingIDsSkipped(t *testing.T) {
	s := newTestParentStore(t)

	if err := s.Put(domain.ParentChunk{ParentID: "x_parent_0", Content: "x"}); err != nil {
		t.Fatal(err)
	}

	records, err := s.GetMany([]string{"x_parent_0", "missing_parent_9"})
	if err != nil {
		t.Fatalf("missing IDs must not error: %v", err)
	}
	if len(records) != 1 || records[0].ParentID != "x_parent_0" {
		t.Errorf("expected only the existing record, got %v", records)
	}
}

func TestGetManyDedupesAndSorts(t *testing.T) {
	s := newTestParentStore(t)

	for _, id := range []string{"b_parent_0", "a_parent_0"} {
		if err := s.Put(domain.ParentChunk{ParentID: id, Content: id}); err != nil {
			t.Fatal(err)
		}
	}

	records, err := s.GetMany([]string{"b_parent_0", "a_parent_0", "b_parent_0", "b_parent_0"})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records after dedup, got %d", len(records))
	}
	if records[0].ParentID != "a_parent_0" || records[1].ParentID != "b_parent_0" {
		t.Errorf("expected sorted order, got %v", records)
	}
}

func TestGetManyToleratesJSONSuffix(t *testing.T) {
	s := newTestParentStore(t)

	if err := s.Put(domain.ParentChunk{ParentID: "doc_parent_3", Content: "c"}); err != nil {
		t.Fatal(err)
	}

	records, err := s.GetMany([]string{"doc_parent_3.json"})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected the .json-suffixed ID to resolve, got %d records", len(records))
	}
}

func TestClearRemovesEverything(t *testing.T) {
	s := newTestParentStore(t)

	for _, id := range []string{"a_parent_0", "a_parent_1", "b_parent_0"} {
		if err := s.Put(domain.ParentChunk{ParentID: id, Content: id}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}

	n, err := s.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("expected empty store after clear, got %d entries", n)
	}
}

func TestGetManySkipsCorruptEntry(t *testing.T) {
	s := newTestParentStore(t)

	if err := s.Put(domain.ParentChunk{ParentID: "ok_parent_0", Content: "fine"}); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, "bad_parent_0.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	records, err := s.GetMany([]string{"ok_parent_0", "bad_parent_0"})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ParentID != "ok_parent_0" {
		t.Errorf("corrupt entry must be skipped, got %v", records)
	}
}

func TestPutRejectsEmptyID(t *testing.T) {
	s := newTestParentStore(t)

	if err := s.Put(domain.ParentChunk{Content: "no id"}); err == nil {
		t.Error("expected error for empty parent ID")
	}
}
