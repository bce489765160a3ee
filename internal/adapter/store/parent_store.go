package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"recall/internal/domain"
)

// JSONParentStore persists parent chunks as one {parent_id}.json file each,
// shaped {"page_content": ..., "metadata": ...}. The whole directory is
// wiped and rewritten on every indexing run.
type JSONParentStore struct {
	dir string
}

type parentFile struct {
	PageContent string            `json:"page_content"`
	Metadata    map[string]string `json:"metadata"`
}

// NewJSONParentStore creates the store, ensuring its directory exists.
func NewJSONParentStore(dir string) (*JSONParentStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create parent store dir: %w", err)
	}
	return &JSONParentStore{dir: dir}, nil
}

// Clear deletes every persisted entry.
func (s *JSONParentStore) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read parent store dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return fmt.Errorf("failed to remove %s: %w", e.Name(), err)
		}
	}
	return nil
}

// Put writes or overwrites one entry.
func (s *JSONParentStore) Put(parent domain.ParentChunk) error {
	if parent.ParentID == "" {
		return fmt.Errorf("parent chunk has no ID")
	}

	data, err := json.MarshalIndent(parentFile{
		PageContent: parent.Content,
		Metadata:    parent.Metadata,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal parent %s: %w", parent.ParentID, err)
	}

	path := filepath.Join(s.dir, parent.ParentID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write parent %s: %w", parent.ParentID, err)
	}
	return nil
}

// GetMany looks up each ID after deduplicating and sorting the input, so
// batch retrieval is idempotent regardless of caller-supplied ordering or
// duplicates. Missing or unreadable entries are skipped, never an error.
// A supplied ".json" suffix on an ID is tolerated.
func (s *JSONParentStore) GetMany(parentIDs []string) ([]domain.ParentRecord, error) {
	unique := make(map[string]struct{}, len(parentIDs))
	for _, id := range parentIDs {
		if id != "" {
			unique[id] = struct{}{}
		}
	}

	ids := make([]string, 0, len(unique))
	for id := range unique {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var records []domain.ParentRecord
	for _, id := range ids {
		name := id
		if !strings.HasSuffix(strings.ToLower(name), ".json") {
			name += ".json"
		}

		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		var pf parentFile
		if err := json.Unmarshal(data, &pf); err != nil {
			continue
		}
		records = append(records, domain.ParentRecord{
			Content:  pf.PageContent,
			ParentID: id,
			Metadata: pf.Metadata,
		})
	}

	return records, nil
}

// Count returns the number of persisted parent entries.
func (s *JSONParentStore) Count() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			n++
		}
	}
	return n, nil
}
