// Package usecase wires the splitting, storage and retrieval adapters
// into the operations exposed by the CLI.
package usecase

import (
	"fmt"
	"sort"
	"sync"

	"recall/internal/adapter/fs"
	"recall/internal/adapter/splitter"
	"recall/internal/domain"
	"recall/internal/port"
)

// IndexResult summarizes one indexing run.
type IndexResult struct {
	Docs     int
	Parents  int
	Children int
	Warnings []string
}

// Indexer rebuilds the parent store and child index from a directory of
// markdown documents. Runs are serialized; the parent store is cleared
// only after the child index accepted the new batch, so a failed run
// leaves the previous parent store intact.
type Indexer struct {
	mu       sync.Mutex
	walker   *fs.Walker
	splitter *splitter.ParentSplitter
	parents  port.ParentStore
	children port.ChildIndex

	// Progress, when set, is called once per processed document.
	Progress func(done, total int)
}

func NewIndexer(sp *splitter.ParentSplitter, parents port.ParentStore, children port.ChildIndex) *Indexer {
	return &Indexer{
		walker:   fs.NewWalker("**/*.md"),
		splitter: sp,
		parents:  parents,
		children: children,
	}
}

// Run indexes every markdown file under dir. Documents that cannot be
// read are reported as warnings and skipped. When no document yields
// any child chunk the stores are left untouched.
func (ix *Indexer) Run(dir string) (*IndexResult, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	files, err := ix.walker.Walk(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(files)

	result := &IndexResult{}
	var allParents []domain.ParentChunk
	var allChildren []domain.ChildChunk

	for i, path := range files {
		text, err := fs.ReadFile(path)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("skipping %s: %v", path, err))
			continue
		}

		parents, children := ix.splitter.SplitDocument(fs.Stem(path), text)
		allParents = append(allParents, parents...)
		allChildren = append(allChildren, children...)
		result.Docs++

		if ix.Progress != nil {
			ix.Progress(i+1, len(files))
		}
	}

	if len(allChildren) == 0 {
		return result, nil
	}

	// Child index first. If embedding or storage fails here the old
	// parent store still matches the old index.
	if err := ix.children.EnsureReady(); err != nil {
		return nil, fmt.Errorf("prepare child index: %w", err)
	}
	if err := ix.children.Add(allChildren); err != nil {
		return nil, fmt.Errorf("index child chunks: %w", err)
	}

	if err := ix.parents.Clear(); err != nil {
		return nil, fmt.Errorf("clear parent store: %w", err)
	}
	for _, parent := range allParents {
		if err := ix.parents.Put(parent); err != nil {
			return nil, fmt.Errorf("store parent %s: %w", parent.ParentID, err)
		}
	}

	result.Parents = len(allParents)
	result.Children = len(allChildren)
	return result, nil
}
