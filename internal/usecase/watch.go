package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reindexes the knowledge base whenever new PDFs appear in the
// docs directory. Events are debounced so a batch of dropped files
// triggers a single conversion and indexing run.
type Watcher struct {
	converter *Converter
	indexer   *Indexer
	debounce  time.Duration

	// OnRun receives the outcome of each triggered run.
	OnRun func(*ConvertResult, *IndexResult, error)
}

func NewWatcher(converter *Converter, indexer *Indexer, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	return &Watcher{converter: converter, indexer: indexer, debounce: debounce}
}

// Watch blocks until ctx is cancelled, rebuilding the index after each
// burst of PDF writes in docsDir. markdownDir receives the converted
// files and is the directory the indexer reads.
func (w *Watcher) Watch(ctx context.Context, docsDir, markdownDir string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(docsDir); err != nil {
		return fmt.Errorf("watch %s: %w", docsDir, err)
	}

	// An inert timer until the first event arrives.
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".pdf") {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			if w.OnRun != nil {
				w.OnRun(nil, nil, fmt.Errorf("watch error: %w", err))
			}

		case <-timer.C:
			cres, ires, err := w.run(docsDir, markdownDir)
			if w.OnRun != nil {
				w.OnRun(cres, ires, err)
			}
		}
	}
}

func (w *Watcher) run(docsDir, markdownDir string) (*ConvertResult, *IndexResult, error) {
	cres, err := w.converter.Run(docsDir, markdownDir)
	if err != nil {
		return nil, nil, err
	}
	ires, err := w.indexer.Run(markdownDir)
	if err != nil {
		return cres, nil, err
	}
	return cres, ires, nil
}
