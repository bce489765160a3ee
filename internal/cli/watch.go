package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"recall/config"
	"recall/internal/usecase"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the docs directory and reindex on new PDFs",
	Long: `Watch the docs directory for new or updated PDF files. Each burst of
changes triggers one conversion and indexing run after a short debounce.
Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	root := GetRootDir()

	docsDir := config.Resolve(root, cfg.Paths.DocsDir)
	markdownDir := config.Resolve(root, cfg.Paths.MarkdownDir)

	if err := os.MkdirAll(docsDir, 0755); err != nil {
		return fmt.Errorf("create docs directory: %w", err)
	}

	parents, err := openParentStore(cfg, root)
	if err != nil {
		return fmt.Errorf("open parent store: %w", err)
	}
	index, db, err := openChildIndex(cfg, root)
	if err != nil {
		return err
	}
	defer db.Close()

	indexer := usecase.NewIndexer(newSplitter(cfg), parents, index)
	watcher := usecase.NewWatcher(usecase.NewConverter(), indexer,
		time.Duration(cfg.Watch.DebounceSeconds)*time.Second)

	watcher.OnRun = func(cres *usecase.ConvertResult, ires *usecase.IndexResult, err error) {
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "reindex failed: %v\n", err)
			return
		}
		for _, w := range cres.Warnings {
			fmt.Fprintln(cmd.ErrOrStderr(), w)
		}
		for _, w := range ires.Warnings {
			fmt.Fprintln(cmd.ErrOrStderr(), w)
		}
		fmt.Printf("Reindexed: %d converted, %d documents, %d child chunks\n",
			cres.Converted, ires.Docs, ires.Children)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %s (Ctrl-C to stop)\n", docsDir)
	if err := watcher.Watch(ctx, docsDir, markdownDir); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
