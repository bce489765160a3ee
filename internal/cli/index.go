package cli

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"recall/config"
	"recall/internal/usecase"
)

var indexConvertFirst bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the knowledge base index",
	Long: `Split every markdown document into parent and child chunks, embed the
child chunks and rebuild the hybrid search index. The parent store is
replaced only after the child index accepted the new chunks.

Examples:
  recall index              # Index the markdown directory
  recall index --convert    # Convert new PDFs first, then index`,
	RunE: runIndexCmd,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().BoolVar(&indexConvertFirst, "convert", false, "convert new PDFs before indexing")
}

func runIndexCmd(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	root := GetRootDir()

	markdownDir := config.Resolve(root, cfg.Paths.MarkdownDir)

	if indexConvertFirst {
		docsDir := config.Resolve(root, cfg.Paths.DocsDir)
		cres, err := usecase.NewConverter().Run(docsDir, markdownDir)
		if err != nil {
			return err
		}
		for _, w := range cres.Warnings {
			fmt.Fprintln(cmd.ErrOrStderr(), w)
		}
		fmt.Printf("Converted %d document(s)\n", cres.Converted)
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

	var bar *progressbar.ProgressBar
	indexer.Progress = func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("Splitting documents"),
				progressbar.OptionShowCount(),
			)
		}
		_ = bar.Set(done)
	}

	res, err := indexer.Run(markdownDir)
	if err != nil {
		return err
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Println()
	}

	for _, w := range res.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), w)
	}
	if res.Children == 0 {
		fmt.Println("No documents to index")
		return nil
	}
	fmt.Printf("Indexed %d document(s): %d parent chunks, %d child chunks\n",
		res.Docs, res.Parents, res.Children)
	return nil
}
