package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"recall/config"
	"recall/internal/usecase"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert PDF documents to markdown",
	Long: `Convert every PDF under the docs directory into a markdown file in the
markdown directory. Documents that already have a markdown file are skipped,
so the command is safe to re-run after adding new PDFs.`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	root := GetRootDir()

	docsDir := config.Resolve(root, cfg.Paths.DocsDir)
	markdownDir := config.Resolve(root, cfg.Paths.MarkdownDir)

	res, err := usecase.NewConverter().Run(docsDir, markdownDir)
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), w)
	}
	fmt.Printf("Converted %d document(s), skipped %d already converted\n", res.Converted, res.Skipped)
	return nil
}
