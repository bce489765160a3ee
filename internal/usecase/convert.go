package usecase

import (
	"fmt"
	"os"
	"path/filepath"

	"recall/internal/adapter/fs"
	"recall/internal/adapter/pdfconv"
)

// ConvertResult summarizes one conversion run.
type ConvertResult struct {
	Converted int
	Skipped   int
	Warnings  []string
}

// Converter turns a directory of PDF documents into markdown files for
// indexing. Conversion is incremental: a PDF whose markdown output
// already exists is skipped, so re-running after adding one document
// only converts that document.
type Converter struct {
	walker *fs.Walker
	pdf    *pdfconv.Converter
}

func NewConverter() *Converter {
	return &Converter{
		walker: fs.NewWalker("**/*.pdf"),
		pdf:    pdfconv.NewConverter(),
	}
}

// Run converts every PDF under docsDir into outDir/{stem}.md. A PDF
// that fails to parse is reported as a warning and skipped.
func (c *Converter) Run(docsDir, outDir string) (*ConvertResult, error) {
	files, err := c.walker.Walk(docsDir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", docsDir, err)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", outDir, err)
	}

	result := &ConvertResult{}
	for _, path := range files {
		stem := fs.Stem(path)
		outPath := filepath.Join(outDir, stem+".md")
		if _, err := os.Stat(outPath); err == nil {
			result.Skipped++
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("skipping %s: %v", path, err))
			continue
		}
		md, err := c.pdf.ToMarkdown(data, stem)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("skipping %s: %v", path, err))
			continue
		}
		if err := os.WriteFile(outPath, []byte(md), 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", outPath, err)
		}
		result.Converted++
	}

	return result, nil
}
