// Package pdfconv converts PDF documents into markdown files suitable
// for the indexing pipeline. Extraction uses ledongthuc/pdf, which is
// pure Go and needs no CGO.
package pdfconv

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Converter extracts text from PDF bytes and renders it as markdown.
type Converter struct{}

func NewConverter() *Converter {
	return &Converter{}
}

// ToMarkdown extracts the text of every readable page and joins pages
// with blank lines. The document title becomes a level-one heading so
// the header splitter has an anchor section. The title is derived from
// the file stem with underscores replaced by spaces.
func (c *Converter) ToMarkdown(content []byte, stem string) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("empty pdf content")
	}

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var text strings.Builder
	title := strings.ReplaceAll(stem, "_", " ")
	text.WriteString("# " + title + "\n")

	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Unreadable pages are skipped rather than failing the
			// whole document.
			continue
		}
		pageText = strings.TrimSpace(sanitize(pageText))
		if pageText == "" {
			continue
		}
		text.WriteString("\n")
		text.WriteString(pageText)
		text.WriteString("\n")
	}

	return text.String(), nil
}

// sanitize drops bytes that are not valid UTF-8 and normalizes the
// occasional NUL that broken PDF encodings produce.
func sanitize(s string) string {
	s = strings.ToValidUTF8(s, "")
	return strings.ReplaceAll(s, "\x00", "")
}
