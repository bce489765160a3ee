package usecase

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConverterSkipsExistingMarkdown(t *testing.T) {
	docs := t.TempDir()
	out := t.TempDir()

	// Not a real PDF, but its markdown already exists so it is never parsed.
	if err := os.WriteFile(filepath.Join(docs, "done.pdf"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(out, "done.md"), []byte("# done\n"), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := NewConverter().Run(docs, out)
	if err != nil {
		t.Fatal(err)
	}
	if res.Skipped != 1 || res.Converted != 0 {
		t.Errorf("skipped=%d converted=%d", res.Skipped, res.Converted)
	}
}

func TestConverterWarnsOnBrokenPDF(t *testing.T) {
	docs := t.TempDir()
	out := t.TempDir()
	if err := os.WriteFile(filepath.Join(docs, "broken.pdf"), []byte("not a pdf"), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := NewConverter().Run(docs, out)
	if err != nil {
		t.Fatal(err)
	}
	if res.Converted != 0 {
		t.Errorf("converted=%d, want 0", res.Converted)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("warnings = %v, want 1", res.Warnings)
	}
	if _, err := os.Stat(filepath.Join(out, "broken.md")); !os.IsNotExist(err) {
		t.Error("markdown written for unparseable pdf")
	}
}

func TestConverterMissingDocsDir(t *testing.T) {
	res, err := NewConverter().Run(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if res.Converted != 0 || res.Skipped != 0 {
		t.Errorf("unexpected result %+v", res)
	}
}
