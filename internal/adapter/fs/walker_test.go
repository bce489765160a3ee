package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWalkSortedMarkdown(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zeta.md", "alpha.md", "notes.txt", "beta.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := NewWalker("**/*.md").Walk(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 markdown files, got %d", len(files))
	}
	for i, want := range []string{"alpha.md", "beta.md", "zeta.md"} {
		if filepath.Base(files[i]) != want {
			t.Errorf("position %d: expected %s, got %s", i, want, filepath.Base(files[i]))
		}
	}
}

func TestWalkMissingRoot(t *testing.T) {
	files, err := NewWalker("**/*.md").Walk(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("missing root must not error: %v", err)
	}
	if files != nil {
		t.Errorf("expected no files, got %v", files)
	}
}

func TestStem(t *testing.T) {
	cases := map[string]string{
		"/a/b/alpha.md":        "alpha",
		"report.pdf":           "report",
		"weekly_sync.final.md": "weekly_sync.final",
		"noext":                "noext",
	}
	for in, want := range cases {
		if got := Stem(in); got != want {
			t.Errorf("Stem(%q) = %q, want %q", in, got, want)
		}
	}
}
