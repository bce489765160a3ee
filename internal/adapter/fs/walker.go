package fs

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Walker discovers source files under a directory by glob pattern.
// Results come back sorted by path, which fixes the document processing
// order (and with it parent ID assignment) across runs.
type Walker struct {
	pattern string
}

// NewWalker creates a walker for one doublestar pattern, e.g. "**/*.md".
func NewWalker(pattern string) *Walker {
	if pattern == "" {
		pattern = "**/*"
	}
	return &Walker{pattern: pattern}
}

// Walk returns all matching regular files under root, sorted by path.
// A missing root yields an empty result, not an error.
func (w *Walker) Walk(root string) ([]string, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		match, err := doublestar.Match(w.pattern, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		if match {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// ReadFile reads a file's content as a string.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Stem returns the filename without directory or extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
