// Package scanner finds statement documents under an input directory.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rumor-ml/commons.systems/bankledger/internal/extract"
)

// Scanner walks a directory tree and collects statement documents.
type Scanner struct {
	rootDir    string
	extractors []extract.Extractor
}

// New creates a scanner rooted at rootDir, recognizing everything the given
// extractors can handle.
func New(rootDir string, extractors []extract.Extractor) *Scanner {
	return &Scanner{rootDir: rootDir, extractors: extractors}
}

// Scan walks the tree and returns absolute paths of statement documents in
// lexical walk order. Order across documents carries no semantics; each is
// processed independently. Unreadable entries below the root are skipped so
// one bad directory does not sink the whole batch; an unreadable root is
// still an error.
func (s *Scanner) Scan() ([]string, error) {
	rootDir := expandHome(s.rootDir)

	var paths []string
	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == rootDir {
				return err
			}
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if extract.For(path, s.extractors) == nil {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		paths = append(paths, abs)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	return paths, nil
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
