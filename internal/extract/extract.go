// Package extract turns source documents into a single ordered text blob.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extractor produces the raw text of one document, pages concatenated in
// reading order. Extraction fidelity is the extractor's problem; the
// pipeline only sees the resulting blob.
type Extractor interface {
	// Name returns the extractor identifier (e.g. "pdf", "plain").
	Name() string

	// CanExtract reports whether this extractor handles the file.
	CanExtract(path string) bool

	// Extract returns the document's text as one ordered string.
	Extract(path string) (string, error)
}

// Plain reads pre-extracted statement text verbatim from .txt files.
type Plain struct{}

// Name returns the extractor identifier.
func (Plain) Name() string { return "plain" }

// CanExtract reports whether the file is a plain text statement.
func (Plain) CanExtract(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".txt")
}

// Extract reads the file contents.
func (Plain) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// For returns the first extractor that handles path, or nil when the file
// type is not supported.
func For(path string, extractors []Extractor) Extractor {
	for _, e := range extractors {
		if e.CanExtract(path) {
			return e
		}
	}
	return nil
}

// Default returns the built-in extractor set.
func Default() []Extractor {
	return []Extractor{NewPDF(), Plain{}}
}
