package extract

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// PDF extracts text from PDF statements, pages concatenated in order.
type PDF struct{}

// NewPDF returns the PDF extractor.
func NewPDF() PDF { return PDF{} }

// Name returns the extractor identifier.
func (PDF) Name() string { return "pdf" }

// CanExtract reports whether the file is a PDF.
func (PDF) CanExtract(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// Extract decodes every page and concatenates the text in reading order.
// Output that decodes but is not readable text (image-based or custom-font
// documents) is rejected rather than handed to the parser as garbage.
func (PDF) Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract page %d of %s: %w", i, path, err)
		}
		sb.WriteString(text)
	}

	text := sb.String()
	if !isReadableText(text) {
		return "", fmt.Errorf("no readable text in %s: the PDF may be image-based or use custom font encodings", path)
	}
	return text, nil
}

// isReadableText requires a majority of plain ASCII characters. Identity
// encoded fonts decode into accented garbage that unicode.IsLetter would
// happily accept, so the check is deliberately strict.
func isReadableText(text string) bool {
	if text == "" {
		return false
	}
	total, readable := 0, 0
	for _, r := range text {
		total++
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			readable++
		case unicode.IsSpace(r):
			readable++
		case strings.ContainsRune(".,-/:;()'\"$%&", r):
			readable++
		}
	}
	return float64(readable)/float64(total) >= 0.8
}
