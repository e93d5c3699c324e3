// Package extract turns source documents into plain text for chunking.
// PDF files are read page by page; plain-text and markdown files are read
// whole. Files with unrecognised extensions are not extract's concern — the
// ingestion pipeline skips them before calling in here.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Text is the extracted content of one source document.
type Text struct {
	// Content is the full extracted text, pages joined in order.
	Content string

	// Pages is the number of pages the text was extracted from.
	// 1 for non-paginated formats.
	Pages int
}

// Supported reports whether the file extension is one extract can handle.
// The check is case-insensitive.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".txt", ".md":
		return true
	default:
		return false
	}
}

// File extracts the text content of the file at path. The extension decides
// the extraction strategy; calling File on an unsupported extension is an
// error.
func File(path string) (*Text, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return pdfFile(path)
	case ".txt", ".md":
		return plainFile(path)
	default:
		return nil, fmt.Errorf("extract: unsupported file type %q", filepath.Ext(path))
	}
}

// pdfFile extracts text from every page of a PDF in page order.
// Pages that fail text extraction (scanned images, malformed content
// streams) are skipped rather than failing the whole document.
func pdfFile(path string) (*Text, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("extract: open pdf %s: %w", path, err)
	}
	defer f.Close()

	var sb strings.Builder
	total := reader.NumPage()
	extracted := 0

	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(content)
		extracted++
	}

	if sb.Len() == 0 {
		return nil, fmt.Errorf("extract: no text content in %s (%d pages)", path, total)
	}

	return &Text{Content: sb.String(), Pages: extracted}, nil
}

// plainFile reads a text or markdown file whole.
func plainFile(path string) (*Text, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("extract: read %s: %w", path, err)
	}
	return &Text{Content: string(data), Pages: 1}, nil
}
