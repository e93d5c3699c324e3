package ingestion

import (
	"path/filepath"
	"strings"
)

// Metadata describes a source document, inferred from its filename.
type Metadata struct {
	// Title is a human-readable document title derived from the base name.
	Title string

	// DocType labels the source format: "pdf", "text", or "markdown".
	DocType string
}

// InferMetadata derives document metadata from a file path. The title is the
// base name with the extension stripped and separator characters normalised
// to spaces; the doc type follows the extension.
func InferMetadata(path string) Metadata {
	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))

	title := strings.TrimSuffix(base, filepath.Ext(base))
	title = strings.NewReplacer("_", " ", "-", " ").Replace(title)
	title = strings.Join(strings.Fields(title), " ")

	docType := "text"
	switch ext {
	case ".pdf":
		docType = "pdf"
	case ".md":
		docType = "markdown"
	}

	return Metadata{Title: title, DocType: docType}
}
