// Package ingestion implements the document ingestion pipeline: enumerate a
// local folder, extract text, split into overlapping chunks, embed each
// chunk, and upsert the results into the vector store. Invoked by the
// `docqa ingest` CLI command.
package ingestion

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/54b3r/docqa-go/internal/extract"
	"github.com/54b3r/docqa-go/internal/rag"
)

// Config holds the configuration for the ingestion pipeline.
type Config struct {
	// ChunkSize is the maximum number of characters per chunk.
	// Defaults to 1000 if zero.
	ChunkSize int

	// ChunkOverlap is the number of characters shared between consecutive
	// chunks. Zero is a valid value and disables overlap; negative values
	// or values >= ChunkSize fall back to ChunkSize/10. The CLI supplies
	// its own default when DOCQA_CHUNK_OVERLAP is unset.
	ChunkOverlap int
}

// Report summarises one ingestion run.
type Report struct {
	// Files is the number of supported documents processed.
	Files int

	// Chunks is the total number of chunks embedded and upserted.
	Chunks int

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration

	// CreatedDir is true when the documents folder did not exist and was
	// created. The run indexes nothing in that case — it is an expected
	// empty state, not an error.
	CreatedDir bool
}

// Pipeline orchestrates the scan → extract → chunk → embed → upsert flow.
type Pipeline struct {
	// embedder converts chunk text into dense vectors.
	embedder rag.Embedder

	// store persists the embedded chunks.
	store rag.VectorStore

	// splitter produces the overlapping chunk windows.
	splitter *Splitter
}

// NewPipeline constructs a Pipeline from the provided dependencies and config.
func NewPipeline(embedder rag.Embedder, store rag.VectorStore, cfg *Config) (*Pipeline, error) {
	if embedder == nil {
		return nil, fmt.Errorf("ingestion: embedder must not be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("ingestion: store must not be nil")
	}
	if cfg == nil {
		cfg = &Config{}
	}
	size := cfg.ChunkSize
	if size <= 0 {
		size = 1000
	}
	overlap := cfg.ChunkOverlap
	if overlap < 0 || overlap >= size {
		overlap = size / 10
	}

	splitter, err := NewSplitter(size, overlap)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		embedder: embedder,
		store:    store,
		splitter: splitter,
	}, nil
}

// Ingest processes every supported document directly under dir and upserts
// the resulting chunks. If dir does not exist it is created and a zero Report
// with CreatedDir set is returned. Unsupported files are silently skipped.
// Files are processed in directory-listing order; within a file, chunks keep
// page/segment order.
//
// Processing is sequential and stops at the first error. A failure mid-run
// can leave the collection partially updated; re-running ingest is safe
// because chunk IDs are deterministic and upserts overwrite.
func (p *Pipeline) Ingest(ctx context.Context, dir string, progress func(msg string)) (*Report, error) {
	if progress == nil {
		progress = func(string) {}
	}

	start := time.Now()
	report := &Report{}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ingestion: failed to create documents folder %s: %w", dir, err)
		}
		report.CreatedDir = true
		report.Elapsed = time.Since(start)
		return report, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ingestion: failed to read documents folder %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !extract.Supported(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		n, err := p.ingestFile(ctx, path, progress)
		if err != nil {
			return nil, err
		}
		report.Files++
		report.Chunks += n
	}

	report.Elapsed = time.Since(start)
	return report, nil
}

// ingestFile extracts, chunks, embeds, and upserts a single document.
// Returns the number of chunks indexed.
func (p *Pipeline) ingestFile(ctx context.Context, path string, progress func(msg string)) (int, error) {
	progress(fmt.Sprintf("extracting %s", path))

	text, err := extract.File(path)
	if err != nil {
		return 0, fmt.Errorf("ingestion: extraction failed for %s: %w", path, err)
	}

	chunks := p.splitter.Split(text.Content)
	if len(chunks) == 0 {
		return 0, nil
	}
	progress(fmt.Sprintf("split %s into %d chunks (%d pages)", path, len(chunks), text.Pages))

	embeddings, err := p.embedder.Embed(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("ingestion: embedding failed for %s: %w", path, err)
	}

	meta := InferMetadata(path)
	docs := make([]rag.Document, 0, len(chunks))
	for i, chunk := range chunks {
		docs = append(docs, rag.Document{
			ID:      chunkID(path, i),
			Content: chunk,
			Source:  path,
			Metadata: map[string]string{
				"chunk_index": fmt.Sprintf("%d", i),
				"title":       meta.Title,
				"doc_type":    meta.DocType,
				"pages":       fmt.Sprintf("%d", text.Pages),
			},
		})
	}

	if err := p.store.Upsert(ctx, docs, embeddings); err != nil {
		return 0, fmt.Errorf("ingestion: upsert failed for %s: %w", path, err)
	}

	progress(fmt.Sprintf("indexed %d chunks from %s", len(chunks), path))
	return len(chunks), nil
}

// chunkID derives a stable UUID-formatted identifier from the source path
// and chunk ordinal. Re-ingesting the same file overwrites its old chunks
// instead of duplicating them.
func chunkID(source string, index int) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s#%d", source, index)))
	return fmt.Sprintf("%x-%x-%x-%x-%x", h[0:4], h[4:6], h[6:8], h[8:10], h[10:16])
}
