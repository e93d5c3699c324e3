// Package rag defines the core retrieval types and interfaces: document
// chunks, vector storage, embedding, and retrieval. Concrete backends
// (Qdrant, HTTP embedders) satisfy these interfaces so the answer pipeline
// never depends on a specific service.
package rag

import (
	"context"
)

// Document is the unit of storage and retrieval: one text chunk of a source
// document together with its provenance.
type Document struct {
	// ID is the deterministic identifier of this chunk (derived from source
	// path and chunk ordinal, stable across re-ingestion).
	ID string

	// Content is the chunk text.
	Content string

	// Source is the file path the chunk was extracted from.
	Source string

	// Metadata holds traceability key-value pairs (chunk_index, title,
	// doc_type, page span).
	Metadata map[string]string

	// Score is the similarity score assigned at retrieval time.
	// Zero when the document was not produced by a search.
	Score float32
}

// VectorStore persists document embeddings and performs similarity search.
// Implementations must be safe to call from multiple goroutines.
type VectorStore interface {
	// EnsureCollection creates the backing collection if it does not exist.
	// An existing collection is left untouched; its vector dimension must
	// match the configured one or an error is returned.
	EnsureCollection(ctx context.Context) error

	// Reset unconditionally drops and recreates the collection. All
	// previously indexed data under the collection name is lost.
	Reset(ctx context.Context) error

	// Upsert stores a batch of documents with their pre-computed embeddings.
	// embeddings[i] is the vector for docs[i]; the slices must be parallel.
	Upsert(ctx context.Context, docs []Document, embeddings [][]float32) error

	// Search returns up to topK documents ordered by descending similarity
	// to the query embedding. Tie order among equal scores is store-defined.
	Search(ctx context.Context, queryEmbedding []float32, topK int) ([]Document, error)

	// Delete removes documents by their IDs.
	Delete(ctx context.Context, ids []string) error

	// Close releases any resources held by the store.
	Close() error
}

// Embedder converts text into dense vector embeddings.
// Implementations must be deterministic for identical input and safe to call
// from multiple goroutines. Batched calls produce the same per-item vectors
// as sequential single-item calls.
type Embedder interface {
	// Embed converts a batch of texts into their embeddings.
	// The returned slice is parallel to the input slice.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Retriever fetches the most relevant document chunks for a question.
// Implementations must be safe to call from multiple goroutines.
type Retriever interface {
	// Retrieve returns the top-k most relevant documents for the query,
	// ordered by descending similarity.
	Retrieve(ctx context.Context, query string, topK int) ([]Document, error)
}
