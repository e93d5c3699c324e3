package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/54b3r/docqa-go/internal/rag"
)

// countingEmbedder returns fixed vectors and counts invocations so tests can
// assert that empty folders never reach the embedding step.
type countingEmbedder struct {
	calls int
}

func (c *countingEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	c.calls++
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1, 0.2}
	}
	return out, nil
}

// recordingStore captures every upserted document.
type recordingStore struct {
	docs    []rag.Document
	vectors [][]float32
	upserts int
	failUp  bool
}

func (r *recordingStore) EnsureCollection(context.Context) error { return nil }
func (r *recordingStore) Reset(context.Context) error            { return nil }

func (r *recordingStore) Upsert(_ context.Context, docs []rag.Document, embeddings [][]float32) error {
	r.upserts++
	if r.failUp {
		return fmt.Errorf("store unavailable")
	}
	r.docs = append(r.docs, docs...)
	r.vectors = append(r.vectors, embeddings...)
	return nil
}

func (r *recordingStore) Search(context.Context, []float32, int) ([]rag.Document, error) {
	return nil, nil
}
func (r *recordingStore) Delete(context.Context, []string) error { return nil }
func (r *recordingStore) Close() error                           { return nil }

func newTestPipeline(t *testing.T, emb *countingEmbedder, store *recordingStore) *Pipeline {
	t.Helper()
	p, err := NewPipeline(emb, store, &Config{ChunkSize: 32, ChunkOverlap: 8})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	return p
}

func TestIngest_MissingFolderIsCreatedNotError(t *testing.T) {
	t.Parallel()

	emb := &countingEmbedder{}
	store := &recordingStore{}
	p := newTestPipeline(t, emb, store)

	dir := filepath.Join(t.TempDir(), "documents")
	report, err := p.Ingest(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if !report.CreatedDir {
		t.Error("CreatedDir not set for missing folder")
	}
	if report.Chunks != 0 || report.Files != 0 {
		t.Errorf("want zero counts, got files=%d chunks=%d", report.Files, report.Chunks)
	}
	if emb.calls != 0 || store.upserts != 0 {
		t.Error("embedding/indexing must not run for a missing folder")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("folder was not created: %v", err)
	}
}

func TestIngest_EmptyFolderSkipsIndexing(t *testing.T) {
	t.Parallel()

	emb := &countingEmbedder{}
	store := &recordingStore{}
	p := newTestPipeline(t, emb, store)

	report, err := p.Ingest(context.Background(), t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if report.Chunks != 0 {
		t.Errorf("want 0 chunks, got %d", report.Chunks)
	}
	if emb.calls != 0 || store.upserts != 0 {
		t.Error("embedding/indexing must not run for an empty folder")
	}
}

func TestIngest_UnsupportedFilesAreSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "image.png"), []byte{0x89}, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("supported content here"), 0o644); err != nil {
		t.Fatal(err)
	}

	emb := &countingEmbedder{}
	store := &recordingStore{}
	p := newTestPipeline(t, emb, store)

	report, err := p.Ingest(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if report.Files != 1 {
		t.Errorf("want 1 file processed, got %d", report.Files)
	}
	for _, d := range store.docs {
		if filepath.Base(d.Source) != "notes.txt" {
			t.Errorf("unexpected source indexed: %s", d.Source)
		}
	}
}

func TestIngest_ChunkRecordsCarryProvenance(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := "alpha bravo charlie delta echo foxtrot golf hotel india juliett kilo lima"
	if err := os.WriteFile(filepath.Join(dir, "phonetic_alphabet.txt"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	emb := &countingEmbedder{}
	store := &recordingStore{}
	p := newTestPipeline(t, emb, store)

	report, err := p.Ingest(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if report.Chunks < 2 {
		t.Fatalf("want multiple chunks, got %d", report.Chunks)
	}
	if len(store.docs) != report.Chunks {
		t.Fatalf("report says %d chunks, store received %d", report.Chunks, len(store.docs))
	}
	if len(store.vectors) != len(store.docs) {
		t.Fatalf("embeddings not parallel to docs: %d vs %d", len(store.vectors), len(store.docs))
	}

	for i, d := range store.docs {
		if d.Metadata["chunk_index"] != fmt.Sprintf("%d", i) {
			t.Errorf("doc %d: chunk_index = %q", i, d.Metadata["chunk_index"])
		}
		if d.Metadata["title"] != "phonetic alphabet" {
			t.Errorf("doc %d: title = %q", i, d.Metadata["title"])
		}
		if d.Metadata["doc_type"] != "text" {
			t.Errorf("doc %d: doc_type = %q", i, d.Metadata["doc_type"])
		}
		if d.Source == "" || d.ID == "" {
			t.Errorf("doc %d: missing source or ID", i)
		}
	}
}

func TestIngest_DeterministicIDs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "doc.txt"), []byte("stable content for identical runs"), 0o644); err != nil {
		t.Fatal(err)
	}

	run := func() []rag.Document {
		store := &recordingStore{}
		p := newTestPipeline(t, &countingEmbedder{}, store)
		if _, err := p.Ingest(context.Background(), dir, nil); err != nil {
			t.Fatalf("Ingest: %v", err)
		}
		return store.docs
	}

	first := run()
	second := run()

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("chunk %d ID differs across runs: %s vs %s", i, first[i].ID, second[i].ID)
		}
		if first[i].Content != second[i].Content {
			t.Errorf("chunk %d content differs across runs", i)
		}
	}
}

func TestNewPipeline_ZeroOverlapIsRespected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := "abcdefghijklmnopqrstuvwxyz0123456789"
	if err := os.WriteFile(filepath.Join(dir, "doc.txt"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	store := &recordingStore{}
	p, err := NewPipeline(&countingEmbedder{}, store, &Config{ChunkSize: 16, ChunkOverlap: 0})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	if _, err := p.Ingest(context.Background(), dir, nil); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if len(store.docs) < 2 {
		t.Fatalf("want multiple chunks, got %d", len(store.docs))
	}

	// Zero overlap must not be rewritten to a default: consecutive chunks
	// share nothing, so concatenating them reproduces the source exactly.
	var sb strings.Builder
	for _, d := range store.docs {
		sb.WriteString(d.Content)
	}
	if sb.String() != content {
		t.Errorf("chunks overlap despite ChunkOverlap=0:\ngot  %q\nwant %q", sb.String(), content)
	}
}

func TestIngest_UpsertFailureAborts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "doc.txt"), []byte("some content"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := &recordingStore{failUp: true}
	p := newTestPipeline(t, &countingEmbedder{}, store)

	if _, err := p.Ingest(context.Background(), dir, nil); err == nil {
		t.Fatal("expected error when upsert fails")
	}
}

func TestChunkID_UUIDShape(t *testing.T) {
	t.Parallel()

	id := chunkID("/docs/a.pdf", 7)
	if len(id) != 36 {
		t.Fatalf("ID length = %d, want 36 (UUID format): %s", len(id), id)
	}
	for _, pos := range []int{8, 13, 18, 23} {
		if id[pos] != '-' {
			t.Errorf("ID missing dash at position %d: %s", pos, id)
		}
	}
	if id == chunkID("/docs/a.pdf", 8) {
		t.Error("different ordinals must produce different IDs")
	}
	if id != chunkID("/docs/a.pdf", 7) {
		t.Error("identical input must produce identical IDs")
	}
}
