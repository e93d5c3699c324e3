package rag

import (
	"context"
	"fmt"
	"testing"
)

// fakeEmbedder returns a fixed vector per input and records call counts.
type fakeEmbedder struct {
	calls int
	fail  bool
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.fail {
		return nil, fmt.Errorf("embedder down")
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

// fakeStore records the topK it was asked for and returns canned documents.
type fakeStore struct {
	docs     []Document
	gotTopK  int
	searches int
}

func (f *fakeStore) EnsureCollection(context.Context) error { return nil }
func (f *fakeStore) Reset(context.Context) error            { return nil }
func (f *fakeStore) Upsert(context.Context, []Document, [][]float32) error {
	return nil
}

func (f *fakeStore) Search(_ context.Context, _ []float32, topK int) ([]Document, error) {
	f.searches++
	f.gotTopK = topK
	if len(f.docs) < topK {
		return f.docs, nil
	}
	return f.docs[:topK], nil
}

func (f *fakeStore) Delete(context.Context, []string) error { return nil }
func (f *fakeStore) Close() error                           { return nil }

func TestRetriever_NilDependencies(t *testing.T) {
	t.Parallel()

	if _, err := NewRetriever(nil, &fakeStore{}, 3); err == nil {
		t.Error("expected error for nil embedder")
	}
	if _, err := NewRetriever(&fakeEmbedder{}, nil, 3); err == nil {
		t.Error("expected error for nil store")
	}
}

func TestRetriever_DefaultTopK(t *testing.T) {
	t.Parallel()

	store := &fakeStore{docs: []Document{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}}
	r, err := NewRetriever(&fakeEmbedder{}, store, 0)
	if err != nil {
		t.Fatalf("NewRetriever: %v", err)
	}

	docs, err := r.Retrieve(context.Background(), "q", 0)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if store.gotTopK != 3 {
		t.Errorf("store asked for topK=%d, want 3", store.gotTopK)
	}
	if len(docs) != 3 {
		t.Errorf("got %d docs, want 3", len(docs))
	}
}

func TestRetriever_FewerDocsThanK(t *testing.T) {
	t.Parallel()

	store := &fakeStore{docs: []Document{{ID: "only"}}}
	r, err := NewRetriever(&fakeEmbedder{}, store, 3)
	if err != nil {
		t.Fatalf("NewRetriever: %v", err)
	}

	docs, err := r.Retrieve(context.Background(), "q", 3)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("got %d docs, want 1", len(docs))
	}
}

func TestRetriever_EmbedderFailurePropagates(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	r, err := NewRetriever(&fakeEmbedder{fail: true}, store, 3)
	if err != nil {
		t.Fatalf("NewRetriever: %v", err)
	}

	if _, err := r.Retrieve(context.Background(), "q", 3); err == nil {
		t.Fatal("expected error when embedder fails")
	}
	if store.searches != 0 {
		t.Errorf("store searched %d times after embed failure, want 0", store.searches)
	}
}
