package store

import (
	"context"
	"testing"
)

// openTestStore opens an in-memory SQLiteStore for use in tests.
func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func Test_Store_AppendAndRecent(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Append(ctx, "docs", "what is qdrant?", "a vector database"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Append(ctx, "docs", "what port does it use?", "6334 for gRPC"); err != nil {
		t.Fatalf("append: %v", err)
	}

	turns, err := s.Recent(ctx, "docs", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("want 2 turns, got %d", len(turns))
	}
	if turns[0].Question != "what is qdrant?" || turns[0].Answer != "a vector database" {
		t.Errorf("turn[0] = %+v", turns[0])
	}
	if turns[1].Question != "what port does it use?" {
		t.Errorf("turn[1] = %+v", turns[1])
	}
}

func Test_Store_RecentLimitRespected(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	for range 6 {
		if err := s.Append(ctx, "docs", "q", "a"); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	turns, err := s.Recent(ctx, "docs", 4)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(turns) != 4 {
		t.Errorf("want 4 turns, got %d", len(turns))
	}
}

func Test_Store_CollectionIsolation(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Append(ctx, "papers", "from papers", "a"); err != nil {
		t.Fatalf("append papers: %v", err)
	}
	if err := s.Append(ctx, "manuals", "from manuals", "a"); err != nil {
		t.Fatalf("append manuals: %v", err)
	}

	papers, err := s.Recent(ctx, "papers", 10)
	if err != nil {
		t.Fatalf("recent papers: %v", err)
	}
	manuals, err := s.Recent(ctx, "manuals", 10)
	if err != nil {
		t.Fatalf("recent manuals: %v", err)
	}

	if len(papers) != 1 || papers[0].Question != "from papers" {
		t.Errorf("papers isolation failed: got %v", papers)
	}
	if len(manuals) != 1 || manuals[0].Question != "from manuals" {
		t.Errorf("manuals isolation failed: got %v", manuals)
	}
}

func Test_Store_EmptyCollectionReturnsNil(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	turns, err := s.Recent(ctx, "empty", 10)
	if err != nil {
		t.Fatalf("recent empty: %v", err)
	}
	if len(turns) != 0 {
		t.Errorf("want 0 turns, got %d", len(turns))
	}
}

func Test_Store_OldestFirstOrdering(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	questions := []string{"first", "second", "third"}
	for _, q := range questions {
		if err := s.Append(ctx, "order", q, "a"); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	turns, err := s.Recent(ctx, "order", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	for i, want := range questions {
		if turns[i].Question != want {
			t.Errorf("turn[%d]: want %q, got %q", i, want, turns[i].Question)
		}
	}
}
