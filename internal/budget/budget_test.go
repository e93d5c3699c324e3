package budget

import (
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/54b3r/docqa-go/internal/rag"
)

func TestEstimate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 1},
		{"abcd", 1},
		{"abcdefgh", 2},
		{strings.Repeat("x", 400), 100},
	}
	for _, tt := range tests {
		if got := Estimate(tt.in); got != tt.want {
			t.Errorf("Estimate(%d chars) = %d, want %d", len(tt.in), got, tt.want)
		}
	}
}

func TestEstimateMessages(t *testing.T) {
	t.Parallel()

	msgs := []*schema.Message{
		schema.SystemMessage(strings.Repeat("a", 40)),
		schema.UserMessage(strings.Repeat("b", 40)),
	}
	got := EstimateMessages(msgs)
	// 2 messages x (4 overhead + ~1 role + 10 content) — exact value matters
	// less than being non-trivial and monotonic.
	if got < 20 {
		t.Errorf("EstimateMessages = %d, suspiciously small", got)
	}
	if EstimateMessages(msgs[:1]) >= got {
		t.Error("more messages must estimate higher")
	}
}

func TestTrimDocuments_DropsLowestScoredFirst(t *testing.T) {
	t.Parallel()

	docs := []rag.Document{
		{ID: "best", Content: strings.Repeat("a", 400), Score: 0.9},
		{ID: "mid", Content: strings.Repeat("b", 400), Score: 0.5},
		{ID: "worst", Content: strings.Repeat("c", 400), Score: 0.1},
	}

	// Budget fits roughly two documents (100 tokens each) plus reserve.
	trimmed := TrimDocuments(docs, 10, 220)
	if len(trimmed) != 2 {
		t.Fatalf("want 2 docs after trim, got %d", len(trimmed))
	}
	if trimmed[0].ID != "best" || trimmed[1].ID != "mid" {
		t.Errorf("trim dropped the wrong documents: %v", []string{trimmed[0].ID, trimmed[1].ID})
	}
}

func TestTrimDocuments_AlwaysKeepsOne(t *testing.T) {
	t.Parallel()

	docs := []rag.Document{
		{ID: "huge", Content: strings.Repeat("x", 10000), Score: 0.8},
	}
	trimmed := TrimDocuments(docs, 0, 10)
	if len(trimmed) != 1 {
		t.Fatalf("want 1 doc kept, got %d", len(trimmed))
	}
}

func TestTrimDocuments_NoTrimWithinBudget(t *testing.T) {
	t.Parallel()

	docs := []rag.Document{
		{ID: "a", Content: "short"},
		{ID: "b", Content: "also short"},
	}
	trimmed := TrimDocuments(docs, 0, 1000)
	if len(trimmed) != 2 {
		t.Errorf("want all docs kept, got %d", len(trimmed))
	}
}
