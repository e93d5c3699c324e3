// Package budget provides token estimation and context trimming for the
// answer pipeline. docqa supports several LLM backends with different
// tokenizers, so a conservative character heuristic is used: 1 token ≈ 4
// characters of English prose. This under-estimates deliberately to leave
// headroom for model-specific overhead.
package budget

import (
	"github.com/cloudwego/eino/schema"

	"github.com/54b3r/docqa-go/internal/rag"
)

const (
	// charsPerToken is the character-to-token ratio used for estimation.
	charsPerToken = 4

	// DefaultMaxContextTokens is the default input budget in tokens.
	// Small enough for 8k-context local models while leaving room for the
	// answer itself.
	DefaultMaxContextTokens = 6000
)

// Estimate returns a rough token count for s using the character heuristic.
func Estimate(s string) int {
	n := len(s) / charsPerToken
	if n == 0 && len(s) > 0 {
		return 1
	}
	return n
}

// EstimateMessages returns the estimated total token count for a slice of
// chat messages, including a small per-message envelope overhead.
func EstimateMessages(msgs []*schema.Message) int {
	total := 0
	for _, m := range msgs {
		total += 4
		total += Estimate(string(m.Role))
		total += Estimate(m.Content)
	}
	return total
}

// TrimDocuments drops retrieved documents from the tail of docs (lowest
// similarity first — retrieval order is descending) until the estimated
// token count of all remaining document contents plus reservedTokens fits
// within maxTokens. At least one document is always kept when docs is
// non-empty, even if it alone exceeds the budget; an answer with truncated
// context beats an answer with none.
func TrimDocuments(docs []rag.Document, reservedTokens, maxTokens int) []rag.Document {
	if len(docs) == 0 {
		return docs
	}

	total := func(ds []rag.Document) int {
		sum := reservedTokens
		for _, d := range ds {
			sum += Estimate(d.Content)
		}
		return sum
	}

	for len(docs) > 1 {
		if total(docs) <= maxTokens {
			break
		}
		docs = docs[:len(docs)-1]
	}
	return docs
}
