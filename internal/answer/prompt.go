package answer

import (
	"fmt"
	"strings"

	"github.com/54b3r/docqa-go/internal/rag"
)

// systemPrompt establishes the assistant's grounding rules. The two-part
// answer shape is an instruction to the model; replies are returned verbatim
// and never validated against it.
const systemPrompt = `You are docqa, an assistant that answers questions about the user's document
library. You answer strictly from the context excerpts provided with each
question — never from outside knowledge. When the context does not contain
the answer, say so plainly instead of guessing.

Structure every answer in two parts:
1. A short summary — one or two sentences that answer the question directly.
2. Key points — a bulleted list of the supporting details from the context,
   each attributable to one of the provided sources.

Keep answers faithful to the source text. Do not invent citations.`

// renderPrompt builds the user message from the retrieved context and the
// raw question. Sources are numbered in retrieval order (descending
// similarity) so the model can reference them.
func renderPrompt(docs []rag.Document, question string) string {
	var sb strings.Builder

	sb.WriteString("Answer the question using only the context below.\n\n")
	sb.WriteString("## Context\n\n")
	for i, doc := range docs {
		fmt.Fprintf(&sb, "### Source %d: %s\n%s\n\n", i+1, doc.Source, doc.Content)
	}
	sb.WriteString("## Question\n\n")
	sb.WriteString(question)

	return sb.String()
}
