// Package answer implements the retrieval-augmented answer pipeline: embed
// the question, fetch the most similar chunks from the vector store, render
// a grounded prompt, and generate a reply with the configured chat model.
//
// The engine carries an explicit readiness state. Until both the retriever
// and the chat model are wired (which happens only after the vector
// collection exists), Answer rejects questions with ErrNotReady instead of
// making remote calls.
package answer

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/54b3r/docqa-go/internal/budget"
	"github.com/54b3r/docqa-go/internal/rag"
)

// ErrNotReady is returned by Answer when the engine has not been fully wired
// yet (no retriever or no chat model). Callers present it as a "not ready"
// message rather than a failure.
var ErrNotReady = errors.New("answer: engine not ready — run `docqa ingest` and configure a model provider first")

// Config holds the dependencies and tuning for an Engine.
type Config struct {
	// ChatModel generates the final answer. Sampling temperature is fixed at
	// model construction time (0.2 by default — faithfulness over creativity).
	ChatModel model.BaseChatModel

	// Retriever fetches the context chunks for each question.
	Retriever rag.Retriever

	// TopK is the number of chunks retrieved per question. Defaults to 3.
	TopK int

	// MaxContextTokens caps the estimated size of the rendered prompt.
	// Lowest-similarity chunks are dropped first to fit. Defaults to
	// budget.DefaultMaxContextTokens.
	MaxContextTokens int
}

// Result is the outcome of one answered question.
type Result struct {
	// Answer is the model's raw reply text.
	Answer string

	// Sources are the retrieved chunks that grounded the answer, in
	// descending similarity order.
	Sources []rag.Document
}

// Engine is the retrieval-augmented answer pipeline.
// Safe for concurrent use once constructed.
type Engine struct {
	// chatModel generates answers. Nil while uninitialized.
	chatModel model.BaseChatModel

	// retriever fetches context. Nil while uninitialized.
	retriever rag.Retriever

	// topK is the number of chunks retrieved per question.
	topK int

	// maxContextTokens is the estimated prompt budget.
	maxContextTokens int
}

// New constructs an Engine. A nil ChatModel or Retriever yields an engine in
// the uninitialized state: Ready reports false and Answer returns ErrNotReady.
func New(cfg *Config) *Engine {
	if cfg == nil {
		cfg = &Config{}
	}
	topK := cfg.TopK
	if topK <= 0 {
		topK = 3
	}
	maxCtx := cfg.MaxContextTokens
	if maxCtx <= 0 {
		maxCtx = budget.DefaultMaxContextTokens
	}
	return &Engine{
		chatModel:        cfg.ChatModel,
		retriever:        cfg.Retriever,
		topK:             topK,
		maxContextTokens: maxCtx,
	}
}

// Ready reports whether the engine can answer questions.
func (e *Engine) Ready() bool {
	return e.chatModel != nil && e.retriever != nil
}

// Answer runs the full pipeline for one question. Remote failures
// (embedding, search, generation) are returned as errors so interactive
// callers can report them and continue with the next question.
func (e *Engine) Answer(ctx context.Context, question string) (*Result, error) {
	if !e.Ready() {
		return nil, ErrNotReady
	}

	docs, err := e.retriever.Retrieve(ctx, question, e.topK)
	if err != nil {
		return nil, fmt.Errorf("answer: retrieval failed: %w", err)
	}

	// Reserve budget for the system prompt and the question itself, then
	// trim context chunks (lowest similarity first) to fit.
	reserved := budget.Estimate(systemPrompt) + budget.Estimate(question)
	docs = budget.TrimDocuments(docs, reserved, e.maxContextTokens)

	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(renderPrompt(docs, question)),
	}

	reply, err := e.chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("answer: generation failed: %w", err)
	}
	if reply == nil {
		return nil, fmt.Errorf("answer: model returned no reply")
	}

	return &Result{
		Answer:  reply.Content,
		Sources: docs,
	}, nil
}
