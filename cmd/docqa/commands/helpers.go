package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/54b3r/docqa-go/internal/answer"
	"github.com/54b3r/docqa-go/internal/embedder"
	"github.com/54b3r/docqa-go/internal/provider"
	"github.com/54b3r/docqa-go/internal/rag"
	"github.com/54b3r/docqa-go/internal/store"
)

// defaultCollection is the Qdrant collection used when QDRANT_COLLECTION is
// not set.
const defaultCollection = "docqa-docs"

// defaultDocumentsDir is the folder scanned for documents when neither
// --dir nor DOCQA_DOCUMENTS_DIR is set.
const defaultDocumentsDir = "./documents"

// timeRound is the display granularity for elapsed-time reports.
const timeRound = 100 * time.Millisecond

// collectionName resolves the active Qdrant collection name.
func collectionName() string {
	return getEnvOrDefault("QDRANT_COLLECTION", defaultCollection)
}

// buildStore connects to Qdrant using the environment configuration.
// The collection dimension follows the active embedding backend.
func buildStore(log *slog.Logger) (*rag.QdrantStore, error) {
	host := getEnvOrDefault("QDRANT_HOST", "localhost")
	port := getEnvInt("QDRANT_PORT", 6334)
	collection := collectionName()
	vectorSize := uint64(embedder.DefaultDimensions(embedder.Backend())) //nolint:gosec // dimensions are bounded

	qs, err := rag.NewQdrantStore(&rag.QdrantConfig{
		Host:       host,
		Port:       port,
		Collection: collection,
		VectorSize: vectorSize,
		APIKey:     os.Getenv("QDRANT_API_KEY"),
		UseTLS:     os.Getenv("QDRANT_TLS") == "true",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Qdrant at %s:%d: %w", host, port, err)
	}
	log.Info("qdrant store ready",
		slog.String("host", host),
		slog.Int("port", port),
		slog.String("collection", collection),
	)
	return qs, nil
}

// buildEngine wires the full answer pipeline: embedder, vector store,
// retriever, and chat model. The returned closer releases the Qdrant
// connection. The store is also returned so callers can register readiness
// probes against it.
func buildEngine(ctx context.Context, log *slog.Logger) (*answer.Engine, *rag.QdrantStore, rag.Embedder, func(), error) {
	if err := embedder.Validate(log); err != nil {
		return nil, nil, nil, nil, err
	}
	emb, err := embedder.NewFromEnv()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to initialise embedder: %w", err)
	}

	qs, err := buildStore(log)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	closer := func() { _ = qs.Close() }

	// Create-if-missing keeps first runs smooth; an existing collection with
	// the wrong dimension fails here with a pointer to `docqa reset`.
	if err := qs.EnsureCollection(ctx); err != nil {
		closer()
		return nil, nil, nil, nil, err
	}

	retriever, err := rag.NewRetriever(emb, qs, getEnvInt("DOCQA_TOP_K", 3))
	if err != nil {
		closer()
		return nil, nil, nil, nil, err
	}

	chatModel, err := provider.NewFromEnv(ctx)
	if err != nil {
		closer()
		return nil, nil, nil, nil, fmt.Errorf("failed to initialise model provider: %w", err)
	}
	log.Info("provider initialised", slog.String("provider", getEnvOrDefault("MODEL_PROVIDER", "ollama")))

	engine := answer.New(&answer.Config{
		ChatModel: chatModel,
		Retriever: retriever,
		TopK:      getEnvInt("DOCQA_TOP_K", 3),
	})

	return engine, qs, emb, closer, nil
}

// buildHistory opens the question/answer history store. DOCQA_HISTORY_DB
// overrides the default path (~/.docqa/history.db); "disabled" turns history
// off. Failures degrade to a nil store with a warning — history is never
// fatal.
func buildHistory(log *slog.Logger) (store.HistoryStore, func()) {
	dbPath := os.Getenv("DOCQA_HISTORY_DB")
	if dbPath == "disabled" {
		log.Info("history: disabled via DOCQA_HISTORY_DB=disabled")
		return nil, func() {}
	}
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			log.Warn("history: could not resolve default DB path, disabling", slog.Any("error", err))
			return nil, func() {}
		}
	}
	hs, err := store.Open(dbPath)
	if err != nil {
		log.Warn("history: failed to open store, disabling", slog.Any("error", err))
		return nil, func() {}
	}
	log.Info("history: store opened", slog.String("path", dbPath))
	return hs, func() { _ = hs.Close() }
}

// getEnvOrDefault returns the value of the named environment variable, or
// fallback if the variable is unset or empty.
func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt returns the integer value of the named environment variable, or
// fallback if the variable is unset, empty, or not parseable.
func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
