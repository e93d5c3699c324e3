package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/54b3r/docqa-go/internal/embedder"
	"github.com/54b3r/docqa-go/internal/ingestion"
	"github.com/54b3r/docqa-go/internal/logging"
)

// NewIngestCmd constructs the `docqa ingest` command, which indexes the
// documents folder into the vector store.
func NewIngestCmd() *cobra.Command {
	var dir string
	var reset bool

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Index the documents folder into the vector store",
		Long: `Scan the documents folder, split each supported file (.pdf, .txt, .md) into
overlapping chunks, embed the chunks, and upsert them into Qdrant.

If the folder does not exist it is created and the command reports an empty
index — drop files in and re-run. Re-running over unchanged files is
idempotent: chunk IDs are derived from file path and position.

Required environment variables:
  QDRANT_HOST          Qdrant server hostname (default: localhost)
  QDRANT_PORT          Qdrant gRPC port (default: 6334)
  QDRANT_COLLECTION    Collection name (default: docqa-docs)
  QDRANT_API_KEY       Optional API key for authenticated clusters
  EMBEDDING_*          Embedding backend overrides (provider, model, dimensions)

Examples:
  docqa ingest
  docqa ingest --dir ~/papers
  docqa ingest --reset    # drop and rebuild the collection first`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.New()

			if err := embedder.Validate(log); err != nil {
				return fmt.Errorf("ingest: %w", err)
			}

			emb, err := embedder.NewFromEnv()
			if err != nil {
				return fmt.Errorf("ingest: failed to initialise embedder: %w", err)
			}
			log.Info("embedder initialised", slog.String("provider", embedder.Backend()))

			qs, err := buildStore(log)
			if err != nil {
				return fmt.Errorf("ingest: %w", err)
			}
			defer qs.Close()

			if reset {
				if err := qs.Reset(ctx); err != nil {
					return fmt.Errorf("ingest: reset failed: %w", err)
				}
				log.Info("collection reset", slog.String("collection", collectionName()))
			} else {
				if err := qs.EnsureCollection(ctx); err != nil {
					return fmt.Errorf("ingest: %w", err)
				}
			}

			pipeline, err := ingestion.NewPipeline(emb, qs, &ingestion.Config{
				ChunkSize:    getEnvInt("DOCQA_CHUNK_SIZE", 1000),
				ChunkOverlap: getEnvInt("DOCQA_CHUNK_OVERLAP", 100),
			})
			if err != nil {
				return fmt.Errorf("ingest: failed to create pipeline: %w", err)
			}

			if dir == "" {
				dir = getEnvOrDefault("DOCQA_DOCUMENTS_DIR", defaultDocumentsDir)
			}
			log.Info("starting ingestion", slog.String("dir", dir))

			report, err := pipeline.Ingest(ctx, dir, func(msg string) {
				log.Info(msg)
			})
			if err != nil {
				return fmt.Errorf("ingest: pipeline failed: %w", err)
			}

			if report.CreatedDir {
				fmt.Printf("Created %s — add documents there and run `docqa ingest` again.\n", dir)
				return nil
			}
			if report.Files == 0 {
				fmt.Printf("No supported documents found in %s (looking for .pdf, .txt, .md).\n", dir)
				return nil
			}

			fmt.Printf("Indexed %d chunks from %d files in %s.\n",
				report.Chunks, report.Files, report.Elapsed.Round(timeRound))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Documents folder to ingest (default: $DOCQA_DOCUMENTS_DIR or ./documents)")
	cmd.Flags().BoolVar(&reset, "reset", false, "Drop and recreate the collection before ingesting")

	return cmd
}
