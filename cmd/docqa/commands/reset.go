package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/54b3r/docqa-go/internal/logging"
)

// NewResetCmd constructs the `docqa reset` command, which drops and
// recreates the vector collection.
func NewResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Drop and recreate the vector collection",
		Long: `Delete the Qdrant collection and recreate it empty with the dimension of
the active embedding backend.

Use this after switching embedding models (the collection dimension must
match the embedder) or to discard a stale index. Run 'docqa ingest'
afterwards to rebuild.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.New()

			qs, err := buildStore(log)
			if err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			defer qs.Close()

			if err := qs.Reset(ctx); err != nil {
				return fmt.Errorf("reset: %w", err)
			}

			fmt.Printf("Collection %q reset. Run `docqa ingest` to rebuild the index.\n", collectionName())
			return nil
		},
	}
}
