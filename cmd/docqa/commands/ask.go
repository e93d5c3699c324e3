package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/54b3r/docqa-go/internal/logging"
)

// NewAskCmd constructs the `docqa ask` command, which answers a single
// question and exits.
func NewAskCmd() *cobra.Command {
	var showSources bool

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask one question about the indexed documents",
		Long: `Answer a single natural language question from the indexed documents and
print the result.

Run 'docqa ingest' first to index your documents folder.

Examples:
  docqa ask "what warranty period does the contract specify?"
  docqa ask --sources "summarise the findings of the Q3 report"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.New()

			engine, _, _, closer, err := buildEngine(ctx, log)
			if err != nil {
				return fmt.Errorf("ask: %w", err)
			}
			defer closer()

			res, err := engine.Answer(ctx, args[0])
			if err != nil {
				return fmt.Errorf("ask: %w", err)
			}

			fmt.Println(res.Answer)

			if showSources {
				fmt.Println()
				for i, doc := range res.Sources {
					fmt.Printf("  [%d] %s (score %.3f)\n", i+1, doc.Source, doc.Score)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showSources, "sources", "s", false, "Print the retrieved source chunks under the answer")

	return cmd
}
