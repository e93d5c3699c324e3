package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/54b3r/docqa-go/internal/logging"
	"github.com/54b3r/docqa-go/internal/repl"
)

// NewChatCmd constructs the `docqa chat` command, which starts the
// interactive question loop.
func NewChatCmd() *cobra.Command {
	var showSources bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive question loop",
		Long: `Start an interactive loop for asking questions about the indexed documents.

Type a question and press Enter; type exit, quit, or q (any case) to leave.
A failed question prints its error and the loop continues. Answered
questions are persisted to the local history database (~/.docqa/history.db)
unless DOCQA_HISTORY_DB=disabled.

Examples:
  docqa chat
  docqa chat --sources`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.New()

			engine, _, _, closer, err := buildEngine(ctx, log)
			if err != nil {
				return fmt.Errorf("chat: %w", err)
			}
			defer closer()

			history, closeHistory := buildHistory(log)
			defer closeHistory()

			r, err := repl.New(&repl.Config{
				Engine:      engine,
				History:     history,
				Collection:  collectionName(),
				Logger:      log,
				ShowSources: showSources,
			})
			if err != nil {
				return fmt.Errorf("chat: %w", err)
			}

			return r.Run(ctx) //nolint:wrapcheck // CLI entry point — error goes directly to cobra
		},
	}

	cmd.Flags().BoolVarP(&showSources, "sources", "s", false, "Print the retrieved source chunks under each answer")

	return cmd
}
