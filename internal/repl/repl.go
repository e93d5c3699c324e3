// Package repl provides the interactive question loop for the docqa CLI.
// Questions are answered through the retrieval pipeline; a failed question
// prints its error and the loop continues with the next one.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/54b3r/docqa-go/internal/answer"
	"github.com/54b3r/docqa-go/internal/store"
)

// historyDisplayLimit is the number of past turns shown by /history.
const historyDisplayLimit = 10

// Engine answers one question. *answer.Engine satisfies it; tests inject a fake.
type Engine interface {
	Answer(ctx context.Context, question string) (*answer.Result, error)
}

// Config holds the dependencies for a REPL.
type Config struct {
	// Engine answers the questions typed into the loop.
	Engine Engine
	// History persists answered turns. Nil disables persistence.
	History store.HistoryStore
	// Collection keys the history thread.
	Collection string
	// Input is the line source. Defaults to os.Stdin.
	Input io.Reader
	// Output receives prompts and answers. Defaults to os.Stdout.
	Output io.Writer
	// Logger is used for non-interactive diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
	// ShowSources prints retrieved source chunks under each answer.
	ShowSources bool
}

// REPL is the interactive question loop.
type REPL struct {
	engine      Engine
	history     store.HistoryStore
	collection  string
	in          io.Reader
	out         io.Writer
	log         *slog.Logger
	showSources bool
}

// New constructs a REPL. Engine must not be nil.
func New(cfg *Config) (*REPL, error) {
	if cfg == nil || cfg.Engine == nil {
		return nil, fmt.Errorf("repl: engine must not be nil")
	}
	r := &REPL{
		engine:      cfg.Engine,
		history:     cfg.History,
		collection:  cfg.Collection,
		in:          cfg.Input,
		out:         cfg.Output,
		log:         cfg.Logger,
		showSources: cfg.ShowSources,
	}
	if r.in == nil {
		r.in = os.Stdin
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	return r, nil
}

// isExitWord reports whether line is one of the loop's termination sentinels.
// Matching is case-insensitive.
func isExitWord(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "exit", "quit", "q":
		return true
	}
	return false
}

// Run starts the interactive loop. It returns when the user types an exit
// word, input reaches EOF, or the context is cancelled. Question failures are
// printed and never terminate the loop.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, "Ask a question about your documents. Type /help for commands, exit to leave.")
	scanner := bufio.NewScanner(r.in)
	// Questions can be long; lift the default 64KB line cap to 1MB.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Fprint(r.out, "docqa> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out, "\nGoodbye.")
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if isExitWord(line) {
			fmt.Fprintln(r.out, "Goodbye.")
			return nil
		}
		if strings.HasPrefix(line, "/") {
			r.runCommand(ctx, line)
			continue
		}

		r.ask(ctx, line)
	}
}

// ask answers one question and prints the result. Failures are reported to
// the user without stopping the loop.
func (r *REPL) ask(ctx context.Context, question string) {
	res, err := r.engine.Answer(ctx, question)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, res.Answer)
	fmt.Fprintln(r.out)

	if r.showSources {
		for i, doc := range res.Sources {
			fmt.Fprintf(r.out, "  [%d] %s (score %.3f)\n", i+1, doc.Source, doc.Score)
		}
		if len(res.Sources) > 0 {
			fmt.Fprintln(r.out)
		}
	}

	if r.history != nil {
		if err := r.history.Append(ctx, r.collection, question, res.Answer); err != nil {
			r.log.Warn("repl: failed to persist turn", slog.Any("error", err))
		}
	}
}

// runCommand dispatches a slash command.
func (r *REPL) runCommand(ctx context.Context, line string) {
	cmd := strings.SplitN(line, " ", 2)[0]
	switch cmd {
	case "/help":
		fmt.Fprintln(r.out, "Commands:")
		fmt.Fprintln(r.out, "  /help       Show this help")
		fmt.Fprintln(r.out, "  /sources    Toggle printing of retrieved sources")
		fmt.Fprintln(r.out, "  /history    Show recent questions for this collection")
		fmt.Fprintln(r.out, "  exit        Leave (also: quit, q)")
	case "/sources":
		r.showSources = !r.showSources
		if r.showSources {
			fmt.Fprintln(r.out, "Sources: on")
		} else {
			fmt.Fprintln(r.out, "Sources: off")
		}
	case "/history":
		r.printHistory(ctx)
	default:
		fmt.Fprintf(r.out, "Unknown command: %s\n", cmd)
	}
}

// printHistory shows the most recent turns for the current collection.
func (r *REPL) printHistory(ctx context.Context) {
	if r.history == nil {
		fmt.Fprintln(r.out, "History is disabled.")
		return
	}
	turns, err := r.history.Recent(ctx, r.collection, historyDisplayLimit)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	if len(turns) == 0 {
		fmt.Fprintln(r.out, "No history yet.")
		return
	}
	for _, t := range turns {
		fmt.Fprintf(r.out, "  [%s] %s\n", t.CreatedAt.Format("2006-01-02 15:04"), t.Question)
	}
}
