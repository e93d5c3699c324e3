// Command docqa is the entry point for the document question answering
// assistant. It ingests local documents into a vector store and answers
// questions about them via a CLI, an interactive loop, or an HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/54b3r/docqa-go/cmd/docqa/commands"
)

func main() {
	// Load .env from the working directory if present. Real env vars win.
	_ = godotenv.Load()

	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
