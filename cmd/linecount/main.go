package main

import (
	"fmt"
	"os"

	"github.com/sonemaro/linecount/cmd/linecount/app"
	"github.com/sonemaro/linecount/cmd/linecount/commands"
)

func main() {
	ctx, stop := app.SignalContext()
	defer stop()

	if err := commands.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
