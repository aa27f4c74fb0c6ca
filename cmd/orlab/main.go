package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"orlab/pkg/config"
	"orlab/pkg/console"

	_ "orlab/pkg/ai/providers"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:]))
}

func run(ctx context.Context, args []string) int {
	root := newRootCmd()
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		printer := console.NewPrinter(root.ErrOrStderr())
		printer.Error(err)
		if errors.Is(err, config.ErrMissingAPIKey) {
			fmt.Fprintln(root.ErrOrStderr(), "Please add your API key to the .env file:")
			fmt.Fprintln(root.ErrOrStderr(), "OPENROUTER_API_KEY=your_api_key_here")
		}
		return 1
	}
	return 0
}
