package main

import (
	"errors"
	"log/slog"
	"os"

	"orlab/pkg/ai"
	"orlab/pkg/compare"
	"orlab/pkg/console"
	"orlab/pkg/persona"

	"github.com/spf13/cobra"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		prompt    string
		models    []string
		showCosts bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Ask several models the same question and compare them",
		Long: `Send the same prompt to each model in turn, print every reply as it
arrives and finish with a summary of response time, tokens and reply length.

With --costs the model catalog is consulted (from the local cache, or
fetched once) to estimate the price of each call.

Examples:
  orlab compare
  orlab compare --prompt "Summarise the plot of Hamlet" --model openai/gpt-4o-mini --model anthropic/claude-3-haiku
  orlab compare --costs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, err := a.provider()
			if err != nil {
				return err
			}
			printer := newPrinter(cmd)

			if len(models) == 0 {
				models = persona.DefaultCompareModels
			}

			opts := compare.Options{
				OnStart: func(i int, model string) {
					printer.Println()
					printer.Printf("Model %d: %s\n", i+1, model)
					printer.Rule("-", 60)
				},
				OnResult: func(_ int, r compare.Result) {
					if !r.OK() {
						printer.Error(r.Err)
						return
					}
					printer.Success("Response (%.2fs, %d tokens):", r.Elapsed.Seconds(), r.Tokens)
					printer.Reply("  ", r.Reply)
				},
			}
			if showCosts {
				opts.Catalog = a.catalog(cmd, printer)
			}

			printer.Banner("Model Comparison")
			printer.Printf("Test Prompt: %s\n", prompt)
			printer.Printf("Comparing %d models...\n", len(models))
			printer.Rule("=", 80)

			results := compare.Run(cmd.Context(), provider, prompt, models, opts)
			printer.ComparisonSummary(results, showCosts)

			if cmd.Context().Err() != nil {
				printer.Warning("Comparison interrupted after %d of %d models.", len(results), len(models))
				return nil
			}
			if len(compare.Successful(results)) == 0 {
				return errors.New("no model returned a response")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", compare.DefaultPrompt, "prompt sent to every model")
	cmd.Flags().StringArrayVar(&models, "model", nil, "model to include (repeatable)")
	cmd.Flags().BoolVar(&showCosts, "costs", false, "estimate the cost of each call from the model catalog")
	return cmd
}

// catalog returns cached model pricing, refreshing the cache when it is
// missing. Failures only disable cost estimates.
func (a *app) catalog(cmd *cobra.Command, printer *console.Printer) []ai.ModelInfo {
	path := a.cfg.ModelCachePath()
	cache, err := ai.LoadModelCache(path)
	if err == nil {
		return cache.Models
	}
	if !errors.Is(err, os.ErrNotExist) {
		slog.Debug("model_cache_unreadable", "path", path, "error", err)
	}

	cache, err = ai.RefreshModelCache(cmd.Context(), a.cfg.OpenRouter.APIURL, path)
	if err != nil {
		printer.Warning("Cost estimates unavailable: %v", err)
		return nil
	}
	return cache.Models
}
