package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"orlab/pkg/ai"
	"orlab/pkg/console"

	"github.com/spf13/cobra"
)

func newModelsCmd(a *app) *cobra.Command {
	var (
		refresh bool
		filter  string
	)

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List models available on OpenRouter",
		Long: `List the OpenRouter model catalog with context length and per-million
token prices. The catalog is cached locally; --refresh fetches it again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.cfg.ModelCachePath()

			cache, err := ai.LoadModelCache(path)
			if refresh || errors.Is(err, os.ErrNotExist) {
				cache, err = ai.RefreshModelCache(cmd.Context(), a.cfg.OpenRouter.APIURL, path)
			}
			if err != nil {
				return fmt.Errorf("load model catalog: %w", err)
			}

			printer := newPrinter(cmd)
			printer.Muted("%d models, updated %s", len(cache.Models), cache.UpdatedAt.Format("2006-01-02 15:04 MST"))
			for _, m := range cache.Models {
				if filter != "" && !strings.Contains(strings.ToLower(m.ID), strings.ToLower(filter)) {
					continue
				}
				printer.Printf("%s  %8s  %s\n",
					console.PadPlain(console.TruncateToWidth(m.ID, 48), 48),
					strconv.Itoa(m.ContextLength),
					formatPricing(m.Pricing),
				)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch the catalog even if a cache exists")
	cmd.Flags().StringVar(&filter, "filter", "", "only show models whose id contains this text")
	return cmd
}

// formatPricing shows prompt/completion prices per million tokens.
func formatPricing(p ai.ModelPricing) string {
	perMillion := func(rate string) string {
		cost, ok := ai.PerMillion(rate)
		if !ok {
			return "?"
		}
		return "$" + cost.StringFixed(2)
	}
	return perMillion(p.Prompt) + " / " + perMillion(p.Completion)
}
