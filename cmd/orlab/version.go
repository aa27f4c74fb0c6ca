package main

import (
	"fmt"
	"io"

	"orlab/pkg/ai"
	"orlab/pkg/version"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information and the available transports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, version.Info()); err != nil {
				return err
			}
			return printTransports(out, ai.ListProviders())
		},
	}
}

// printTransports lists the values accepted by OPENROUTER_TRANSPORT.
func printTransports(w io.Writer, providers []ai.ProviderInfo) error {
	if _, err := fmt.Fprintln(w, "  transports (OPENROUTER_TRANSPORT):"); err != nil {
		return err
	}
	for _, p := range providers {
		if _, err := fmt.Fprintf(w, "    %-8s %s: %s\n", p.Type, p.Name, p.Description); err != nil {
			return err
		}
	}
	return nil
}
