package main

import (
	"fmt"
	"log/slog"
	"strings"

	"orlab/pkg/ai"
	"orlab/pkg/config"
	"orlab/pkg/console"
	"orlab/pkg/logging"

	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once the root has loaded config.
type app struct {
	cfg config.Config

	// newProvider is swapped in tests.
	newProvider func(config.Config) (ai.Provider, error)
}

type rootOptions struct {
	envFile  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{newProvider: ai.GetProviderFromConfig}

	cmd := &cobra.Command{
		Use:   "orlab",
		Short: "Guided examples and exercises for the OpenRouter chat API",
		Long: `orlab walks through calling the OpenRouter chat-completions API:
a single request, a side-by-side model comparison and an interactive chat
with a chosen model and personality.

Configuration is read from the environment and from a .env file in the
current directory. OPENROUTER_API_KEY is required for every command that
talks to the API. OPENROUTER_TRANSPORT picks how requests are sent; run
"orlab version" to list the transports built in.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "dotenv file to load instead of ./.env")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newAskCmd(a),
		newExamplesCmd(a),
		newCompareCmd(a),
		newChatCmd(a),
		newModelsCmd(a),
		newVersionCmd(),
	)
	return cmd
}

func (a *app) init(opts *rootOptions) error {
	var files []string
	if strings.TrimSpace(opts.envFile) != "" {
		files = append(files, opts.envFile)
	}

	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	a.cfg = cfg

	if _, err := logging.Init(cfg); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	slog.Debug("config_loaded",
		"api_url", cfg.OpenRouter.APIURL,
		"model", cfg.OpenRouter.Model,
		"transport", cfg.OpenRouter.Transport,
		"api_key", cfg.MaskedAPIKey(),
	)
	return nil
}

// provider validates the configuration and builds the configured transport.
func (a *app) provider() (ai.Provider, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	p, err := a.newProvider(a.cfg)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}
	return p, nil
}

func newPrinter(cmd *cobra.Command) *console.Printer {
	return console.NewPrinter(cmd.OutOrStdout())
}
