package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"orlab/pkg/ai"

	"github.com/spf13/cobra"
)

const defaultAskMessage = "Hello! Can you introduce yourself and tell me what you can help with?"

func newAskCmd(a *app) *cobra.Command {
	var model string

	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Send a single message and show the reply",
		Long: `Send one message to a model and print the reply with the model used,
the tokens consumed and the response time.

Examples:
  orlab ask
  orlab ask "What is the tallest mountain on Mars?"
  orlab ask --model anthropic/claude-3-haiku "Write a haiku about Go"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := a.provider()
			if err != nil {
				return err
			}
			printer := newPrinter(cmd)

			message := strings.TrimSpace(strings.Join(args, " "))
			if message == "" {
				message = defaultAskMessage
			}
			if model == "" {
				model = a.cfg.OpenRouter.Model
			}

			printer.Banner("Your First API Call")
			printer.Success("API key found! (%s)", a.cfg.MaskedAPIKey())
			printer.Println()
			printer.Printf("Sending message: %s\n", message)

			start := time.Now()
			resp, err := provider.CreateChatCompletion(cmd.Context(), ai.ChatRequest{
				Model:    model,
				Messages: []ai.Message{{Role: "user", Content: message}},
			})
			elapsed := time.Since(start)
			if err != nil {
				return fmt.Errorf("ask %s: %w", model, err)
			}

			printer.Success("Success! Here's the response:")
			printer.Reply("AI:", resp.Content)
			printer.Println()
			printer.Println("Response Info:")
			printer.KeyValue("Model used", resp.Model)
			printer.KeyValue("Tokens used", strconv.Itoa(resp.Usage.TotalTokens))
			printer.KeyValue("Response time", fmt.Sprintf("%.2f seconds", elapsed.Seconds()))
			return nil
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "model to query (defaults to OPENROUTER_MODEL)")
	return cmd
}
