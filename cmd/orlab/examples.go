package main

import (
	"orlab/pkg/ai"
	"orlab/pkg/console"

	"github.com/spf13/cobra"
)

type example struct {
	title    string
	model    string
	label    string
	messages []ai.Message
}

func basicExamples(defaultModel string) []example {
	return []example{
		{
			title: "Example 1: Simple Chat",
			model: defaultModel,
			label: "AI:",
			messages: []ai.Message{
				{Role: "user", Content: "Hello! Can you tell me a fun fact about space?"},
			},
		},
		{
			title: "Example 2: Using Different Model",
			model: "anthropic/claude-3-haiku",
			label: "AI (Claude):",
			messages: []ai.Message{
				{Role: "user", Content: "Write a short poem about coding"},
			},
		},
		{
			title: "Example 3: Multi-turn Conversation",
			model: defaultModel,
			label: "AI:",
			messages: []ai.Message{
				{Role: "user", Content: "What's the capital of France?"},
				{Role: "assistant", Content: "The capital of France is Paris."},
				{Role: "user", Content: "What's the population of that city?"},
			},
		},
	}
}

func newExamplesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Run the basic usage examples",
		Long: `Run three small examples: a simple question, the same kind of request
against a different model, and a multi-turn conversation that sends prior
turns as context.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, err := a.provider()
			if err != nil {
				return err
			}
			printer := newPrinter(cmd)

			printer.Banner("OpenRouter Examples")
			for _, ex := range basicExamples(a.cfg.OpenRouter.Model) {
				runExample(cmd, provider, printer, ex)
			}
			return nil
		},
	}
}

// runExample prints a failure and returns so the next example still runs.
func runExample(cmd *cobra.Command, provider ai.Provider, printer *console.Printer, ex example) {
	printer.Println()
	printer.Println(ex.title)

	resp, err := provider.CreateChatCompletion(cmd.Context(), ai.ChatRequest{
		Model:    ex.model,
		Messages: ex.messages,
	})
	if err != nil {
		printer.Error(err)
		return
	}

	last := ex.messages[len(ex.messages)-1]
	printer.Printf("User: %s\n", last.Content)
	printer.Reply(ex.label, resp.Content)
}
