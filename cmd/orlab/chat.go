package main

import (
	"io"
	"os"

	"orlab/pkg/chat"
	"orlab/pkg/persona"
	"orlab/pkg/repl"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newChatCmd(a *app) *cobra.Command {
	var (
		model     string
		personaID string
		noMenu    bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat",
		Long: `Pick a model and a personality, then chat. The whole conversation is
sent with every message so the model remembers earlier turns.

Type quit, exit, bye or goodbye to leave. /summary, /history and /copy are
available during the chat. On a terminal the menus are keyboard pickers;
otherwise they read a number from input.

Personalities: helpful, creative, technical, friendly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, err := a.provider()
			if err != nil {
				return err
			}
			printer := newPrinter(cmd)
			ctx := cmd.Context()
			in := cmd.InOrStdin()
			lines := repl.NewLineReader(in)

			printer.Banner("Custom Chat Application")

			var menu repl.Menu = repl.NumberedMenu{Lines: lines, Printer: printer}
			if isTerminal(in) && printer.Color() {
				menu = repl.PickerMenu{In: in, Out: cmd.OutOrStdout()}
			}

			selectedModel := model
			if selectedModel == "" {
				if noMenu {
					selectedModel = a.cfg.OpenRouter.Model
				} else {
					m, err := menu.ChooseModel(ctx)
					if err != nil {
						return err
					}
					selectedModel = m.ID
				}
			}

			var selected persona.Persona
			switch {
			case personaID != "":
				selected = persona.PersonaByChoice(personaID)
			case noMenu:
				selected = persona.DefaultPersona()
			default:
				selected, err = menu.ChoosePersona(ctx)
				if err != nil {
					return err
				}
			}

			session := chat.New(provider, selectedModel, selected.Prompt)
			return repl.New(session, lines, printer).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "model to chat with (skips the model menu)")
	cmd.Flags().StringVar(&personaID, "persona", "", "personality id or menu number (skips the personality menu)")
	cmd.Flags().BoolVar(&noMenu, "no-menu", false, "use defaults instead of asking")
	return cmd
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
