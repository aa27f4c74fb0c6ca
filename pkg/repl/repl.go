// Package repl runs the interactive chat loop on top of a chat.Session.
package repl

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"orlab/pkg/ai"
	"orlab/pkg/chat"
	"orlab/pkg/console"
)

const (
	cmdSummary = "/summary"
	cmdHistory = "/history"
	cmdCopy    = "/copy"
	cmdHelp    = "/help"
)

// IsExitWord reports whether input ends the conversation.
func IsExitWord(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "quit", "exit", "bye", "goodbye":
		return true
	}
	return false
}

// REPL reads user turns, sends them through the session and prints the
// replies. Send errors are shown and the loop carries on.
type REPL struct {
	session *chat.Session
	lines   *LineReader
	printer *console.Printer
}

// New creates a REPL bound to session.
func New(session *chat.Session, lines *LineReader, printer *console.Printer) *REPL {
	return &REPL{
		session: session,
		lines:   lines,
		printer: printer,
	}
}

// Run loops until an exit word, end of input or ctx cancellation, then
// prints the conversation summary. Only input read failures are returned.
func (r *REPL) Run(ctx context.Context) error {
	r.intro()

	slog.Debug("repl_start", "session_id", r.session.ID(), "model", r.session.Model())
	err := r.loop(ctx)
	slog.Debug("repl_end", "session_id", r.session.ID(), "error", err)

	r.printer.ConversationSummary(r.session.Summary())
	return err
}

func (r *REPL) intro() {
	r.printer.Println()
	r.printer.Success("Chat initialized with %s", r.session.Model())
	if p := r.session.Persona(); p != "" {
		r.printer.Muted("Personality: %s", p)
	}
	r.printer.Println()
	r.printer.Println("Start chatting! (Type 'quit' or 'exit' to end, /help for commands)")
	r.printer.Rule("=", console.BannerWidth)
}

func (r *REPL) loop(ctx context.Context) error {
	for {
		r.printer.Println()
		r.printer.Prompt("You:")

		line, err := r.lines.ReadLine(ctx)
		if err != nil {
			r.printer.Println()
			switch {
			case errors.Is(err, io.EOF):
				return nil
			case ctx.Err() != nil:
				r.printer.Muted("Chat interrupted by user")
				return nil
			default:
				return err
			}
		}

		input := strings.TrimSpace(line)
		if IsExitWord(input) {
			return nil
		}
		if input == "" {
			continue
		}
		if strings.HasPrefix(input, "/") {
			r.command(input)
			continue
		}

		reply, err := r.session.Send(ctx, input)
		if err != nil {
			if ctx.Err() != nil {
				r.printer.Muted("Chat interrupted by user")
				return nil
			}
			slog.Debug("repl_send_error",
				"session_id", r.session.ID(),
				"transport_error", ai.IsTransportError(err),
				"error", err,
			)
			r.printer.Error(err)
			continue
		}
		r.printer.Reply("AI:", reply)
	}
}

func (r *REPL) command(input string) {
	switch strings.ToLower(strings.Fields(input)[0]) {
	case cmdSummary:
		sum := r.session.Summary()
		r.printer.KeyValue("Model", sum.Model)
		r.printer.KeyValue("Total messages", strconv.Itoa(sum.TotalMessages))
		r.printer.KeyValue("Your messages", strconv.Itoa(sum.UserMessages))
		r.printer.KeyValue("AI responses", strconv.Itoa(sum.AssistantMessages))
	case cmdHistory:
		r.printer.History(r.session.Messages())
	case cmdCopy:
		reply, ok := r.session.LastReply()
		if !ok {
			r.printer.Muted("Nothing to copy yet.")
			return
		}
		if err := r.printer.CopyToClipboard(reply); err != nil {
			r.printer.Error(err)
			return
		}
		r.printer.Success("Copied last reply to clipboard.")
	case cmdHelp:
		r.printer.KeyValue(cmdSummary, "show message counts")
		r.printer.KeyValue(cmdHistory, "show the conversation so far")
		r.printer.KeyValue(cmdCopy, "copy the last reply to the clipboard")
		r.printer.KeyValue("quit", "end the chat (also exit, bye, goodbye)")
	default:
		r.printer.Muted("Unknown command %s. Type /help for commands.", input)
	}
}
