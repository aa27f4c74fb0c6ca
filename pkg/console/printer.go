// Package console renders program output for a terminal or a plain stream.
package console

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"orlab/pkg/ai"
	"orlab/pkg/chat"
	"orlab/pkg/compare"

	"charm.land/lipgloss/v2"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	defaultWidth = 80
	maxWidth     = 100

	// BannerWidth and SectionWidth match the rule lengths of the chat and
	// comparison screens.
	BannerWidth  = 50
	SectionWidth = 80
)

// Printer writes styled output. Styling is applied only when the
// destination is a terminal; otherwise output is plain text.
type Printer struct {
	out   io.Writer
	color bool
	width int
}

type fdWriter interface {
	Fd() uintptr
}

// NewPrinter detects whether out is a terminal and sizes wrapping to it.
func NewPrinter(out io.Writer) *Printer {
	p := NewPlainPrinter(out, defaultWidth)
	if f, ok := out.(fdWriter); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			p.color = os.Getenv("NO_COLOR") == ""
			if w, _, err := term.GetSize(fd); err == nil && w > 0 {
				p.width = min(w, maxWidth)
			}
		}
	}
	return p
}

// NewPlainPrinter returns a printer that never emits escape sequences.
func NewPlainPrinter(out io.Writer, width int) *Printer {
	if width <= 0 {
		width = defaultWidth
	}
	return &Printer{out: out, width: width}
}

// Color reports whether output is styled.
func (p *Printer) Color() bool { return p.color }

func (p *Printer) render(style lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return style.Render(text)
}

// Println writes a plain line.
func (p *Printer) Println(a ...any) {
	_, _ = fmt.Fprintln(p.out, a...)
}

// Printf writes plain formatted text.
func (p *Printer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(p.out, format, a...)
}

// Banner prints a title underlined with a rule.
func (p *Printer) Banner(title string) {
	p.Println(p.render(TitleStyle, title))
	p.Rule("=", BannerWidth)
}

// Section prints a title framed by rules of the given width.
func (p *Printer) Section(title string, width int) {
	p.Println()
	p.Rule("=", width)
	p.Println(p.render(TitleStyle, title))
	p.Rule("=", width)
}

// Rule prints a horizontal rule.
func (p *Printer) Rule(ch string, width int) {
	p.Println(p.render(FooterStyle, strings.Repeat(ch, width)))
}

// Success prints a success line.
func (p *Printer) Success(format string, a ...any) {
	p.Println(p.render(SuccessStyle, fmt.Sprintf(format, a...)))
}

// Error prints an error line prefixed with "Error:".
func (p *Printer) Error(err error) {
	p.Println(p.render(ErrorStyle, "Error: "+err.Error()))
}

// Warning prints a line for a degraded but non-fatal condition.
func (p *Printer) Warning(format string, a ...any) {
	p.Println(p.render(WarningStyle, fmt.Sprintf(format, a...)))
}

// Muted prints secondary text.
func (p *Printer) Muted(format string, a ...any) {
	p.Println(p.render(TextMutedStyle, fmt.Sprintf(format, a...)))
}

// KeyValue prints an indented "label: value" line.
func (p *Printer) KeyValue(label, value string) {
	p.Printf("   %s %s\n", p.render(LabelStyle, label+":"), value)
}

// Prompt writes a label without a trailing newline.
func (p *Printer) Prompt(label string) {
	p.Printf("%s ", p.render(UserStyle, label))
}

// Reply prints a labelled message, word-wrapped to the printer width with
// continuation lines aligned under the first.
func (p *Printer) Reply(label, text string) {
	prefix := label + " "
	indent := utf8.RuneCountInString(prefix)
	limit := p.width - indent
	if limit < 20 {
		limit = 20
	}

	wrapped := ansi.Wordwrap(text, limit, "")
	lines := strings.Split(wrapped, "\n")
	p.Printf("%s%s\n", p.render(AssistantStyle, prefix), lines[0])
	pad := strings.Repeat(" ", indent)
	for _, line := range lines[1:] {
		if line == "" {
			p.Println()
			continue
		}
		p.Printf("%s%s\n", pad, line)
	}
}

// ComparisonSummary prints a table of the models that answered followed
// by the ones that failed.
func (p *Printer) ComparisonSummary(results []compare.Result, showCost bool) {
	p.Section("COMPARISON SUMMARY", SectionWidth)

	ok := compare.Successful(results)
	if len(ok) == 0 {
		p.Muted("No model returned a response.")
	} else {
		headers := []string{"Model", "Time", "Tokens", "Chars"}
		if showCost {
			headers = append(headers, "Cost")
		}
		rows := make([][]string, 0, len(ok))
		for _, r := range ok {
			row := []string{
				r.Model,
				fmt.Sprintf("%.2fs", r.Elapsed.Seconds()),
				strconv.Itoa(r.Tokens),
				strconv.Itoa(utf8.RuneCountInString(r.Reply)),
			}
			if showCost {
				cost := "n/a"
				if r.HasCost {
					cost = ai.FormatCost(r.Cost)
				}
				row = append(row, cost)
			}
			rows = append(rows, row)
		}
		p.table(headers, rows)
	}

	var failed []compare.Result
	for _, r := range results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	if len(failed) > 0 {
		p.Println()
		p.Println(p.render(ErrorStyle, "Failed:"))
		for _, r := range failed {
			p.Printf("  %s: %s\n", r.Model, r.Err)
		}
	}
}

// table prints rows with the first column left-aligned and the rest
// right-aligned, measured in terminal cells.
func (p *Printer) table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	format := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			if i == 0 {
				parts[i] = PadPlain(cell, widths[i])
			} else {
				parts[i] = PadLeft(cell, widths[i])
			}
		}
		return strings.Join(parts, "  ")
	}

	total := 2 * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}

	p.Println(p.render(LabelStyle, format(headers)))
	p.Println(p.render(FooterStyle, strings.Repeat("-", total)))
	for _, row := range rows {
		p.Println(format(row))
	}
}

// ConversationSummary prints the end-of-chat counts.
func (p *Printer) ConversationSummary(sum chat.Summary) {
	p.Section("CONVERSATION SUMMARY", BannerWidth)
	p.KeyValue("Model", sum.Model)
	p.KeyValue("Total messages", strconv.Itoa(sum.TotalMessages))
	p.KeyValue("Your messages", strconv.Itoa(sum.UserMessages))
	p.KeyValue("AI responses", strconv.Itoa(sum.AssistantMessages))
}

// History prints the transcript, persona included.
func (p *Printer) History(msgs []chat.Message) {
	if len(msgs) == 0 {
		p.Muted("No messages yet.")
		return
	}
	for i, m := range msgs {
		label := fmt.Sprintf("[%d] %s:", i+1, m.Role)
		p.Reply(label, m.Content)
	}
}

// CopyToClipboard writes text to the terminal clipboard with an OSC 52
// escape sequence.
func (p *Printer) CopyToClipboard(text string) error {
	_, err := fmt.Fprint(p.out, osc52.New(text))
	return err
}
