// Package picker is a small full-screen list picker used for the model and
// persona menus when stdin is a terminal.
package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"orlab/pkg/console"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// ErrCancelled is returned by Run when the user dismisses the picker.
var ErrCancelled = errors.New("picker: cancelled")

// Item is one selectable row.
type Item struct {
	Title       string
	Description string
}

// Model is the bubbletea model behind the picker.
type Model struct {
	title    string
	items    []Item
	selected int
	scroll   int
	width    int
	height   int
	keys     KeyMap

	chosen    int
	done      bool
	cancelled bool
}

// New creates a picker with current preselected.
func New(title string, items []Item, current int) Model {
	m := Model{
		title:  title,
		items:  append([]Item(nil), items...),
		keys:   DefaultKeyMap(),
		chosen: -1,
	}
	if current >= 0 && current < len(m.items) {
		m.selected = current
	}
	m.ensureVisible(m.listHeight())
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureVisible(m.listHeight())
		return m, nil

	case tea.KeyPressMsg:
		listHeight := m.listHeight()
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, m.keys.Down):
			if m.selected < len(m.items)-1 {
				m.selected++
			}
		case key.Matches(msg, m.keys.PgUp):
			m.selected -= listHeight
		case key.Matches(msg, m.keys.PgDown):
			m.selected += listHeight
		case key.Matches(msg, m.keys.Home):
			m.selected = 0
		case key.Matches(msg, m.keys.End):
			m.selected = len(m.items) - 1
		case key.Matches(msg, m.keys.Select):
			if len(m.items) > 0 {
				m.chosen = m.selected
				m.done = true
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, m.keys.Cancel):
			m.cancelled = true
			return m, tea.Quit
		}
		m.ensureVisible(listHeight)
	}
	return m, nil
}

func (m Model) View() tea.View {
	return tea.NewView(m.render())
}

// Chosen returns the selected index once the user confirmed a row.
func (m Model) Chosen() (int, bool) {
	return m.chosen, m.done
}

// Cancelled reports whether the picker was dismissed.
func (m Model) Cancelled() bool {
	return m.cancelled
}

func (m Model) render() string {
	if m.done || m.cancelled {
		return ""
	}

	boxWidth, contentWidth, listHeight := m.dimensions()

	var content strings.Builder
	content.WriteString(console.TitleStyle.Render(m.title))
	content.WriteString("\n\n")

	if len(m.items) == 0 {
		content.WriteString(console.TextMutedStyle.Render("No options available"))
		for i := 1; i < listHeight; i++ {
			content.WriteString("\n")
		}
	} else {
		for i := 0; i < listHeight; i++ {
			index := m.scroll + i
			if index >= len(m.items) {
				content.WriteString("\n")
				continue
			}
			line := "  " + console.TruncateToWidth(m.items[index].Title, contentWidth-2)
			if index == m.selected {
				content.WriteString(console.SelectedStyle.Render(console.PadPlain(line, contentWidth)))
			} else {
				content.WriteString(console.TextStyle.Render(line))
			}
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")
	if len(m.items) > 0 {
		if desc := m.items[m.selected].Description; desc != "" {
			content.WriteString(console.TextMutedStyle.Render(console.TruncateToWidth(desc, contentWidth)))
		}
	}
	content.WriteString("\n")
	content.WriteString(console.FooterStyle.Render("Up/Down Navigate | Enter Select | Esc Cancel"))

	return console.BoxStyle.Width(boxWidth).Render(content.String())
}

func (m *Model) ensureVisible(listHeight int) {
	if len(m.items) == 0 {
		m.selected = 0
		m.scroll = 0
		return
	}

	m.selected = max(0, min(m.selected, len(m.items)-1))

	maxScroll := max(0, len(m.items)-listHeight)
	m.scroll = min(m.scroll, maxScroll)
	if m.selected < m.scroll {
		m.scroll = m.selected
	}
	if m.selected >= m.scroll+listHeight {
		m.scroll = m.selected - listHeight + 1
	}
	m.scroll = max(0, m.scroll)
}

func (m Model) dimensions() (int, int, int) {
	width := m.width
	height := m.height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	boxWidth := max(40, min(width-2, 70))
	contentWidth := max(10, boxWidth-6)
	maxContentHeight := max(7, height-4)

	// title, blank, blank, description, footer
	const fixedLines = 5
	listHeight := max(1, maxContentHeight-fixedLines)

	return boxWidth, contentWidth, listHeight
}

func (m Model) listHeight() int {
	_, _, listHeight := m.dimensions()
	return listHeight
}

// Run shows the picker on out, reading keys from in, and returns the chosen
// index.
func Run(ctx context.Context, in io.Reader, out io.Writer, title string, items []Item, current int) (int, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("picker: no items")
	}

	program := tea.NewProgram(
		New(title, items, current),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := program.Run()
	if err != nil {
		return 0, fmt.Errorf("run picker: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return 0, fmt.Errorf("run picker: unexpected model %T", final)
	}
	if m.Cancelled() {
		return 0, ErrCancelled
	}
	idx, ok := m.Chosen()
	if !ok {
		return 0, ErrCancelled
	}
	return idx, nil
}
