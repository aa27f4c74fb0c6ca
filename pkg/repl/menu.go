package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"orlab/pkg/console"
	"orlab/pkg/persona"
	"orlab/pkg/ui/picker"
)

// Menu asks which model and persona a chat should use.
type Menu interface {
	ChooseModel(ctx context.Context) (persona.Model, error)
	ChoosePersona(ctx context.Context) (persona.Persona, error)
}

// NumberedMenu prints numbered options and reads the answer as a line.
// An empty or unrecognised answer selects the default.
type NumberedMenu struct {
	Lines   *LineReader
	Printer *console.Printer
}

func (m NumberedMenu) ChooseModel(ctx context.Context) (persona.Model, error) {
	models := persona.Models()
	m.Printer.Println("Available models:")
	for i, model := range models {
		m.Printer.Printf("   %d. %s\n", i+1, model.Label)
	}
	m.Printer.Println()
	m.Printer.Printf("Choose a model (1-%d) or press Enter for default: ", len(models))

	answer, err := m.readAnswer(ctx)
	if err != nil {
		return persona.Model{}, err
	}
	return persona.ModelByChoice(answer), nil
}

func (m NumberedMenu) ChoosePersona(ctx context.Context) (persona.Persona, error) {
	personas := persona.Personas()
	m.Printer.Println()
	m.Printer.Println("Choose AI personality:")
	for i, p := range personas {
		label := p.Name
		if i == 0 {
			label += " (default)"
		}
		m.Printer.Printf("   %d. %s\n", i+1, label)
	}
	m.Printer.Printf("Choose personality (1-%d) or press Enter for default: ", len(personas))

	answer, err := m.readAnswer(ctx)
	if err != nil {
		return persona.Persona{}, err
	}
	return persona.PersonaByChoice(answer), nil
}

func (m NumberedMenu) readAnswer(ctx context.Context) (string, error) {
	answer, err := m.Lines.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		m.Printer.Println()
		return "", nil
	}
	return answer, err
}

// PickerMenu shows the keyboard picker on a terminal. Dismissing it selects
// the default.
type PickerMenu struct {
	In  io.Reader
	Out io.Writer
}

func (m PickerMenu) ChooseModel(ctx context.Context) (persona.Model, error) {
	models := persona.Models()
	items := make([]picker.Item, len(models))
	for i, model := range models {
		items[i] = picker.Item{Title: model.Label}
	}

	idx, err := m.run(ctx, "Choose a model", items)
	if err != nil {
		return persona.Model{}, err
	}
	return models[idx], nil
}

func (m PickerMenu) ChoosePersona(ctx context.Context) (persona.Persona, error) {
	personas := persona.Personas()
	items := make([]picker.Item, len(personas))
	for i, p := range personas {
		items[i] = picker.Item{Title: p.Name, Description: p.Prompt}
	}

	idx, err := m.run(ctx, "Choose AI personality", items)
	if err != nil {
		return persona.Persona{}, err
	}
	return personas[idx], nil
}

func (m PickerMenu) run(ctx context.Context, title string, items []picker.Item) (int, error) {
	idx, err := picker.Run(ctx, m.In, m.Out, title, items, 0)
	if errors.Is(err, picker.ErrCancelled) {
		slog.Debug("menu_picker_cancelled", "title", title)
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", title, err)
	}
	return idx, nil
}
