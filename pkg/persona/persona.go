// Package persona holds the built-in model menu and the personalities
// offered when starting an interactive chat.
package persona

import "strings"

// Model is one entry in the model menu.
type Model struct {
	ID    string
	Label string
}

// Persona is a named system prompt.
type Persona struct {
	ID     string
	Name   string
	Prompt string
}

// DefaultCompareModels is the model list queried by the comparison run.
var DefaultCompareModels = []string{
	"openai/gpt-3.5-turbo",
	"anthropic/claude-3-haiku",
	"meta-llama/llama-3.1-8b-instruct",
}

// Models returns the menu models. The first entry is the default.
func Models() []Model {
	return []Model{
		{ID: "openai/gpt-3.5-turbo", Label: "openai/gpt-3.5-turbo (default)"},
		{ID: "anthropic/claude-3-haiku", Label: "anthropic/claude-3-haiku"},
		{ID: "meta-llama/llama-3.1-8b-instruct", Label: "meta-llama/llama-3.1-8b-instruct"},
	}
}

// Personas returns the built-in personalities. The first entry is the
// default.
func Personas() []Persona {
	return []Persona{
		{
			ID:     "helpful",
			Name:   "Helpful Assistant",
			Prompt: "You are a helpful, knowledgeable, and friendly AI assistant.",
		},
		{
			ID:     "creative",
			Name:   "Creative Writer",
			Prompt: "You are a creative and imaginative AI that loves to write stories, poems, and creative content.",
		},
		{
			ID:     "technical",
			Name:   "Technical Expert",
			Prompt: "You are a technical expert who provides detailed, accurate information about technology and programming.",
		},
		{
			ID:     "friendly",
			Name:   "Friendly Chatbot",
			Prompt: "You are a fun, casual, and entertaining AI chatbot that loves to chat and make people smile.",
		},
	}
}

// DefaultModel returns the first menu model.
func DefaultModel() Model { return Models()[0] }

// DefaultPersona returns the first persona.
func DefaultPersona() Persona { return Personas()[0] }

// ModelByChoice resolves a 1-based menu choice. Anything unrecognised,
// including an empty answer, selects the default.
func ModelByChoice(choice string) Model {
	models := Models()
	if i, ok := menuIndex(choice, len(models)); ok {
		return models[i]
	}
	return models[0]
}

// PersonaByChoice resolves a 1-based menu choice or a persona ID, falling
// back to the default.
func PersonaByChoice(choice string) Persona {
	personas := Personas()
	if i, ok := menuIndex(choice, len(personas)); ok {
		return personas[i]
	}
	if p, ok := FindByID(choice); ok {
		return p
	}
	return personas[0]
}

// FindByID looks up a persona by identifier, case-insensitively.
func FindByID(id string) (Persona, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, p := range Personas() {
		if p.ID == id {
			return p, true
		}
	}
	return Persona{}, false
}

func menuIndex(choice string, n int) (int, bool) {
	choice = strings.TrimSpace(choice)
	if len(choice) != 1 || choice[0] < '1' || choice[0] > '9' {
		return 0, false
	}
	i := int(choice[0] - '1')
	if i >= n {
		return 0, false
	}
	return i, true
}
