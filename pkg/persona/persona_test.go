package persona

import "testing"

func TestModelByChoice(t *testing.T) {
	tests := []struct {
		choice string
		want   string
	}{
		{choice: "", want: "openai/gpt-3.5-turbo"},
		{choice: "1", want: "openai/gpt-3.5-turbo"},
		{choice: "2", want: "anthropic/claude-3-haiku"},
		{choice: " 3 ", want: "meta-llama/llama-3.1-8b-instruct"},
		{choice: "4", want: "openai/gpt-3.5-turbo"},
		{choice: "12", want: "openai/gpt-3.5-turbo"},
		{choice: "abc", want: "openai/gpt-3.5-turbo"},
	}

	for _, tt := range tests {
		if got := ModelByChoice(tt.choice); got.ID != tt.want {
			t.Errorf("ModelByChoice(%q) = %q, want %q", tt.choice, got.ID, tt.want)
		}
	}
}

func TestPersonaByChoice(t *testing.T) {
	tests := []struct {
		choice string
		want   string
	}{
		{choice: "", want: "Helpful Assistant"},
		{choice: "2", want: "Creative Writer"},
		{choice: "3", want: "Technical Expert"},
		{choice: "4", want: "Friendly Chatbot"},
		{choice: "5", want: "Helpful Assistant"},
		{choice: "Technical", want: "Technical Expert"},
		{choice: "pirate", want: "Helpful Assistant"},
	}

	for _, tt := range tests {
		if got := PersonaByChoice(tt.choice); got.Name != tt.want {
			t.Errorf("PersonaByChoice(%q) = %q, want %q", tt.choice, got.Name, tt.want)
		}
	}
}

func TestDefaults(t *testing.T) {
	if DefaultModel().ID != DefaultCompareModels[0] {
		t.Fatalf("Expected default model to lead the comparison list, got %q", DefaultModel().ID)
	}
	if DefaultPersona().Prompt != "You are a helpful, knowledgeable, and friendly AI assistant." {
		t.Fatalf("Unexpected default persona prompt: %q", DefaultPersona().Prompt)
	}
}

func TestCatalogReturnsCopies(t *testing.T) {
	personas := Personas()
	personas[0].Prompt = "changed"
	if Personas()[0].Prompt == "changed" {
		t.Fatal("Expected Personas() to return a fresh slice")
	}
}
