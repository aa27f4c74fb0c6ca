package ai

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEstimateCost(t *testing.T) {
	model := ModelInfo{
		ID:      "openai/gpt-3.5-turbo",
		Pricing: ModelPricing{Prompt: "0.0000005", Completion: "0.0000015"},
	}
	usage := Usage{PromptTokens: 1000, CompletionTokens: 2000, TotalTokens: 3000}

	cost, ok := EstimateCost(model, usage)
	if !ok {
		t.Fatal("Expected cost to be estimated")
	}
	want := decimal.RequireFromString("0.0035")
	if !cost.Equal(want) {
		t.Fatalf("Expected cost %s, got %s", want, cost)
	}
	if got := FormatCost(cost); got != "$0.003500" {
		t.Fatalf("Expected formatted cost '$0.003500', got %q", got)
	}
}

func TestEstimateCost_MissingPricing(t *testing.T) {
	tests := []struct {
		name    string
		pricing ModelPricing
	}{
		{name: "empty", pricing: ModelPricing{}},
		{name: "prompt only", pricing: ModelPricing{Prompt: "0.1"}},
		{name: "garbage", pricing: ModelPricing{Prompt: "free", Completion: "0.1"}},
		{name: "negative", pricing: ModelPricing{Prompt: "-1", Completion: "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := EstimateCost(ModelInfo{Pricing: tt.pricing}, Usage{PromptTokens: 1}); ok {
				t.Fatalf("Expected no estimate for %+v", tt.pricing)
			}
		})
	}
}

func TestEstimateCost_FreeModel(t *testing.T) {
	cost, ok := EstimateCost(ModelInfo{Pricing: ModelPricing{Prompt: "0", Completion: "0"}}, Usage{PromptTokens: 50, CompletionTokens: 50})
	if !ok || !cost.IsZero() {
		t.Fatalf("Expected zero cost for free model, got %s, %v", cost, ok)
	}
}

func TestPerMillion(t *testing.T) {
	price, ok := PerMillion("0.0000015")
	if !ok || price.StringFixed(2) != "1.50" {
		t.Fatalf("Expected $1.50 per million, got %s, %v", price, ok)
	}
	if _, ok := PerMillion(""); ok {
		t.Fatal("Expected empty rate to report false")
	}
}
