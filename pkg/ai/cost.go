package ai

import (
	"strings"

	"github.com/shopspring/decimal"
)

// EstimateCost prices a call from the catalog's per-token rates. It reports
// false when either rate is missing or unparseable.
func EstimateCost(model ModelInfo, usage Usage) (decimal.Decimal, bool) {
	promptRate, ok := parseRate(model.Pricing.Prompt)
	if !ok {
		return decimal.Zero, false
	}
	completionRate, ok := parseRate(model.Pricing.Completion)
	if !ok {
		return decimal.Zero, false
	}

	prompt := promptRate.Mul(decimal.NewFromInt(int64(usage.PromptTokens)))
	completion := completionRate.Mul(decimal.NewFromInt(int64(usage.CompletionTokens)))
	return prompt.Add(completion), true
}

// PerMillion converts a per-token rate string to a price per million
// tokens.
func PerMillion(rate string) (decimal.Decimal, bool) {
	r, ok := parseRate(rate)
	if !ok {
		return decimal.Zero, false
	}
	return r.Mul(decimal.NewFromInt(1_000_000)), true
}

// FormatCost renders a USD amount with enough precision for sub-cent calls.
func FormatCost(cost decimal.Decimal) string {
	return "$" + cost.StringFixed(6)
}

func parseRate(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil || rate.IsNegative() {
		return decimal.Zero, false
	}
	return rate, true
}
