// Package compare sends one prompt to several models in turn and records
// how each one answered.
package compare

import (
	"context"
	"log/slog"
	"time"

	"orlab/pkg/ai"

	"github.com/shopspring/decimal"
)

// DefaultPrompt is the question used when none is given.
const DefaultPrompt = "Explain quantum computing in simple terms that a 10-year-old could understand."

// Result is the outcome of querying a single model.
type Result struct {
	Model   string
	Reply   string
	Tokens  int
	Elapsed time.Duration
	Err     error

	Cost    decimal.Decimal
	HasCost bool
}

// OK reports whether the model answered.
func (r Result) OK() bool { return r.Err == nil }

// Options tunes a comparison run.
type Options struct {
	// OnResult is called after each model finishes, in order.
	OnResult func(index int, r Result)
	// OnStart is called before each model is queried.
	OnStart func(index int, model string)
	// Catalog enables cost estimates for models it lists.
	Catalog []ai.ModelInfo

	now func() time.Time
}

// Run queries each model strictly in order with a fresh single-message
// request. A failing model is recorded and the run moves on. Once ctx is
// done no further models are queried, so fewer results than models may be
// returned.
func Run(ctx context.Context, provider ai.Provider, prompt string, models []string, opts Options) []Result {
	now := opts.now
	if now == nil {
		now = time.Now
	}

	results := make([]Result, 0, len(models))
	for i, model := range models {
		if ctx.Err() != nil {
			slog.Debug("compare_interrupted", "completed", len(results), "total", len(models))
			break
		}
		if opts.OnStart != nil {
			opts.OnStart(i, model)
		}

		start := now()
		resp, err := provider.CreateChatCompletion(ctx, ai.ChatRequest{
			Model:    model,
			Messages: []ai.Message{{Role: "user", Content: prompt}},
		})
		r := Result{
			Model:   model,
			Elapsed: now().Sub(start),
			Err:     err,
		}
		if err == nil {
			r.Reply = resp.Content
			r.Tokens = resp.Usage.TotalTokens
			if info, ok := ai.FindModel(opts.Catalog, model); ok {
				r.Cost, r.HasCost = ai.EstimateCost(info, resp.Usage)
			}
		}

		slog.Debug("compare_model_done",
			"index", i,
			"model", model,
			"ok", err == nil,
			"tokens", r.Tokens,
			"duration_ms", r.Elapsed.Milliseconds(),
		)

		results = append(results, r)
		if opts.OnResult != nil {
			opts.OnResult(i, r)
		}
	}
	return results
}

// Successful returns the results that produced a reply, in order.
func Successful(results []Result) []Result {
	var ok []Result
	for _, r := range results {
		if r.OK() {
			ok = append(ok, r)
		}
	}
	return ok
}
