package compare

import (
	"context"
	"errors"
	"testing"
	"time"

	"orlab/pkg/ai"
)

type scriptedProvider struct {
	requests []ai.ChatRequest
	failFor  map[string]error
}

func (p *scriptedProvider) CreateChatCompletion(_ context.Context, req ai.ChatRequest) (ai.ChatResponse, error) {
	p.requests = append(p.requests, req)
	if err := p.failFor[req.Model]; err != nil {
		return ai.ChatResponse{}, err
	}
	return ai.ChatResponse{
		Content: "reply from " + req.Model,
		Model:   req.Model,
		Usage:   ai.Usage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30},
	}, nil
}

func fakeClock(step time.Duration) func() time.Time {
	t := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestRun_OrderAndErrors(t *testing.T) {
	provider := &scriptedProvider{failFor: map[string]error{
		"b": &ai.TransportError{StatusCode: 429, Body: "rate limited"},
	}}
	models := []string{"a", "b", "c"}

	var started []string
	var seen []int
	results := Run(context.Background(), provider, "why?", models, Options{
		OnStart:  func(_ int, model string) { started = append(started, model) },
		OnResult: func(i int, _ Result) { seen = append(seen, i) },
		now:      fakeClock(500 * time.Millisecond),
	})

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	for i, model := range models {
		if results[i].Model != model {
			t.Errorf("result %d: got model %q, want %q", i, results[i].Model, model)
		}
		if provider.requests[i].Model != model {
			t.Errorf("request %d: got model %q, want %q", i, provider.requests[i].Model, model)
		}
		if started[i] != model || seen[i] != i {
			t.Errorf("callbacks out of order: started=%v seen=%v", started, seen)
		}
	}

	if results[1].OK() || ai.StatusCode(results[1].Err) != 429 {
		t.Fatalf("Expected model b to record a 429, got %v", results[1].Err)
	}
	if !results[2].OK() || results[2].Reply != "reply from c" {
		t.Fatalf("Expected run to continue after a failure, got %+v", results[2])
	}
	if results[0].Tokens != 30 {
		t.Fatalf("Expected 30 tokens, got %d", results[0].Tokens)
	}
	if results[0].Elapsed != 500*time.Millisecond {
		t.Fatalf("Expected elapsed 500ms, got %v", results[0].Elapsed)
	}
}

type cancellingProvider struct {
	scriptedProvider
	cancel context.CancelFunc
}

func (p *cancellingProvider) CreateChatCompletion(ctx context.Context, req ai.ChatRequest) (ai.ChatResponse, error) {
	p.requests = append(p.requests, req)
	p.cancel()
	return ai.ChatResponse{}, &ai.TransportError{Err: ctx.Err()}
}

func TestRun_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	provider := &cancellingProvider{cancel: cancel}

	results := Run(ctx, provider, "why?", []string{"a", "b", "c"}, Options{})

	if len(provider.requests) != 1 {
		t.Fatalf("Expected 1 request before stopping, got %d", len(provider.requests))
	}
	if len(results) != 1 || results[0].Model != "a" || results[0].OK() {
		t.Fatalf("Expected only the interrupted model a to be recorded, got %+v", results)
	}
}

func TestRun_SingleUserMessagePerModel(t *testing.T) {
	provider := &scriptedProvider{}
	Run(context.Background(), provider, "hello", []string{"a", "b"}, Options{})

	for i, req := range provider.requests {
		if len(req.Messages) != 1 {
			t.Fatalf("request %d: expected 1 message, got %d", i, len(req.Messages))
		}
		if req.Messages[0].Role != "user" || req.Messages[0].Content != "hello" {
			t.Fatalf("request %d: unexpected message %+v", i, req.Messages[0])
		}
	}
}

func TestRun_Costs(t *testing.T) {
	catalog := []ai.ModelInfo{
		{ID: "a", Pricing: ai.ModelPricing{Prompt: "0.001", Completion: "0.002"}},
	}
	results := Run(context.Background(), &scriptedProvider{}, "x", []string{"a", "b"}, Options{Catalog: catalog})

	if !results[0].HasCost || results[0].Cost.String() != "0.05" {
		t.Fatalf("Expected cost 0.05 for model a, got %s (%v)", results[0].Cost, results[0].HasCost)
	}
	if results[1].HasCost {
		t.Fatal("Expected no cost for a model missing from the catalog")
	}
}

func TestSuccessful(t *testing.T) {
	results := []Result{
		{Model: "a"},
		{Model: "b", Err: errors.New("boom")},
		{Model: "c"},
	}
	ok := Successful(results)
	if len(ok) != 2 || ok[0].Model != "a" || ok[1].Model != "c" {
		t.Fatalf("Unexpected successful results: %+v", ok)
	}
	if Successful(nil) != nil {
		t.Fatal("Expected nil for no results")
	}
}
