package ai

import "context"

// Message represents a single chat message for LLM requests.
type Message struct {
	Role    string
	Content string
}

// ChatRequest defines the input to an LLM chat completion.
type ChatRequest struct {
	Model    string
	Messages []Message
}

// Usage reports token accounting returned by the remote service.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse is a normalized response from an LLM.
type ChatResponse struct {
	Content string
	Model   string
	Usage   Usage
}

// Provider defines the LLM interface used by the app. A call is a single
// blocking request/response exchange; implementations never retry.
type Provider interface {
	CreateChatCompletion(ctx context.Context, req ChatRequest) (ChatResponse, error)
}
