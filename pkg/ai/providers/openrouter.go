package providers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"orlab/pkg/ai"
	"orlab/pkg/config"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

func init() {
	ai.RegisterProvider(ai.ProviderInfo{
		Type:        ai.ProviderOpenAI,
		Name:        "OpenRouter (openai-go)",
		Description: "OpenRouter through the OpenAI-compatible Go SDK",
	}, NewOpenRouterProvider)
}

// OpenRouterProvider implements the Provider interface using the OpenAI SDK
// pointed at the OpenRouter base URL.
type OpenRouterProvider struct {
	client       openai.Client
	defaultModel string
}

// NewOpenRouterProvider creates a new OpenRouter provider from config.
func NewOpenRouterProvider(cfg ai.ProviderConfig) (ai.Provider, error) {
	return NewOpenRouterProviderFromConfig(cfg.Config.OpenRouter)
}

// NewOpenRouterProviderFromConfig creates a provider directly from OpenRouterConfig.
func NewOpenRouterProviderFromConfig(cfg config.OpenRouterConfig) (*OpenRouterProvider, error) {
	httpClient := &http.Client{Timeout: time.Duration(cfg.APITimeoutSeconds) * time.Second}
	return newOpenRouterProviderWithHTTPClient(cfg, httpClient)
}

func newOpenRouterProviderWithHTTPClient(cfg config.OpenRouterConfig, httpClient *http.Client) (*OpenRouterProvider, error) {
	if err := validateOpenRouterConfig(cfg); err != nil {
		return nil, err
	}

	// The SDK retries 429/5xx by default; one request per send is the contract.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.APIURL),
		option.WithMaxRetries(0),
	}

	if strings.TrimSpace(cfg.HTTPReferer) != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", cfg.HTTPReferer))
	}
	if strings.TrimSpace(cfg.XTitle) != "" {
		opts = append(opts, option.WithHeader("X-Title", cfg.XTitle))
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.APITimeoutSeconds) * time.Second}
	}
	opts = append(opts, option.WithHTTPClient(httpClient))

	client := openai.NewClient(opts...)

	slog.Debug("openrouter_provider_ready",
		"api_url", cfg.APIURL,
		"model", cfg.Model,
		"timeout_seconds", cfg.APITimeoutSeconds,
	)
	return &OpenRouterProvider{
		client:       client,
		defaultModel: cfg.Model,
	}, nil
}

// CreateChatCompletion sends a non-streaming chat completion request.
func (p *OpenRouterProvider) CreateChatCompletion(ctx context.Context, req ai.ChatRequest) (ai.ChatResponse, error) {
	params, err := p.buildChatParams(req)
	if err != nil {
		return ai.ChatResponse{}, err
	}

	slog.Debug("openrouter_chat_request",
		"model", string(params.Model),
		"message_count", len(req.Messages),
	)
	var raw *http.Response
	resp, err := p.client.Chat.Completions.New(ctx, params, option.WithResponseInto(&raw))
	if err != nil {
		return ai.ChatResponse{}, classifyError(ctx, raw, err)
	}

	if len(resp.Choices) == 0 || !resp.Choices[0].Message.JSON.Content.Valid() {
		return ai.ChatResponse{}, &ai.ParseError{Reason: "missing choices[0].message.content"}
	}

	return ai.ChatResponse{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage: ai.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

func (p *OpenRouterProvider) buildChatParams(req ai.ChatRequest) (openai.ChatCompletionNewParams, error) {
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = p.defaultModel
	}
	if strings.TrimSpace(model) == "" {
		return openai.ChatCompletionNewParams{}, fmt.Errorf("model is required")
	}
	if len(req.Messages) == 0 {
		return openai.ChatCompletionNewParams{}, fmt.Errorf("messages are required")
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, msg := range req.Messages {
		param, err := toChatMessageParam(msg)
		if err != nil {
			return openai.ChatCompletionNewParams{}, err
		}
		messages = append(messages, param)
	}

	return openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: messages,
	}, nil
}

func toChatMessageParam(msg ai.Message) (openai.ChatCompletionMessageParamUnion, error) {
	role := strings.ToLower(strings.TrimSpace(msg.Role))
	switch role {
	case "system":
		return openai.SystemMessage(msg.Content), nil
	case "user":
		return openai.UserMessage(msg.Content), nil
	case "assistant":
		return openai.AssistantMessage(msg.Content), nil
	default:
		return openai.ChatCompletionMessageParamUnion{}, fmt.Errorf("unsupported role: %s", msg.Role)
	}
}

// classifyError maps SDK failures onto the shared error taxonomy. Status
// errors keep their code and raw body. A 2xx the SDK could not decode is a
// ParseError. Everything else is a network failure.
func classifyError(ctx context.Context, raw *http.Response, err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &ai.TransportError{
			StatusCode: apiErr.StatusCode,
			Body:       errorBody(apiErr),
			Err:        err,
		}
	}
	if ctx.Err() == nil && raw != nil && raw.StatusCode >= 200 && raw.StatusCode < 300 {
		return &ai.ParseError{Reason: "decode chat completion", Err: err}
	}
	return &ai.TransportError{Err: err}
}

// errorBody returns the error response body as the server sent it.
func errorBody(apiErr *openai.Error) string {
	if apiErr.Response != nil && apiErr.Response.Body != nil {
		data, err := io.ReadAll(apiErr.Response.Body)
		if err == nil && len(data) > 0 {
			apiErr.Response.Body = io.NopCloser(bytes.NewReader(data))
			return string(data)
		}
	}
	if raw := apiErr.RawJSON(); raw != "" {
		return raw
	}
	return apiErr.Error()
}

// Ensure interface compliance
var _ ai.Provider = (*OpenRouterProvider)(nil)
