package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"orlab/pkg/ai"
	"orlab/pkg/config"
)

func init() {
	ai.RegisterProvider(ai.ProviderInfo{
		Type:        ai.ProviderHTTP,
		Name:        "OpenRouter (HTTP)",
		Description: "Plain JSON POST to the OpenRouter chat-completions endpoint",
	}, NewHTTPProvider)
}

// HTTPProvider talks to the chat-completions endpoint with a bare JSON POST.
type HTTPProvider struct {
	baseURL      string
	apiKey       string
	referer      string
	title        string
	defaultModel string
	httpClient   *http.Client
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireRequest struct {
	Model    string        `json:"model"`
	Messages []wireMessage `json:"messages"`
}

type wireResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string  `json:"role"`
			Content *string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage ai.Usage `json:"usage"`
}

// NewHTTPProvider creates the plain HTTP provider from config.
func NewHTTPProvider(cfg ai.ProviderConfig) (ai.Provider, error) {
	return NewHTTPProviderFromConfig(cfg.Config.OpenRouter)
}

// NewHTTPProviderFromConfig creates a provider directly from OpenRouterConfig.
func NewHTTPProviderFromConfig(cfg config.OpenRouterConfig) (*HTTPProvider, error) {
	httpClient := &http.Client{Timeout: time.Duration(cfg.APITimeoutSeconds) * time.Second}
	return newHTTPProviderWithClient(cfg, httpClient)
}

func newHTTPProviderWithClient(cfg config.OpenRouterConfig, httpClient *http.Client) (*HTTPProvider, error) {
	if err := validateOpenRouterConfig(cfg); err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.APITimeoutSeconds) * time.Second}
	}

	slog.Debug("http_provider_ready",
		"api_url", cfg.APIURL,
		"model", cfg.Model,
		"timeout_seconds", cfg.APITimeoutSeconds,
	)
	return &HTTPProvider{
		baseURL:      strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/"),
		apiKey:       cfg.APIKey,
		referer:      strings.TrimSpace(cfg.HTTPReferer),
		title:        strings.TrimSpace(cfg.XTitle),
		defaultModel: cfg.Model,
		httpClient:   httpClient,
	}, nil
}

// CreateChatCompletion sends the request once and decodes the reply.
func (p *HTTPProvider) CreateChatCompletion(ctx context.Context, req ai.ChatRequest) (ai.ChatResponse, error) {
	body, err := p.buildRequest(req)
	if err != nil {
		return ai.ChatResponse{}, err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return ai.ChatResponse{}, fmt.Errorf("marshal request: %w", err)
	}

	url := p.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return ai.ChatResponse{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	if p.referer != "" {
		httpReq.Header.Set("HTTP-Referer", p.referer)
	}
	if p.title != "" {
		httpReq.Header.Set("X-Title", p.title)
	}

	slog.Debug("openrouter_http_request",
		"url", url,
		"model", body.Model,
		"message_count", len(body.Messages),
		"request_size", len(payload),
	)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		slog.Debug("openrouter_http_send_error", "error", err)
		return ai.ChatResponse{}, &ai.TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return ai.ChatResponse{}, &ai.TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	slog.Debug("openrouter_http_response",
		"status_code", resp.StatusCode,
		"response_size", len(raw),
	)

	if resp.StatusCode != http.StatusOK {
		return ai.ChatResponse{}, &ai.TransportError{
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	}

	return decodeResponse(raw)
}

func (p *HTTPProvider) buildRequest(req ai.ChatRequest) (wireRequest, error) {
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = p.defaultModel
	}
	if strings.TrimSpace(model) == "" {
		return wireRequest{}, fmt.Errorf("model is required")
	}
	if len(req.Messages) == 0 {
		return wireRequest{}, fmt.Errorf("messages are required")
	}

	messages := make([]wireMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, wireMessage{Role: msg.Role, Content: msg.Content})
	}

	return wireRequest{Model: model, Messages: messages}, nil
}

func decodeResponse(raw []byte) (ai.ChatResponse, error) {
	var decoded wireResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return ai.ChatResponse{}, &ai.ParseError{Reason: "decode body", Err: err}
	}
	if len(decoded.Choices) == 0 || decoded.Choices[0].Message.Content == nil {
		return ai.ChatResponse{}, &ai.ParseError{Reason: "missing choices[0].message.content"}
	}

	return ai.ChatResponse{
		Content: *decoded.Choices[0].Message.Content,
		Model:   decoded.Model,
		Usage:   decoded.Usage,
	}, nil
}

func validateOpenRouterConfig(cfg config.OpenRouterConfig) error {
	if strings.TrimSpace(cfg.APIKey) == "" {
		slog.Debug("openrouter_provider_missing_key")
		return fmt.Errorf("openrouter api_key is required")
	}
	if strings.TrimSpace(cfg.APIURL) == "" {
		return fmt.Errorf("openrouter api_url is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return fmt.Errorf("openrouter model is required")
	}
	if cfg.APITimeoutSeconds < 0 {
		return fmt.Errorf("openrouter api_timeout_seconds must not be negative")
	}
	return nil
}

// Ensure interface compliance
var _ ai.Provider = (*HTTPProvider)(nil)
