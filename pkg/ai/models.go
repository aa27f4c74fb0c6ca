package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const modelsRequestTimeout = 15 * time.Second

// ModelPricing holds per-token USD prices as the decimal strings the API
// returns.
type ModelPricing struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

// ModelInfo captures the fields needed for model selection and display.
type ModelInfo struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	ContextLength int          `json:"context_length"`
	Pricing       ModelPricing `json:"pricing"`
}

type modelListResponse struct {
	Data []ModelInfo `json:"data"`
}

// ModelCache stores the cached model list with a timestamp.
type ModelCache struct {
	UpdatedAt time.Time   `json:"updated_at"`
	Models    []ModelInfo `json:"models"`
}

// FetchModels retrieves the model catalog from the API, sorted by ID.
func FetchModels(ctx context.Context, apiURL string) ([]ModelInfo, error) {
	return fetchModels(ctx, apiURL, &http.Client{Timeout: modelsRequestTimeout})
}

func fetchModels(ctx context.Context, apiURL string, client *http.Client) ([]ModelInfo, error) {
	modelsURL, err := buildModelsURL(apiURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, modelsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create models request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	slog.Debug("models_fetch_start", "url", modelsURL)
	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("fetch models: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var payload modelListResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &ParseError{Reason: "decode models response", Err: err}
	}

	sort.Slice(payload.Data, func(i, j int) bool {
		return payload.Data[i].ID < payload.Data[j].ID
	})

	slog.Debug("models_fetch_done", "count", len(payload.Data))
	return payload.Data, nil
}

// RefreshModelCache fetches models and writes the cache to disk.
func RefreshModelCache(ctx context.Context, apiURL, cachePath string) (ModelCache, error) {
	models, err := FetchModels(ctx, apiURL)
	if err != nil {
		return ModelCache{}, err
	}

	cache := ModelCache{
		UpdatedAt: time.Now().UTC(),
		Models:    models,
	}
	if err := SaveModelCache(cachePath, cache); err != nil {
		return ModelCache{}, err
	}

	return cache, nil
}

// LoadModelCache loads the model cache from disk.
func LoadModelCache(path string) (ModelCache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ModelCache{}, err
	}

	var cache ModelCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return ModelCache{}, fmt.Errorf("parse model cache: %w", err)
	}

	return cache, nil
}

// SaveModelCache writes the model cache to disk.
func SaveModelCache(path string, cache ModelCache) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create model cache directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write model cache: %w", err)
	}

	return nil
}

// FindModel looks up a model by exact ID.
func FindModel(models []ModelInfo, id string) (ModelInfo, bool) {
	id = strings.TrimSpace(id)
	for _, m := range models {
		if m.ID == id {
			return m, true
		}
	}
	return ModelInfo{}, false
}

func buildModelsURL(apiURL string) (string, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		return "", fmt.Errorf("api_url is required")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid api_url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("api_url must include scheme and host")
	}

	basePath := strings.TrimRight(parsed.Path, "/")
	parsed.Path = basePath + "/models"

	return parsed.String(), nil
}
