package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mkcodedev2/persona-realista/internal/models"
)

const anthropicVersion = "2023-06-01"

// anthropicAdapter speaks the Anthropic messages API: the persona prompt
// travels in a dedicated system field, separated from the turn list.
type anthropicAdapter struct {
	baseURL    string
	httpClient *http.Client
}

func newAnthropicAdapter(baseURL string, httpClient *http.Client) *anthropicAdapter {
	return &anthropicAdapter{baseURL: baseURL, httpClient: httpClient}
}

func (a *anthropicAdapter) provider() Provider {
	return ProviderAnthropic
}

type anthropicRequest struct {
	Model       string        `json:"model"`
	System      string        `json:"system"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (a *anthropicAdapter) call(ctx context.Context, conversation []ChatMessage, ch *models.Character, cfg models.AIConfig) (string, error) {
	if cfg.AnthropicAPIKey == "" {
		return "", missingCredential(ProviderAnthropic)
	}

	system, turns := splitSystem(conversation)

	payload := anthropicRequest{
		Model:       modelFor(ch, cfg),
		System:      system,
		Messages:    turns,
		Temperature: ch.Temperature,
		MaxTokens:   ch.MaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", networkError(ProviderAnthropic, fmt.Errorf("error marshaling request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", networkError(ProviderAnthropic, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", cfg.AnthropicAPIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", networkError(ProviderAnthropic, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", providerError(ProviderAnthropic, resp.StatusCode)
	}

	var parsed anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", networkError(ProviderAnthropic, fmt.Errorf("error decoding response: %w", err))
	}

	// Missing content degrades to an empty reply, not a failure.
	if len(parsed.Content) == 0 {
		return "", nil
	}
	return parsed.Content[0].Text, nil
}

// splitSystem extracts the first system entry and returns the remaining
// non-system turns in order.
func splitSystem(conversation []ChatMessage) (string, []ChatMessage) {
	var system string
	turns := make([]ChatMessage, 0, len(conversation))
	for _, msg := range conversation {
		if msg.Role == RoleSystem {
			if system == "" {
				system = msg.Content
			}
			continue
		}
		turns = append(turns, msg)
	}
	return system, turns
}
