package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mkcodedev2/persona-realista/internal/models"
)

// cohereAdapter speaks the Cohere chat API: one current message plus a
// preamble and a role-remapped history.
type cohereAdapter struct {
	baseURL    string
	httpClient *http.Client
}

func newCohereAdapter(baseURL string, httpClient *http.Client) *cohereAdapter {
	return &cohereAdapter{baseURL: baseURL, httpClient: httpClient}
}

func (a *cohereAdapter) provider() Provider {
	return ProviderCohere
}

type cohereHistoryEntry struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

type cohereRequest struct {
	Model       string               `json:"model"`
	Message     string               `json:"message"`
	Preamble    string               `json:"preamble"`
	ChatHistory []cohereHistoryEntry `json:"chat_history"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int                  `json:"max_tokens"`
}

type cohereResponse struct {
	Text string `json:"text"`
}

func (a *cohereAdapter) call(ctx context.Context, conversation []ChatMessage, ch *models.Character, cfg models.AIConfig) (string, error) {
	if cfg.CohereAPIKey == "" {
		return "", missingCredential(ProviderCohere)
	}

	preamble, turns := splitSystem(conversation)

	var message string
	if len(turns) > 0 {
		message = turns[len(turns)-1].Content
		turns = turns[:len(turns)-1]
	}

	history := make([]cohereHistoryEntry, 0, len(turns))
	for _, msg := range turns {
		role := "CHATBOT"
		if msg.Role == RoleUser {
			role = "USER"
		}
		history = append(history, cohereHistoryEntry{Role: role, Message: msg.Content})
	}

	payload := cohereRequest{
		Model:       modelFor(ch, cfg),
		Message:     message,
		Preamble:    preamble,
		ChatHistory: history,
		Temperature: ch.Temperature,
		MaxTokens:   ch.MaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", networkError(ProviderCohere, fmt.Errorf("error marshaling request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/chat", bytes.NewReader(body))
	if err != nil {
		return "", networkError(ProviderCohere, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.CohereAPIKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", networkError(ProviderCohere, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", providerError(ProviderCohere, resp.StatusCode)
	}

	var parsed cohereResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", networkError(ProviderCohere, fmt.Errorf("error decoding response: %w", err))
	}

	return parsed.Text, nil
}
