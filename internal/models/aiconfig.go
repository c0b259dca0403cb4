package models

import "time"

// AIConfig holds the provider credentials and generation defaults. It is
// loaded fresh for every generation call and passed by value into the
// orchestration layer, so a config edit takes effect on the next request
// without rebuilding anything.
type AIConfig struct {
	ID               uint      `json:"-" gorm:"primaryKey"`
	OpenAIAPIKey     string    `json:"openai_api_key,omitempty"`
	AnthropicAPIKey  string    `json:"anthropic_api_key,omitempty"`
	OpenRouterAPIKey string    `json:"openrouter_api_key,omitempty"`
	CohereAPIKey     string    `json:"cohere_api_key,omitempty"`
	GroqAPIKey       string    `json:"groq_api_key,omitempty"`
	SelectedModel    string    `json:"selected_model"`
	Temperature      float64   `json:"temperature"`
	MaxTokens        int       `json:"max_tokens"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// UpdateAIConfigRequest is the payload for editing the AI configuration.
type UpdateAIConfigRequest struct {
	OpenAIAPIKey     *string  `json:"openai_api_key"`
	AnthropicAPIKey  *string  `json:"anthropic_api_key"`
	OpenRouterAPIKey *string  `json:"openrouter_api_key"`
	CohereAPIKey     *string  `json:"cohere_api_key"`
	GroqAPIKey       *string  `json:"groq_api_key"`
	SelectedModel    *string  `json:"selected_model"`
	Temperature      *float64 `json:"temperature" binding:"omitempty,gte=0,lte=1"`
	MaxTokens        *int     `json:"max_tokens" binding:"omitempty,gt=0"`
}
