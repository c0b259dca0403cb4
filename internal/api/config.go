package api

import (
	"net/http"
	"strings"

	"github.com/mkcodedev2/persona-realista/internal/models"
	"github.com/mkcodedev2/persona-realista/internal/service"
	apperrors "github.com/mkcodedev2/persona-realista/pkg/errors"

	"github.com/gin-gonic/gin"
)

type ConfigHandler struct {
	configs *service.ConfigService
}

func NewConfigHandler(configs *service.ConfigService) *ConfigHandler {
	return &ConfigHandler{configs: configs}
}

// aiConfigView is what GET /config returns. Keys are masked; only the last
// four characters survive so the UI can show which key is loaded.
type aiConfigView struct {
	OpenAIAPIKey     string  `json:"openai_api_key"`
	AnthropicAPIKey  string  `json:"anthropic_api_key"`
	OpenRouterAPIKey string  `json:"openrouter_api_key"`
	CohereAPIKey     string  `json:"cohere_api_key"`
	GroqAPIKey       string  `json:"groq_api_key"`
	SelectedModel    string  `json:"selected_model"`
	Temperature      float64 `json:"temperature"`
	MaxTokens        int     `json:"max_tokens"`
}

func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", 8) + key[len(key)-4:]
}

func viewOf(cfg *models.AIConfig) aiConfigView {
	return aiConfigView{
		OpenAIAPIKey:     maskKey(cfg.OpenAIAPIKey),
		AnthropicAPIKey:  maskKey(cfg.AnthropicAPIKey),
		OpenRouterAPIKey: maskKey(cfg.OpenRouterAPIKey),
		CohereAPIKey:     maskKey(cfg.CohereAPIKey),
		GroqAPIKey:       maskKey(cfg.GroqAPIKey),
		SelectedModel:    cfg.SelectedModel,
		Temperature:      cfg.Temperature,
		MaxTokens:        cfg.MaxTokens,
	}
}

func (h *ConfigHandler) GetConfig(c *gin.Context) {
	cfg, err := h.configs.Get()
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, viewOf(cfg))
}

func (h *ConfigHandler) UpdateConfig(c *gin.Context) {
	var req models.UpdateAIConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewBadRequestError("INVALID_REQUEST", err.Error()))
		return
	}

	cfg, err := h.configs.Update(&req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, viewOf(cfg))
}
