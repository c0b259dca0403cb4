package service

import (
	"context"
	"errors"
	"time"

	"github.com/mkcodedev2/persona-realista/internal/models"
	"github.com/mkcodedev2/persona-realista/internal/repository"
	"github.com/mkcodedev2/persona-realista/pkg/config"
	apperrors "github.com/mkcodedev2/persona-realista/pkg/errors"
	"github.com/mkcodedev2/persona-realista/pkg/logger"
	"github.com/mkcodedev2/persona-realista/pkg/secrets"

	"gorm.io/gorm"
)

// ConfigService owns the stored AI configuration. The orchestration layer
// never holds a config snapshot; it asks for the current value on every
// generation, so edits apply to the next request immediately.
type ConfigService struct {
	repo repository.ConfigRepository
	log  *logger.Logger
}

func NewConfigService(repo repository.ConfigRepository, log *logger.Logger) *ConfigService {
	return &ConfigService{repo: repo, log: log}
}

// EnsureSeeded creates the config row on first run from environment
// defaults, letting the secrets manager override the API keys.
func (s *ConfigService) EnsureSeeded(ctx context.Context, cfg *config.Config, sec secrets.Manager) error {
	_, err := s.repo.Get()
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	seeded := &models.AIConfig{
		OpenAIAPIKey:     cfg.AI.OpenAIAPIKey,
		AnthropicAPIKey:  cfg.AI.AnthropicAPIKey,
		OpenRouterAPIKey: cfg.AI.OpenRouterAPIKey,
		CohereAPIKey:     cfg.AI.CohereAPIKey,
		GroqAPIKey:       cfg.AI.GroqAPIKey,
		SelectedModel:    cfg.AI.SelectedModel,
		Temperature:      cfg.AI.Temperature,
		MaxTokens:        cfg.AI.MaxTokens,
		UpdatedAt:        time.Now(),
	}

	if sec != nil {
		seeded.OpenAIAPIKey = sec.GetSecretWithDefault(ctx, "OPENAI_API_KEY", seeded.OpenAIAPIKey)
		seeded.AnthropicAPIKey = sec.GetSecretWithDefault(ctx, "ANTHROPIC_API_KEY", seeded.AnthropicAPIKey)
		seeded.OpenRouterAPIKey = sec.GetSecretWithDefault(ctx, "OPENROUTER_API_KEY", seeded.OpenRouterAPIKey)
		seeded.CohereAPIKey = sec.GetSecretWithDefault(ctx, "COHERE_API_KEY", seeded.CohereAPIKey)
		seeded.GroqAPIKey = sec.GetSecretWithDefault(ctx, "GROQ_API_KEY", seeded.GroqAPIKey)
	}

	s.log.Info("seeded AI configuration", "selected_model", seeded.SelectedModel)
	return s.repo.Save(seeded)
}

// Current returns the stored configuration by value.
func (s *ConfigService) Current() (models.AIConfig, error) {
	stored, err := s.repo.Get()
	if err != nil {
		return models.AIConfig{}, apperrors.NewInternalServerError("CONFIG_UNAVAILABLE", "AI configuration is not available")
	}
	return *stored, nil
}

// Get returns the stored configuration for display.
func (s *ConfigService) Get() (*models.AIConfig, error) {
	stored, err := s.repo.Get()
	if err != nil {
		return nil, apperrors.NewInternalServerError("CONFIG_UNAVAILABLE", "AI configuration is not available")
	}
	return stored, nil
}

// Update applies the non-nil fields of the request to the stored config.
func (s *ConfigService) Update(req *models.UpdateAIConfigRequest) (*models.AIConfig, error) {
	stored, err := s.repo.Get()
	if err != nil {
		return nil, apperrors.NewInternalServerError("CONFIG_UNAVAILABLE", "AI configuration is not available")
	}

	if req.OpenAIAPIKey != nil {
		stored.OpenAIAPIKey = *req.OpenAIAPIKey
	}
	if req.AnthropicAPIKey != nil {
		stored.AnthropicAPIKey = *req.AnthropicAPIKey
	}
	if req.OpenRouterAPIKey != nil {
		stored.OpenRouterAPIKey = *req.OpenRouterAPIKey
	}
	if req.CohereAPIKey != nil {
		stored.CohereAPIKey = *req.CohereAPIKey
	}
	if req.GroqAPIKey != nil {
		stored.GroqAPIKey = *req.GroqAPIKey
	}
	if req.SelectedModel != nil {
		stored.SelectedModel = *req.SelectedModel
	}
	if req.Temperature != nil {
		stored.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		stored.MaxTokens = *req.MaxTokens
	}
	stored.UpdatedAt = time.Now()

	if err := s.repo.Save(stored); err != nil {
		return nil, err
	}
	return stored, nil
}
