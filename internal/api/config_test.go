package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mkcodedev2/persona-realista/internal/models"
	"github.com/mkcodedev2/persona-realista/internal/service"
	"github.com/mkcodedev2/persona-realista/pkg/errors"
	"github.com/mkcodedev2/persona-realista/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memConfigRepo struct {
	stored *models.AIConfig
}

func (r *memConfigRepo) Get() (*models.AIConfig, error) {
	if r.stored == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r.stored
	return &copied, nil
}

func (r *memConfigRepo) Save(cfg *models.AIConfig) error {
	copied := *cfg
	r.stored = &copied
	return nil
}

func newConfigRouter(repo *memConfigRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	log := logger.New(logger.Config{Output: io.Discard})
	configService := service.NewConfigService(repo, log)
	handler := NewConfigHandler(configService)

	engine := gin.New()
	engine.Use(errors.ErrorHandler())
	engine.GET("/config", handler.GetConfig)
	engine.PUT("/config", handler.UpdateConfig)
	return engine
}

func TestGetConfigMasksKeys(t *testing.T) {
	repo := &memConfigRepo{stored: &models.AIConfig{
		ID:            1,
		OpenAIAPIKey:  "sk-proj-1234567890abcd",
		SelectedModel: "gpt-4o-mini",
		Temperature:   0.8,
		MaxTokens:     500,
	}}
	engine := newConfigRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/config", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "********abcd", body["openai_api_key"])
	assert.Equal(t, "", body["anthropic_api_key"])
	assert.Equal(t, "gpt-4o-mini", body["selected_model"])
}

func TestUpdateConfigPartial(t *testing.T) {
	repo := &memConfigRepo{stored: &models.AIConfig{
		ID:            1,
		OpenAIAPIKey:  "sk-old",
		SelectedModel: "gpt-4o-mini",
		Temperature:   0.8,
		MaxTokens:     500,
	}}
	engine := newConfigRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/config",
		strings.NewReader(`{"selected_model":"claude-3-haiku","temperature":0.5}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "claude-3-haiku", repo.stored.SelectedModel)
	assert.Equal(t, 0.5, repo.stored.Temperature)
	// Untouched fields survive a partial update.
	assert.Equal(t, "sk-old", repo.stored.OpenAIAPIKey)
	assert.Equal(t, 500, repo.stored.MaxTokens)
}

func TestUpdateConfigRejectsMalformedBody(t *testing.T) {
	repo := &memConfigRepo{stored: &models.AIConfig{ID: 1, SelectedModel: "gpt-4o-mini"}}
	engine := newConfigRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/config", strings.NewReader(`{"temperature":"hot"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "gpt-4o-mini", repo.stored.SelectedModel)
}
