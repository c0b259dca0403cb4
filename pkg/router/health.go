package router

import (
	"github.com/mkcodedev2/persona-realista/pkg/config"
	"github.com/mkcodedev2/persona-realista/pkg/di"
	"github.com/mkcodedev2/persona-realista/pkg/health"
)

// newHealthChecker registers the component checks the service depends on.
func newHealthChecker(container *di.Container) *health.Checker {
	checker := health.NewChecker(container.Logger)

	checker.RegisterCheck("database", func() (health.Status, string, error) {
		if err := config.TestConnection(container.DB); err != nil {
			return health.StatusDown, "database unreachable", err
		}
		return health.StatusUp, "database connection ok", nil
	})

	checker.RegisterCheck("ai_config", func() (health.Status, string, error) {
		cfg, err := container.ConfigService.Current()
		if err != nil {
			return health.StatusDown, "AI configuration missing", err
		}
		if cfg.OpenAIAPIKey == "" && cfg.AnthropicAPIKey == "" &&
			cfg.OpenRouterAPIKey == "" && cfg.CohereAPIKey == "" && cfg.GroqAPIKey == "" {
			return health.StatusDegraded, "no provider API key configured", nil
		}
		return health.StatusUp, "AI configuration loaded", nil
	})

	return checker
}

// setupHealthRoutes registers health check endpoints
func (r *Router) setupHealthRoutes() {
	handler := r.Health.Handler()
	r.Engine.GET("/health", handler)
	r.Engine.GET("/api/health", handler)
}
