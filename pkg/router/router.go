package router

import (
	"github.com/mkcodedev2/persona-realista/internal/api"
	"github.com/mkcodedev2/persona-realista/pkg/di"
	"github.com/mkcodedev2/persona-realista/pkg/errors"
	"github.com/mkcodedev2/persona-realista/pkg/health"
	"github.com/mkcodedev2/persona-realista/pkg/logger"
	"github.com/mkcodedev2/persona-realista/pkg/middleware"
	"github.com/mkcodedev2/persona-realista/pkg/observability"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Router is the main router for the application
type Router struct {
	Engine    *gin.Engine
	Container *di.Container
	Logger    *logger.Logger
	Health    *health.Checker
}

// New creates a new router with the given container
func New(container *di.Container) *Router {
	logger.SetGlobal(container.Logger)

	if container.Config.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(logger.Middleware(container.Logger))
	engine.Use(errors.ErrorHandler())
	engine.Use(errors.RecoveryWithLogger())

	rateLimiter := middleware.NewRateLimiter(container.Logger, middleware.RateLimiterOptions{
		Limit:          rate.Limit(container.Config.Security.RateLimit),
		Burst:          container.Config.Security.RateLimitBurst,
		ExpiryDuration: middleware.DefaultRateLimiterOptions().ExpiryDuration,
		KeyFunc:        middleware.DefaultRateLimiterOptions().KeyFunc,
	})
	engine.Use(rateLimiter.Middleware())

	return &Router{
		Engine:    engine,
		Container: container,
		Logger:    container.Logger,
		Health:    newHealthChecker(container),
	}
}

// SetupRoutes registers all application routes
func (r *Router) SetupRoutes() {
	r.Engine.Use(corsMiddleware())

	characterHandler := api.NewCharacterHandler(r.Container.CharacterService, r.Container.ConfigService)
	chatHandler := api.NewChatHandler(r.Container.ChatService)
	configHandler := api.NewConfigHandler(r.Container.ConfigService)
	scenarioHandler := api.NewScenarioHandler(r.Container.ScenarioService)
	relationshipHandler := api.NewRelationshipHandler(r.Container.RelationshipService)
	templateHandler := api.NewTemplateHandler(r.Container.TemplateService, r.Container.ConfigService)
	statsHandler := api.NewStatsHandler(r.Container.StatsService)

	r.setupHealthRoutes()
	r.Engine.GET("/metrics", gin.WrapH(observability.MetricsHandler()))

	v1 := r.Engine.Group("/api/v1")
	{
		characters := v1.Group("/characters")
		{
			characters.POST("", characterHandler.CreateCharacter)
			characters.GET("", characterHandler.ListCharacters)
			characters.POST("/import", characterHandler.ImportCharacter)
			characters.GET("/:id", characterHandler.GetCharacter)
			characters.PUT("/:id", characterHandler.UpdateCharacter)
			characters.DELETE("/:id", characterHandler.DeleteCharacter)
			characters.GET("/:id/export", characterHandler.ExportCharacter)

			characters.POST("/:id/chat", chatHandler.SendMessage)
			characters.GET("/:id/session", chatHandler.GetSession)
			characters.DELETE("/:id/session", chatHandler.ClearSession)

			characters.GET("/:id/relationship", relationshipHandler.GetRelationship)
		}

		configRoutes := v1.Group("/config")
		{
			configRoutes.GET("", configHandler.GetConfig)
			configRoutes.PUT("", configHandler.UpdateConfig)
		}

		scenarios := v1.Group("/scenarios")
		{
			scenarios.POST("", scenarioHandler.CreateScenario)
			scenarios.GET("", scenarioHandler.ListScenarios)
			scenarios.GET("/:id", scenarioHandler.GetScenario)
			scenarios.PUT("/:id", scenarioHandler.UpdateScenario)
			scenarios.DELETE("/:id", scenarioHandler.DeleteScenario)
			scenarios.POST("/:id/activate", scenarioHandler.ActivateScenario)
			scenarios.POST("/:id/deactivate", scenarioHandler.DeactivateScenario)
		}

		templates := v1.Group("/templates")
		{
			templates.POST("", templateHandler.CreateTemplate)
			templates.GET("", templateHandler.ListTemplates)
			templates.GET("/:id", templateHandler.GetTemplate)
			templates.DELETE("/:id", templateHandler.DeleteTemplate)
			templates.POST("/:id/instantiate", templateHandler.InstantiateTemplate)
		}

		v1.GET("/relationships", relationshipHandler.ListRelationships)
		v1.GET("/stats", statsHandler.GetStats)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Accept-Encoding, Authorization, Origin, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
