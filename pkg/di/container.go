package di

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mkcodedev2/persona-realista/internal/ai"
	"github.com/mkcodedev2/persona-realista/internal/repository"
	"github.com/mkcodedev2/persona-realista/internal/service"
	"github.com/mkcodedev2/persona-realista/pkg/cache"
	"github.com/mkcodedev2/persona-realista/pkg/config"
	"github.com/mkcodedev2/persona-realista/pkg/logger"
	"github.com/mkcodedev2/persona-realista/pkg/observability"
	"github.com/mkcodedev2/persona-realista/pkg/secrets"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"gorm.io/gorm"
)

// Container holds all the dependencies for the application
type Container struct {
	DB            *gorm.DB
	Logger        *logger.Logger
	Config        *config.Config
	Cache         cache.Store
	Secrets       secrets.Manager
	Metrics       *observability.Metrics
	MeterProvider *sdkmetric.MeterProvider

	Orchestrator *ai.Orchestrator

	ConfigService       *service.ConfigService
	CharacterService    *service.CharacterService
	RelationshipService *service.RelationshipService
	ChatService         *service.ChatService
	ScenarioService     *service.ScenarioService
	TemplateService     *service.TemplateService
	StatsService        *service.StatsService
}

// New wires the full dependency graph for the application.
func New(ctx context.Context, db *gorm.DB, cfg *config.Config, log *logger.Logger) (*Container, error) {
	store := newCacheStore(cfg, log)

	secretsManager, err := secrets.NewVaultManager(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create secrets manager: %w", err)
	}

	metrics, meterProvider, err := observability.Setup("persona-realista")
	if err != nil {
		return nil, fmt.Errorf("failed to set up observability: %w", err)
	}

	orchestrator := ai.NewOrchestrator(ai.Options{
		HTTPClient: &http.Client{Timeout: cfg.AI.RequestTimeout},
		Referer:    cfg.Server.BaseURL,
		Logger:     log,
		Metrics:    metrics,
	})

	characterRepo := repository.NewGormCharacterRepository(db)
	sessionRepo := repository.NewGormSessionRepository(db)
	relationshipRepo := repository.NewGormRelationshipRepository(db)
	scenarioRepo := repository.NewGormScenarioRepository(db)
	templateRepo := repository.NewGormTemplateRepository(db)
	configRepo := repository.NewGormConfigRepository(db)

	configService := service.NewConfigService(configRepo, log)
	if err := configService.EnsureSeeded(ctx, cfg, secretsManager); err != nil {
		return nil, fmt.Errorf("failed to seed AI configuration: %w", err)
	}

	characterService := service.NewCharacterService(characterRepo, sessionRepo, relationshipRepo, store, log)
	relationshipService := service.NewRelationshipService(relationshipRepo, characterRepo, log)
	chatService := service.NewChatService(characterService, sessionRepo, relationshipService, configService, orchestrator, log)
	scenarioService := service.NewScenarioService(scenarioRepo)
	templateService := service.NewTemplateService(templateRepo, characterService)
	statsService := service.NewStatsService(characterRepo, sessionRepo)

	return &Container{
		DB:                  db,
		Logger:              log,
		Config:              cfg,
		Cache:               store,
		Secrets:             secretsManager,
		Metrics:             metrics,
		MeterProvider:       meterProvider,
		Orchestrator:        orchestrator,
		ConfigService:       configService,
		CharacterService:    characterService,
		RelationshipService: relationshipService,
		ChatService:         chatService,
		ScenarioService:     scenarioService,
		TemplateService:     templateService,
		StatsService:        statsService,
	}, nil
}

func newCacheStore(cfg *config.Config, log *logger.Logger) cache.Store {
	if cfg.Redis.Enabled {
		store := cache.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := store.Ping(context.Background()); err == nil {
			log.Info("using redis cache", "addr", cfg.Redis.Addr)
			return store
		}
		log.Warn("redis unreachable, falling back to in-memory cache", "addr", cfg.Redis.Addr)
	}
	return cache.NewMemoryStore(cfg.Cache.MaxSize, cfg.Cache.PurgeWindow)
}
