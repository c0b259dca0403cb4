package ai

import (
	"context"
	"net/http"
	"time"

	"github.com/mkcodedev2/persona-realista/internal/models"
	"github.com/mkcodedev2/persona-realista/pkg/logger"
	"github.com/mkcodedev2/persona-realista/pkg/observability"
)

// Options configures an Orchestrator.
type Options struct {
	// HTTPClient is shared by all adapters. Defaults to a 30s-timeout client.
	HTTPClient *http.Client
	// Endpoints are the provider base URLs. Defaults to production.
	Endpoints Endpoints
	// Referer is sent to OpenRouter as the integrator origin.
	Referer string
	Logger  *logger.Logger
	Metrics *observability.Metrics
}

// Orchestrator is the single entry point for response generation. It is
// stateless with respect to configuration: the AIConfig is passed by value
// into every call, so edits take effect on the next request without any
// rebuild.
type Orchestrator struct {
	adapters map[Provider]adapter
	log      *logger.Logger
	metrics  *observability.Metrics
}

// NewOrchestrator wires one adapter per supported provider.
func NewOrchestrator(opts Options) *Orchestrator {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	endpoints := opts.Endpoints
	if endpoints == (Endpoints{}) {
		endpoints = DefaultEndpoints()
	}
	log := opts.Logger
	if log == nil {
		log = logger.GetGlobal()
	}

	adapters := map[Provider]adapter{
		ProviderOpenAI:     newOpenAIAdapter(endpoints.OpenAI, httpClient),
		ProviderAnthropic:  newAnthropicAdapter(endpoints.Anthropic, httpClient),
		ProviderOpenRouter: newOpenRouterAdapter(endpoints.OpenRouter, httpClient, opts.Referer),
		ProviderCohere:     newCohereAdapter(endpoints.Cohere, httpClient),
		ProviderGroq:       newGroqAdapter(endpoints.Groq, httpClient),
	}

	return &Orchestrator{
		adapters: adapters,
		log:      log,
		metrics:  opts.Metrics,
	}
}

// GenerateResponse builds the conversation payload, routes it to the
// provider matching the character's model, and returns the reply text.
// Every failure comes back as a *Error; no partial results, no retries,
// exactly one outbound call per invocation. Persistence is the caller's
// responsibility.
func (o *Orchestrator) GenerateResponse(ctx context.Context, cfg models.AIConfig, ch *models.Character, history []models.Message, userMessage string) (string, error) {
	conversation := BuildConversation(ch, history, userMessage)

	model := modelFor(ch, cfg)
	provider, matched := ResolveProvider(model)
	if !matched {
		// Unrecognized identifiers degrade to the default provider instead
		// of failing fast; the request will surface the provider's own
		// auth or model error if the guess is wrong.
		o.log.Warn("model did not match any routing rule, using default provider",
			"model", model,
			"provider", provider.String(),
		)
		o.metrics.RecordModelFallback(ctx, model)
	}

	ad, ok := o.adapters[provider]
	if !ok {
		return "", &Error{Kind: ErrUnsupportedProvider, Provider: provider.String()}
	}

	start := time.Now()
	content, err := ad.call(ctx, conversation, ch, cfg)
	elapsed := time.Since(start)

	if err != nil {
		genErr := normalize(provider, err)
		o.metrics.RecordGeneration(ctx, provider.String(), "error", elapsed.Seconds())
		o.log.Error("generation failed",
			"provider", provider.String(),
			"model", model,
			"character_id", ch.ID,
			"duration_ms", elapsed.Milliseconds(),
			"error", genErr.Error(),
		)
		return "", genErr
	}

	o.metrics.RecordGeneration(ctx, provider.String(), "success", elapsed.Seconds())
	o.log.Debug("generation succeeded",
		"provider", provider.String(),
		"model", model,
		"character_id", ch.ID,
		"duration_ms", elapsed.Milliseconds(),
	)
	return content, nil
}

// normalize guarantees that every error leaving the orchestrator is a
// *Error; anything unexpected is treated as a transport failure.
func normalize(provider Provider, err error) *Error {
	if genErr, ok := err.(*Error); ok {
		return genErr
	}
	return networkError(provider, err)
}
