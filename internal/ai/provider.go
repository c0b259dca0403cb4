package ai

import (
	"context"
	"strings"

	"github.com/mkcodedev2/persona-realista/internal/models"
)

// Provider identifies one external LLM vendor/API family.
type Provider int

const (
	ProviderOpenAI Provider = iota
	ProviderAnthropic
	ProviderOpenRouter
	ProviderCohere
	ProviderGroq
)

// String returns the provider's display name.
func (p Provider) String() string {
	switch p {
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderAnthropic:
		return "Anthropic"
	case ProviderOpenRouter:
		return "OpenRouter"
	case ProviderCohere:
		return "Cohere"
	case ProviderGroq:
		return "Groq"
	}
	return "unknown"
}

// ResolveProvider classifies a model identifier into a provider. Rules are
// evaluated in order, first match wins; any slash-qualified name routes to
// OpenRouter regardless of vendor. The second return value reports whether
// a rule matched: false means the identifier was unrecognized and degraded
// to the OpenAI default instead of failing, so callers can surface a
// warning without blocking the request.
func ResolveProvider(model string) (Provider, bool) {
	switch {
	case strings.HasPrefix(model, "gpt-"):
		return ProviderOpenAI, true
	case strings.HasPrefix(model, "claude-"):
		return ProviderAnthropic, true
	case strings.HasPrefix(model, "openrouter/") || strings.Contains(model, "/"):
		return ProviderOpenRouter, true
	case strings.HasPrefix(model, "command-"):
		return ProviderCohere, true
	case strings.Contains(model, "llama") || strings.Contains(model, "mixtral"):
		return ProviderGroq, true
	}
	return ProviderOpenAI, false
}

// adapter translates the generic conversation into one provider's wire
// format, performs the call, and extracts the reply text. Credentials and
// generation parameters arrive per call; adapters hold no mutable state.
type adapter interface {
	provider() Provider
	call(ctx context.Context, conversation []ChatMessage, ch *models.Character, cfg models.AIConfig) (string, error)
}

// modelFor picks the model identifier for a request: the character's
// configured model, falling back to the globally selected one.
func modelFor(ch *models.Character, cfg models.AIConfig) string {
	if ch.AIModel != "" {
		return ch.AIModel
	}
	return cfg.SelectedModel
}
