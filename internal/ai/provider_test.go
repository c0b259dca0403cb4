package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveProvider(t *testing.T) {
	tests := []struct {
		model    string
		provider Provider
		matched  bool
	}{
		{"gpt-4o-mini", ProviderOpenAI, true},
		{"gpt-3.5-turbo", ProviderOpenAI, true},
		{"claude-3-haiku-20240307", ProviderAnthropic, true},
		{"openrouter/auto", ProviderOpenRouter, true},
		{"meta-llama/llama-3-70b-instruct", ProviderOpenRouter, true},
		{"anthropic/claude-3-opus", ProviderOpenRouter, true},
		{"command-r-plus", ProviderCohere, true},
		{"llama-3.1-70b-versatile", ProviderGroq, true},
		{"mixtral-8x7b-32768", ProviderGroq, true},
		{"gemini-pro", ProviderOpenAI, false},
		{"", ProviderOpenAI, false},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			provider, matched := ResolveProvider(tt.model)
			assert.Equal(t, tt.provider, provider, "provider for %q", tt.model)
			assert.Equal(t, tt.matched, matched, "matched for %q", tt.model)
		})
	}
}

func TestResolveProviderPrefixBeatsSubstring(t *testing.T) {
	// "claude-" wins before the slash rule would even be considered, and a
	// slash wins over the llama substring.
	provider, matched := ResolveProvider("claude-3/latest")
	assert.Equal(t, ProviderAnthropic, provider)
	assert.True(t, matched)

	provider, matched = ResolveProvider("groq/llama-3-8b")
	assert.Equal(t, ProviderOpenRouter, provider)
	assert.True(t, matched)
}

func TestModelForPrefersCharacterModel(t *testing.T) {
	ch := testCharacter()
	ch.AIModel = "claude-3-haiku"
	cfg := testConfig()
	cfg.SelectedModel = "gpt-4o-mini"

	assert.Equal(t, "claude-3-haiku", modelFor(ch, cfg))

	ch.AIModel = ""
	assert.Equal(t, "gpt-4o-mini", modelFor(ch, cfg))
}
