package ai

import (
	"context"
	"errors"
	"net/http"

	"github.com/mkcodedev2/persona-realista/internal/models"

	openai "github.com/sashabaranov/go-openai"
)

// openAICompatAdapter serves every provider speaking the OpenAI chat
// completion schema: OpenAI itself, OpenRouter and Groq. Only the base URL,
// the credential slot and a few extra headers differ.
type openAICompatAdapter struct {
	kind         Provider
	baseURL      string
	httpClient   *http.Client
	extraHeaders map[string]string
}

func newOpenAIAdapter(baseURL string, httpClient *http.Client) *openAICompatAdapter {
	return &openAICompatAdapter{kind: ProviderOpenAI, baseURL: baseURL, httpClient: httpClient}
}

func newGroqAdapter(baseURL string, httpClient *http.Client) *openAICompatAdapter {
	return &openAICompatAdapter{kind: ProviderGroq, baseURL: baseURL, httpClient: httpClient}
}

// newOpenRouterAdapter attaches the attribution headers OpenRouter asks
// integrators to send.
func newOpenRouterAdapter(baseURL string, httpClient *http.Client, referer string) *openAICompatAdapter {
	return &openAICompatAdapter{
		kind:       ProviderOpenRouter,
		baseURL:    baseURL,
		httpClient: httpClient,
		extraHeaders: map[string]string{
			"HTTP-Referer": referer,
			"X-Title":      "Roleplay AI",
		},
	}
}

func (a *openAICompatAdapter) provider() Provider {
	return a.kind
}

func (a *openAICompatAdapter) apiKey(cfg models.AIConfig) string {
	switch a.kind {
	case ProviderOpenRouter:
		return cfg.OpenRouterAPIKey
	case ProviderGroq:
		return cfg.GroqAPIKey
	default:
		return cfg.OpenAIAPIKey
	}
}

func (a *openAICompatAdapter) call(ctx context.Context, conversation []ChatMessage, ch *models.Character, cfg models.AIConfig) (string, error) {
	apiKey := a.apiKey(cfg)
	if apiKey == "" {
		return "", missingCredential(a.kind)
	}

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = a.baseURL
	clientConfig.HTTPClient = a.httpClient
	if len(a.extraHeaders) > 0 {
		clientConfig.HTTPClient = &http.Client{
			Timeout:   a.httpClient.Timeout,
			Transport: &headerTransport{base: a.httpClient.Transport, headers: a.extraHeaders},
		}
	}
	client := openai.NewClientWithConfig(clientConfig)

	messages := make([]openai.ChatCompletionMessage, 0, len(conversation))
	for _, msg := range conversation {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       modelFor(ch, cfg),
		Messages:    messages,
		Temperature: float32(ch.Temperature),
		MaxTokens:   ch.MaxTokens,
	})
	if err != nil {
		return "", a.mapError(err)
	}

	// An empty choice list degrades to an empty reply, not a failure.
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (a *openAICompatAdapter) mapError(err error) *Error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return providerError(a.kind, apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return providerError(a.kind, reqErr.HTTPStatusCode)
	}
	return networkError(a.kind, err)
}

// headerTransport injects static headers into every outbound request.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	for k, v := range t.headers {
		cloned.Header.Set(k, v)
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(cloned)
}
