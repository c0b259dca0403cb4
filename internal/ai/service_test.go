package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/mkcodedev2/persona-realista/internal/models"
	"github.com/mkcodedev2/persona-realista/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() models.AIConfig {
	return models.AIConfig{
		OpenAIAPIKey:     "sk-openai",
		AnthropicAPIKey:  "sk-anthropic",
		OpenRouterAPIKey: "sk-openrouter",
		CohereAPIKey:     "sk-cohere",
		GroqAPIKey:       "sk-groq",
		SelectedModel:    "gpt-4o-mini",
		Temperature:      0.8,
		MaxTokens:        500,
	}
}

func testOrchestrator(endpoints Endpoints) *Orchestrator {
	return NewOrchestrator(Options{
		Endpoints: endpoints,
		Logger:    logger.New(logger.Config{Output: io.Discard}),
	})
}

func openAIStyleResponse(content string) string {
	return `{"choices":[{"message":{"role":"assistant","content":"` + content + `"}}]}`
}

func TestGenerateResponseOpenAISuccess(t *testing.T) {
	var gotBody struct {
		Model       string        `json:"model"`
		Messages    []ChatMessage `json:"messages"`
		Temperature float64       `json:"temperature"`
		MaxTokens   int           `json:"max_tokens"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-openai", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, openAIStyleResponse("Oi, tudo bem?"))
	}))
	defer srv.Close()

	orch := testOrchestrator(Endpoints{OpenAI: srv.URL + "/v1"})
	ch := testCharacter()
	ch.AIModel = "gpt-4o-mini"

	reply, err := orch.GenerateResponse(context.Background(), testConfig(), ch, nil, "oi")

	require.NoError(t, err)
	assert.Equal(t, "Oi, tudo bem?", reply)
	assert.Equal(t, "gpt-4o-mini", gotBody.Model)
	require.NotEmpty(t, gotBody.Messages)
	assert.Equal(t, RoleSystem, gotBody.Messages[0].Role)
	assert.Equal(t, ChatMessage{Role: RoleUser, Content: "oi"}, gotBody.Messages[len(gotBody.Messages)-1])
	assert.Equal(t, 500, gotBody.MaxTokens)
}

func TestGenerateResponseMissingKeySkipsNetwork(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		io.WriteString(w, openAIStyleResponse("não deveria chegar aqui"))
	}))
	defer srv.Close()

	orch := testOrchestrator(Endpoints{OpenAI: srv.URL + "/v1"})
	ch := testCharacter()
	ch.AIModel = "gpt-4o-mini"
	cfg := testConfig()
	cfg.OpenAIAPIKey = ""

	_, err := orch.GenerateResponse(context.Background(), cfg, ch, nil, "oi")

	var genErr *Error
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, ErrMissingCredential, genErr.Kind)
	assert.Equal(t, "API key for OpenAI not configured", genErr.Error())
	assert.Equal(t, int64(0), atomic.LoadInt64(&calls))
}

func TestGenerateResponseProviderStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"Incorrect API key","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	orch := testOrchestrator(Endpoints{OpenAI: srv.URL + "/v1"})
	ch := testCharacter()
	ch.AIModel = "gpt-4o-mini"

	_, err := orch.GenerateResponse(context.Background(), testConfig(), ch, nil, "oi")

	var genErr *Error
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, ErrProvider, genErr.Kind)
	assert.Equal(t, "OpenAI", genErr.Provider)
	assert.Equal(t, http.StatusUnauthorized, genErr.Status)
	assert.Equal(t, "OpenAI request failed with status 401", genErr.Error())
}

func TestGenerateResponseNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	orch := testOrchestrator(Endpoints{OpenAI: url + "/v1"})
	ch := testCharacter()
	ch.AIModel = "gpt-4o-mini"

	_, err := orch.GenerateResponse(context.Background(), testConfig(), ch, nil, "oi")

	var genErr *Error
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, ErrNetwork, genErr.Kind)
}

func TestGenerateResponseAnthropic(t *testing.T) {
	var gotBody anthropicRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-anthropic", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"content":[{"type":"text","text":"Claro, meu bem."}]}`)
	}))
	defer srv.Close()

	orch := testOrchestrator(Endpoints{Anthropic: srv.URL})
	ch := testCharacter()
	ch.AIModel = "claude-3-haiku-20240307"
	ch.MemoryContext = "gosta de astronomia"

	history := []models.Message{
		{Content: "oi", IsUser: true},
		{Content: "oi, querido", IsUser: false},
	}
	reply, err := orch.GenerateResponse(context.Background(), testConfig(), ch, history, "me conta um segredo")

	require.NoError(t, err)
	assert.Equal(t, "Claro, meu bem.", reply)
	assert.NotEmpty(t, gotBody.System)

	// System entries travel in the dedicated field, never in the turn list.
	for _, msg := range gotBody.Messages {
		assert.NotEqual(t, RoleSystem, msg.Role)
	}
	require.Len(t, gotBody.Messages, 3)
	assert.Equal(t, ChatMessage{Role: RoleUser, Content: "me conta um segredo"}, gotBody.Messages[2])
}

func TestGenerateResponseCohere(t *testing.T) {
	var gotBody cohereRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat", r.URL.Path)
		assert.Equal(t, "Bearer sk-cohere", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"text":"Com certeza!"}`)
	}))
	defer srv.Close()

	orch := testOrchestrator(Endpoints{Cohere: srv.URL})
	ch := testCharacter()
	ch.AIModel = "command-r-plus"

	history := []models.Message{
		{Content: "oi", IsUser: true},
		{Content: "olá!", IsUser: false},
	}
	reply, err := orch.GenerateResponse(context.Background(), testConfig(), ch, history, "bora conversar?")

	require.NoError(t, err)
	assert.Equal(t, "Com certeza!", reply)
	assert.Equal(t, "bora conversar?", gotBody.Message)
	assert.NotEmpty(t, gotBody.Preamble)
	require.Len(t, gotBody.ChatHistory, 2)
	assert.Equal(t, cohereHistoryEntry{Role: "USER", Message: "oi"}, gotBody.ChatHistory[0])
	assert.Equal(t, cohereHistoryEntry{Role: "CHATBOT", Message: "olá!"}, gotBody.ChatHistory[1])
}

func TestGenerateResponseGroqRouting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-groq", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, openAIStyleResponse("resposta do groq"))
	}))
	defer srv.Close()

	orch := testOrchestrator(Endpoints{Groq: srv.URL + "/v1"})
	ch := testCharacter()
	ch.AIModel = "llama-3.1-70b-versatile"

	reply, err := orch.GenerateResponse(context.Background(), testConfig(), ch, nil, "oi")

	require.NoError(t, err)
	assert.Equal(t, "resposta do groq", reply)
}

func TestGenerateResponseUnknownModelFallsBackToOpenAI(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, openAIStyleResponse("fallback ok"))
	}))
	defer srv.Close()

	orch := testOrchestrator(Endpoints{OpenAI: srv.URL + "/v1"})
	ch := testCharacter()
	ch.AIModel = "gemini-pro"

	reply, err := orch.GenerateResponse(context.Background(), testConfig(), ch, nil, "oi")

	require.NoError(t, err)
	assert.Equal(t, "fallback ok", reply)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestGenerateResponseEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	orch := testOrchestrator(Endpoints{OpenAI: srv.URL + "/v1"})
	ch := testCharacter()
	ch.AIModel = "gpt-4o-mini"

	reply, err := orch.GenerateResponse(context.Background(), testConfig(), ch, nil, "oi")

	require.NoError(t, err)
	assert.Equal(t, "", reply)
}
