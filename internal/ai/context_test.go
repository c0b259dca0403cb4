package ai

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mkcodedev2/persona-realista/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCharacter() *models.Character {
	return &models.Character{
		ID:                 "char-1",
		Name:               "Luna",
		Age:                25,
		Personality:        "doce e curiosa",
		Background:         "cresceu no interior de Minas",
		Interests:          []string{"astronomia", "música"},
		ConversationStyle:  models.StyleRomantic,
		CustomInstructions: "gosta de apelidos carinhosos",
		Temperature:        0.8,
		MaxTokens:          500,
	}
}

func TestDefaultSystemPromptIncludesCharacterFields(t *testing.T) {
	ch := testCharacter()
	prompt := DefaultSystemPrompt(ch)

	assert.Contains(t, prompt, "Você é Luna, uma pessoa real de 25 anos.")
	assert.Contains(t, prompt, "doce e curiosa")
	assert.Contains(t, prompt, "cresceu no interior de Minas")
	assert.Contains(t, prompt, "astronomia, música")
	assert.Contains(t, prompt, models.StyleRomantic)
	assert.Contains(t, prompt, "gosta de apelidos carinhosos")
	assert.Contains(t, prompt, "português brasileiro")
}

func TestBuildConversationUsesStoredSystemPrompt(t *testing.T) {
	ch := testCharacter()
	ch.SystemPrompt = "prompt pronto"

	conversation := BuildConversation(ch, nil, "oi")

	require.Len(t, conversation, 2)
	assert.Equal(t, RoleSystem, conversation[0].Role)
	assert.Equal(t, "prompt pronto", conversation[0].Content)
	assert.Equal(t, ChatMessage{Role: RoleUser, Content: "oi"}, conversation[1])
}

func TestBuildConversationMemoryEntry(t *testing.T) {
	ch := testCharacter()
	ch.MemoryContext = "o usuário se chama Pedro"

	conversation := BuildConversation(ch, nil, "oi")

	require.Len(t, conversation, 3)
	assert.Equal(t, RoleSystem, conversation[1].Role)
	assert.Equal(t, "Contexto importante para lembrar: o usuário se chama Pedro", conversation[1].Content)
}

func TestBuildConversationSkipsBlankMemory(t *testing.T) {
	ch := testCharacter()
	ch.MemoryContext = "   "

	conversation := BuildConversation(ch, nil, "oi")

	require.Len(t, conversation, 2)
	for _, msg := range conversation[:1] {
		assert.False(t, strings.HasPrefix(msg.Content, "Contexto importante"))
	}
}

func TestBuildConversationHistoryWindow(t *testing.T) {
	ch := testCharacter()

	history := make([]models.Message, 0, 30)
	for i := 0; i < 30; i++ {
		history = append(history, models.Message{
			ID:        fmt.Sprintf("msg-%d", i),
			Content:   fmt.Sprintf("mensagem %d", i),
			IsUser:    i%2 == 0,
			Timestamp: time.Now(),
		})
	}

	conversation := BuildConversation(ch, history, "nova mensagem")

	// system + 20 most recent turns + new user turn
	require.Len(t, conversation, 22)
	assert.Equal(t, "mensagem 10", conversation[1].Content)
	assert.Equal(t, "mensagem 29", conversation[20].Content)
	assert.Equal(t, ChatMessage{Role: RoleUser, Content: "nova mensagem"}, conversation[21])

	// User turns keep the user role, character turns become assistant.
	assert.Equal(t, RoleUser, conversation[1].Role)
	assert.Equal(t, RoleAssistant, conversation[2].Role)
}

func TestBuildConversationDoesNotMutateHistory(t *testing.T) {
	ch := testCharacter()
	history := []models.Message{
		{ID: "a", Content: "primeira", IsUser: true},
		{ID: "b", Content: "segunda", IsUser: false},
	}

	first := BuildConversation(ch, history, "oi")
	second := BuildConversation(ch, history, "oi")

	assert.Equal(t, first, second)
	assert.Equal(t, "primeira", history[0].Content)
	assert.Equal(t, "segunda", history[1].Content)
}
