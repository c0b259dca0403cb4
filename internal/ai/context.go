package ai

import (
	"fmt"
	"strings"

	"github.com/mkcodedev2/persona-realista/internal/models"
)

// memoryMarker prefixes the memory system entry. The prompt text is a
// product decision carried over unchanged; replies are expected in
// Brazilian Portuguese.
const memoryMarker = "Contexto importante para lembrar:"

// defaultPromptTemplate synthesizes the persona instruction when the
// character has no precomputed system prompt. Placeholders: name, age,
// personality, background, interests, conversation style, custom
// instructions.
const defaultPromptTemplate = `Você é %s, uma pessoa real de %d anos.

PERSONALIDADE:
%s

CONTEXTO E HISTÓRIA:
%s

INTERESSES: %s

ESTILO DE CONVERSA: %s

INSTRUÇÕES ESPECIAIS:
%s

DIRETRIZES IMPORTANTES:
- Responda SEMPRE em português brasileiro natural e fluente
- Seja autêntico e humano, demonstre emoções reais
- Mantenha consistência com sua personalidade
- Lembre-se do contexto das conversas anteriores
- Adapte seu tom ao estilo de conversa configurado
- Seja envolvente e interessante
- Responda como uma pessoa real, não como IA
- Use expressões brasileiras quando apropriado
- Seja carinhoso nos relacionamentos`

// DefaultSystemPrompt builds the persona instruction from the character's
// fields using the fixed template.
func DefaultSystemPrompt(ch *models.Character) string {
	return fmt.Sprintf(defaultPromptTemplate,
		ch.Name,
		ch.Age,
		ch.Personality,
		ch.Background,
		strings.Join(ch.Interests, ", "),
		ch.ConversationStyle,
		ch.CustomInstructions,
	)
}

// BuildConversation assembles the ordered payload sent to a provider: the
// persona system entry, an optional memory system entry, at most the last
// HistoryWindow prior turns in order, and the new user turn. Pure function;
// history is never mutated.
func BuildConversation(ch *models.Character, history []models.Message, userMessage string) []ChatMessage {
	systemPrompt := ch.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt(ch)
	}

	conversation := make([]ChatMessage, 0, len(history)+3)
	conversation = append(conversation, ChatMessage{Role: RoleSystem, Content: systemPrompt})

	if strings.TrimSpace(ch.MemoryContext) != "" {
		conversation = append(conversation, ChatMessage{
			Role:    RoleSystem,
			Content: fmt.Sprintf("%s %s", memoryMarker, ch.MemoryContext),
		})
	}

	recent := history
	if len(recent) > HistoryWindow {
		recent = recent[len(recent)-HistoryWindow:]
	}
	for _, msg := range recent {
		role := RoleAssistant
		if msg.IsUser {
			role = RoleUser
		}
		conversation = append(conversation, ChatMessage{Role: role, Content: msg.Content})
	}

	conversation = append(conversation, ChatMessage{Role: RoleUser, Content: userMessage})

	return conversation
}
