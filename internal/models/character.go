package models

import (
	"time"

	"gorm.io/datatypes"
)

// Conversation styles a character can be configured with.
const (
	StyleRomantic   = "romantic"
	StyleFriendly   = "friendly"
	StyleFlirty     = "flirty"
	StyleMysterious = "mysterious"
	StyleCaring     = "caring"
	StylePlayful    = "playful"
)

// ConversationStyles lists every accepted style value.
var ConversationStyles = []string{
	StyleRomantic, StyleFriendly, StyleFlirty,
	StyleMysterious, StyleCaring, StylePlayful,
}

// ValidConversationStyle reports whether style is one of the fixed vocabulary.
func ValidConversationStyle(style string) bool {
	for _, s := range ConversationStyles {
		if s == style {
			return true
		}
	}
	return false
}

// Character is a user-authored persona definition. It drives system-prompt
// generation and carries the per-character model parameters that override
// the global defaults.
type Character struct {
	ID                 string                      `json:"id" gorm:"primaryKey"`
	Name               string                      `json:"name" gorm:"not null"`
	Avatar             string                      `json:"avatar,omitempty"`
	Age                int                         `json:"age,omitempty"`
	Personality        string                      `json:"personality" gorm:"not null"`
	Background         string                      `json:"background"`
	Interests          datatypes.JSONSlice[string] `json:"interests"`
	ConversationStyle  string                      `json:"conversation_style" gorm:"not null;index"`
	MemoryContext      string                      `json:"memory_context"`
	CustomInstructions string                      `json:"custom_instructions"`
	AIModel            string                      `json:"ai_model"`
	Temperature        float64                     `json:"temperature"`
	MaxTokens          int                         `json:"max_tokens"`
	SystemPrompt       string                      `json:"system_prompt"`
	CreatedAt          time.Time                   `json:"created_at"`
	LastChatAt         *time.Time                  `json:"last_chat_at,omitempty"`
	TotalMessages      int                         `json:"total_messages"`
}

// CreateCharacterRequest is the payload for creating or updating a character.
type CreateCharacterRequest struct {
	Name               string   `json:"name" binding:"required"`
	Avatar             string   `json:"avatar"`
	Age                int      `json:"age" binding:"omitempty,gt=0"`
	Personality        string   `json:"personality" binding:"required"`
	Background         string   `json:"background"`
	Interests          []string `json:"interests"`
	ConversationStyle  string   `json:"conversation_style" binding:"required"`
	MemoryContext      string   `json:"memory_context"`
	CustomInstructions string   `json:"custom_instructions"`
	AIModel            string   `json:"ai_model"`
	Temperature        *float64 `json:"temperature" binding:"omitempty,gte=0,lte=1"`
	MaxTokens          *int     `json:"max_tokens" binding:"omitempty,gt=0"`
	SystemPrompt       string   `json:"system_prompt"`
}
