package models

import (
	"time"

	"gorm.io/datatypes"
)

// Scenario is a reusable roleplay setting. At most one scenario is active
// at a time; activating one deactivates the rest.
type Scenario struct {
	ID            string                      `json:"id" gorm:"primaryKey"`
	Name          string                      `json:"name" gorm:"not null"`
	Description   string                      `json:"description"`
	Setting       string                      `json:"setting"`
	Atmosphere    string                      `json:"atmosphere"`
	ContextPrompt string                      `json:"context_prompt"`
	Tags          datatypes.JSONSlice[string] `json:"tags"`
	IsActive      bool                        `json:"is_active" gorm:"index"`
	CreatedAt     time.Time                   `json:"created_at"`
}

// CreateScenarioRequest is the payload for creating a scenario.
type CreateScenarioRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Setting       string   `json:"setting"`
	Atmosphere    string   `json:"atmosphere"`
	ContextPrompt string   `json:"context_prompt"`
	Tags          []string `json:"tags"`
}

// CharacterTemplate is a reusable character blueprint users can instantiate
// into a fresh character.
type CharacterTemplate struct {
	ID          string                      `json:"id" gorm:"primaryKey"`
	Name        string                      `json:"name" gorm:"not null"`
	Description string                      `json:"description"`
	Category    string                      `json:"category" gorm:"index"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	Template    datatypes.JSON              `json:"template"`
	IsCustom    bool                        `json:"is_custom"`
	CreatedAt   time.Time                   `json:"created_at"`
	UsageCount  int                         `json:"usage_count"`
	Rating      float64                     `json:"rating"`
}

// UserStats is the aggregate view shown on the statistics dashboard.
type UserStats struct {
	TotalCharacters      int     `json:"total_characters"`
	TotalConversations   int     `json:"total_conversations"`
	TotalMessages        int     `json:"total_messages"`
	MostUsedCharacter    string  `json:"most_used_character,omitempty"`
	AverageMessageLength float64 `json:"average_message_length"`
	LongestConversation  int     `json:"longest_conversation"`
}
