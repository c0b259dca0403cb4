package models

import (
	"time"

	"gorm.io/datatypes"
)

// Moods a relationship can be in.
const (
	MoodHappy    = "happy"
	MoodNeutral  = "neutral"
	MoodSad      = "sad"
	MoodAngry    = "angry"
	MoodExcited  = "excited"
	MoodConfused = "confused"
	MoodLoving   = "loving"
	MoodPlayful  = "playful"
)

// Relationship tracks the derived closeness between the user and one
// character. All gauges are clamped to [0,100].
type Relationship struct {
	CharacterID     string                      `json:"character_id" gorm:"primaryKey"`
	Level           float64                     `json:"level"`
	Mood            string                      `json:"mood"`
	Trust           float64                     `json:"trust"`
	Romance         float64                     `json:"romance"`
	Friendship      float64                     `json:"friendship"`
	LastInteraction time.Time                   `json:"last_interaction"`
	ImportantEvents datatypes.JSONSlice[string] `json:"important_events"`
	Preferences     datatypes.JSONMap           `json:"preferences"`
}

// NewRelationship seeds the gauges for a fresh character. Romantic and
// friendly styles start warmer, matching how the character was authored.
func NewRelationship(ch *Character) *Relationship {
	romance := 30.0
	if ch.ConversationStyle == StyleRomantic {
		romance = 60
	}
	friendship := 40.0
	if ch.ConversationStyle == StyleFriendly {
		friendship = 70
	}
	return &Relationship{
		CharacterID:     ch.ID,
		Level:           50,
		Mood:            MoodNeutral,
		Trust:           50,
		Romance:         romance,
		Friendship:      friendship,
		LastInteraction: time.Now(),
		ImportantEvents: datatypes.JSONSlice[string]{},
		Preferences:     datatypes.JSONMap{},
	}
}
