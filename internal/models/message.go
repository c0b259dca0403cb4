package models

import (
	"time"
)

// Message is one conversation turn. Messages are immutable once created;
// ordering is insertion order.
type Message struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	SessionID   string    `json:"-" gorm:"index"`
	CharacterID string    `json:"character_id" gorm:"index"`
	Content     string    `json:"content"`
	IsUser      bool      `json:"is_user"`
	Timestamp   time.Time `json:"timestamp"`
}

// ChatSession is the persisted transcript for one character. There is at
// most one session per character; writing a new session for the same
// character supersedes the previous one.
type ChatSession struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	CharacterID   string    `json:"character_id" gorm:"uniqueIndex"`
	Messages      []Message `json:"messages" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time `json:"created_at"`
	LastMessageAt time.Time `json:"last_message_at"`
}

// SendMessageRequest is the payload for one chat turn.
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}
