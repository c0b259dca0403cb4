package service

import (
	"context"

	"github.com/mkcodedev2/persona-realista/internal/models"
	"github.com/mkcodedev2/persona-realista/internal/repository"
)

// StatsService aggregates usage numbers across characters and sessions.
type StatsService struct {
	characters repository.CharacterRepository
	sessions   repository.SessionRepository
}

func NewStatsService(characters repository.CharacterRepository, sessions repository.SessionRepository) *StatsService {
	return &StatsService{characters: characters, sessions: sessions}
}

func (s *StatsService) UserStats(ctx context.Context) (*models.UserStats, error) {
	characters, err := s.characters.List()
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessions.List()
	if err != nil {
		return nil, err
	}

	stats := &models.UserStats{
		TotalCharacters: len(characters),
	}

	var mostUsed *models.Character
	for i := range characters {
		ch := &characters[i]
		if mostUsed == nil || ch.TotalMessages > mostUsed.TotalMessages {
			mostUsed = ch
		}
	}
	if mostUsed != nil && mostUsed.TotalMessages > 0 {
		stats.MostUsedCharacter = mostUsed.Name
	}

	var totalLength int
	for i := range sessions {
		session := &sessions[i]
		if len(session.Messages) == 0 {
			continue
		}
		stats.TotalConversations++
		stats.TotalMessages += len(session.Messages)
		if len(session.Messages) > stats.LongestConversation {
			stats.LongestConversation = len(session.Messages)
		}
		for _, msg := range session.Messages {
			totalLength += len([]rune(msg.Content))
		}
	}
	if stats.TotalMessages > 0 {
		stats.AverageMessageLength = float64(totalLength) / float64(stats.TotalMessages)
	}

	return stats, nil
}
