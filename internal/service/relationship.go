package service

import (
	"context"
	"errors"
	"time"

	"github.com/mkcodedev2/persona-realista/internal/models"
	"github.com/mkcodedev2/persona-realista/internal/repository"
	apperrors "github.com/mkcodedev2/persona-realista/pkg/errors"
	"github.com/mkcodedev2/persona-realista/pkg/logger"

	"gorm.io/gorm"
)

const (
	relationshipDecayAfter = 7 * 24 * time.Hour
	relationshipDecay      = 5
	maxInteractionBoost    = 10
)

// RelationshipService derives closeness gauges from chat activity.
type RelationshipService struct {
	relationships repository.RelationshipRepository
	characters    repository.CharacterRepository
	log           *logger.Logger
}

func NewRelationshipService(
	relationships repository.RelationshipRepository,
	characters repository.CharacterRepository,
	log *logger.Logger,
) *RelationshipService {
	return &RelationshipService{relationships: relationships, characters: characters, log: log}
}

// GetByCharacter returns the relationship for a character, seeding a fresh
// one if the character exists but has no relationship row yet.
func (s *RelationshipService) GetByCharacter(ctx context.Context, characterID string) (*models.Relationship, error) {
	relationship, err := s.relationships.GetByCharacter(characterID)
	if err == nil {
		return relationship, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	character, err := s.characters.GetByID(characterID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("CHARACTER_NOT_FOUND", "character not found")
	}
	if err != nil {
		return nil, err
	}

	seeded := models.NewRelationship(character)
	if err := s.relationships.Upsert(seeded); err != nil {
		return nil, err
	}
	return seeded, nil
}

func (s *RelationshipService) List(ctx context.Context) ([]models.Relationship, error) {
	return s.relationships.List()
}

// RecordExchange folds one chat exchange into the relationship gauges.
func (s *RelationshipService) RecordExchange(ctx context.Context, ch *models.Character, recentMessages int, now time.Time) error {
	relationship, err := s.relationships.GetByCharacter(ch.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		relationship = models.NewRelationship(ch)
	} else if err != nil {
		return err
	}

	ApplyInteraction(relationship, ch, recentMessages, now)
	return s.relationships.Upsert(relationship)
}

// ApplyInteraction mutates the relationship for one exchange. Pure over its
// inputs apart from the mutation, so it can be exercised without storage.
//
// The boost grows with how lively the conversation is, capped at
// maxInteractionBoost. Going more than a week without talking costs a flat
// decay before the boost is applied.
func ApplyInteraction(rel *models.Relationship, ch *models.Character, recentMessages int, now time.Time) {
	boost := float64(recentMessages * 2)
	if boost > maxInteractionBoost {
		boost = maxInteractionBoost
	}

	if !rel.LastInteraction.IsZero() && now.Sub(rel.LastInteraction) > relationshipDecayAfter {
		rel.Level -= relationshipDecay
	}

	rel.Level += boost
	rel.Trust += boost * 0.5
	if ch.ConversationStyle == models.StyleRomantic {
		rel.Romance += boost
	}
	rel.Friendship += boost * 0.8

	rel.Level = clampGauge(rel.Level)
	rel.Trust = clampGauge(rel.Trust)
	rel.Romance = clampGauge(rel.Romance)
	rel.Friendship = clampGauge(rel.Friendship)

	if recentMessages > 5 {
		switch ch.ConversationStyle {
		case models.StyleRomantic:
			rel.Mood = models.MoodLoving
		case models.StyleFriendly:
			rel.Mood = models.MoodHappy
		case models.StylePlayful:
			rel.Mood = models.MoodPlayful
		default:
			rel.Mood = models.MoodExcited
		}
	}

	rel.LastInteraction = now
}

func clampGauge(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
