package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mkcodedev2/persona-realista/internal/models"
	"github.com/mkcodedev2/persona-realista/internal/repository"
	"github.com/mkcodedev2/persona-realista/pkg/cache"
	apperrors "github.com/mkcodedev2/persona-realista/pkg/errors"
	"github.com/mkcodedev2/persona-realista/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const characterCacheTTL = 5 * time.Minute

// CharacterService handles the character lifecycle. Reads go through the
// cache; every write invalidates the cached entry.
type CharacterService struct {
	characters    repository.CharacterRepository
	sessions      repository.SessionRepository
	relationships repository.RelationshipRepository
	cache         cache.Store
	log           *logger.Logger
}

func NewCharacterService(
	characters repository.CharacterRepository,
	sessions repository.SessionRepository,
	relationships repository.RelationshipRepository,
	store cache.Store,
	log *logger.Logger,
) *CharacterService {
	return &CharacterService{
		characters:    characters,
		sessions:      sessions,
		relationships: relationships,
		cache:         store,
		log:           log,
	}
}

func characterCacheKey(id string) string {
	return "character:" + id
}

// Create validates the request, applies config defaults for unset model
// parameters, and seeds the character's relationship gauges.
func (s *CharacterService) Create(ctx context.Context, req *models.CreateCharacterRequest, defaults models.AIConfig) (*models.Character, error) {
	if !models.ValidConversationStyle(req.ConversationStyle) {
		return nil, apperrors.NewBadRequestError("INVALID_CONVERSATION_STYLE",
			fmt.Sprintf("conversation_style must be one of %v", models.ConversationStyles))
	}

	temperature := defaults.Temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	maxTokens := defaults.MaxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}

	character := &models.Character{
		ID:                 uuid.NewString(),
		Name:               req.Name,
		Avatar:             req.Avatar,
		Age:                req.Age,
		Personality:        req.Personality,
		Background:         req.Background,
		Interests:          datatypes.JSONSlice[string](req.Interests),
		ConversationStyle:  req.ConversationStyle,
		MemoryContext:      req.MemoryContext,
		CustomInstructions: req.CustomInstructions,
		AIModel:            req.AIModel,
		Temperature:        temperature,
		MaxTokens:          maxTokens,
		SystemPrompt:       req.SystemPrompt,
		CreatedAt:          time.Now(),
	}

	if err := s.characters.Create(character); err != nil {
		return nil, err
	}
	if err := s.relationships.Upsert(models.NewRelationship(character)); err != nil {
		s.log.WithCharacterID(character.ID).Warn("failed to seed relationship", "error", err)
	}
	return character, nil
}

// Get returns a character, serving from cache when possible.
func (s *CharacterService) Get(ctx context.Context, id string) (*models.Character, error) {
	key := characterCacheKey(id)
	if raw, err := s.cache.Get(ctx, key); err == nil {
		var cached models.Character
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}

	character, err := s.characters.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("CHARACTER_NOT_FOUND", "character not found")
	}
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(character); err == nil {
		_ = s.cache.Set(ctx, key, raw, characterCacheTTL)
	}
	return character, nil
}

func (s *CharacterService) List(ctx context.Context) ([]models.Character, error) {
	return s.characters.List()
}

// Update replaces the editable fields of a character.
func (s *CharacterService) Update(ctx context.Context, id string, req *models.CreateCharacterRequest) (*models.Character, error) {
	if !models.ValidConversationStyle(req.ConversationStyle) {
		return nil, apperrors.NewBadRequestError("INVALID_CONVERSATION_STYLE",
			fmt.Sprintf("conversation_style must be one of %v", models.ConversationStyles))
	}

	character, err := s.characters.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("CHARACTER_NOT_FOUND", "character not found")
	}
	if err != nil {
		return nil, err
	}

	character.Name = req.Name
	character.Avatar = req.Avatar
	character.Age = req.Age
	character.Personality = req.Personality
	character.Background = req.Background
	character.Interests = datatypes.JSONSlice[string](req.Interests)
	character.ConversationStyle = req.ConversationStyle
	character.MemoryContext = req.MemoryContext
	character.CustomInstructions = req.CustomInstructions
	character.AIModel = req.AIModel
	character.SystemPrompt = req.SystemPrompt
	if req.Temperature != nil {
		character.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		character.MaxTokens = *req.MaxTokens
	}

	if err := s.characters.Update(character); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, characterCacheKey(id))
	return character, nil
}

// Delete removes the character along with its session and relationship.
func (s *CharacterService) Delete(ctx context.Context, id string) error {
	_, err := s.characters.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFoundError("CHARACTER_NOT_FOUND", "character not found")
	}
	if err != nil {
		return err
	}

	if err := s.sessions.DeleteByCharacter(id); err != nil {
		return err
	}
	if err := s.relationships.DeleteByCharacter(id); err != nil {
		return err
	}
	if err := s.characters.Delete(id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, characterCacheKey(id))
	return nil
}

// RecordChatActivity bumps the character's chat counters after a
// successful exchange.
func (s *CharacterService) RecordChatActivity(ctx context.Context, id string, totalMessages int, at time.Time) error {
	character, err := s.characters.GetByID(id)
	if err != nil {
		return err
	}
	character.TotalMessages = totalMessages
	character.LastChatAt = &at
	if err := s.characters.Update(character); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, characterCacheKey(id))
	return nil
}
