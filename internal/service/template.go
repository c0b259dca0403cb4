package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mkcodedev2/persona-realista/internal/models"
	"github.com/mkcodedev2/persona-realista/internal/repository"
	apperrors "github.com/mkcodedev2/persona-realista/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TemplateService manages reusable character blueprints.
type TemplateService struct {
	templates  repository.TemplateRepository
	characters *CharacterService
}

func NewTemplateService(templates repository.TemplateRepository, characters *CharacterService) *TemplateService {
	return &TemplateService{templates: templates, characters: characters}
}

// CreateTemplateRequest is the payload for saving a template.
type CreateTemplateRequest struct {
	Name        string                        `json:"name" binding:"required"`
	Description string                        `json:"description"`
	Category    string                        `json:"category"`
	Tags        []string                      `json:"tags"`
	Template    models.CreateCharacterRequest `json:"template" binding:"required"`
}

func (s *TemplateService) Create(ctx context.Context, req *CreateTemplateRequest) (*models.CharacterTemplate, error) {
	if !models.ValidConversationStyle(req.Template.ConversationStyle) {
		return nil, apperrors.NewBadRequestError("INVALID_CONVERSATION_STYLE",
			"template character has an invalid conversation_style")
	}

	raw, err := json.Marshal(req.Template)
	if err != nil {
		return nil, err
	}

	template := &models.CharacterTemplate{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Tags:        datatypes.JSONSlice[string](req.Tags),
		Template:    datatypes.JSON(raw),
		IsCustom:    true,
		CreatedAt:   time.Now(),
	}
	if err := s.templates.Create(template); err != nil {
		return nil, err
	}
	return template, nil
}

func (s *TemplateService) Get(ctx context.Context, id string) (*models.CharacterTemplate, error) {
	template, err := s.templates.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("TEMPLATE_NOT_FOUND", "template not found")
	}
	if err != nil {
		return nil, err
	}
	return template, nil
}

func (s *TemplateService) List(ctx context.Context) ([]models.CharacterTemplate, error) {
	return s.templates.List()
}

func (s *TemplateService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.templates.Delete(id)
}

// Instantiate creates a new character from a template and bumps the
// template's usage counter.
func (s *TemplateService) Instantiate(ctx context.Context, id string, defaults models.AIConfig) (*models.Character, error) {
	template, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var req models.CreateCharacterRequest
	if err := json.Unmarshal(template.Template, &req); err != nil {
		return nil, apperrors.NewInternalServerError("TEMPLATE_CORRUPT", "template payload is not valid")
	}

	character, err := s.characters.Create(ctx, &req, defaults)
	if err != nil {
		return nil, err
	}

	if err := s.templates.IncrementUsage(id); err == nil {
		template.UsageCount++
	}
	return character, nil
}
