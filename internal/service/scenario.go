package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mkcodedev2/persona-realista/internal/models"
	"github.com/mkcodedev2/persona-realista/internal/repository"
	apperrors "github.com/mkcodedev2/persona-realista/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Atmospheres a scenario can be tagged with.
var scenarioAtmospheres = []string{
	"romantic", "mysterious", "adventurous", "casual", "dramatic", "playful",
}

func validAtmosphere(atmosphere string) bool {
	if atmosphere == "" {
		return true
	}
	for _, a := range scenarioAtmospheres {
		if a == atmosphere {
			return true
		}
	}
	return false
}

// ScenarioService manages roleplay scenarios.
type ScenarioService struct {
	scenarios repository.ScenarioRepository
}

func NewScenarioService(scenarios repository.ScenarioRepository) *ScenarioService {
	return &ScenarioService{scenarios: scenarios}
}

func (s *ScenarioService) Create(ctx context.Context, req *models.CreateScenarioRequest) (*models.Scenario, error) {
	if !validAtmosphere(req.Atmosphere) {
		return nil, apperrors.NewBadRequestError("INVALID_ATMOSPHERE",
			fmt.Sprintf("atmosphere must be one of %v", scenarioAtmospheres))
	}

	scenario := &models.Scenario{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Description:   req.Description,
		Setting:       req.Setting,
		Atmosphere:    req.Atmosphere,
		ContextPrompt: req.ContextPrompt,
		Tags:          datatypes.JSONSlice[string](req.Tags),
		CreatedAt:     time.Now(),
	}
	if err := s.scenarios.Create(scenario); err != nil {
		return nil, err
	}
	return scenario, nil
}

func (s *ScenarioService) Get(ctx context.Context, id string) (*models.Scenario, error) {
	scenario, err := s.scenarios.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("SCENARIO_NOT_FOUND", "scenario not found")
	}
	if err != nil {
		return nil, err
	}
	return scenario, nil
}

func (s *ScenarioService) List(ctx context.Context) ([]models.Scenario, error) {
	return s.scenarios.List()
}

func (s *ScenarioService) Update(ctx context.Context, id string, req *models.CreateScenarioRequest) (*models.Scenario, error) {
	if !validAtmosphere(req.Atmosphere) {
		return nil, apperrors.NewBadRequestError("INVALID_ATMOSPHERE",
			fmt.Sprintf("atmosphere must be one of %v", scenarioAtmospheres))
	}

	scenario, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	scenario.Name = req.Name
	scenario.Description = req.Description
	scenario.Setting = req.Setting
	scenario.Atmosphere = req.Atmosphere
	scenario.ContextPrompt = req.ContextPrompt
	scenario.Tags = datatypes.JSONSlice[string](req.Tags)

	if err := s.scenarios.Update(scenario); err != nil {
		return nil, err
	}
	return scenario, nil
}

func (s *ScenarioService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.scenarios.Delete(id)
}

// Activate makes one scenario active and deactivates the rest.
func (s *ScenarioService) Activate(ctx context.Context, id string) (*models.Scenario, error) {
	err := s.scenarios.Activate(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("SCENARIO_NOT_FOUND", "scenario not found")
	}
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *ScenarioService) Deactivate(ctx context.Context, id string) error {
	err := s.scenarios.Deactivate(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFoundError("SCENARIO_NOT_FOUND", "scenario not found")
	}
	return err
}
