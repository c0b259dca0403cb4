package repository

import (
	"github.com/mkcodedev2/persona-realista/internal/models"

	"gorm.io/gorm"
)

type ScenarioRepository interface {
	Create(scenario *models.Scenario) error
	GetByID(id string) (*models.Scenario, error)
	List() ([]models.Scenario, error)
	Update(scenario *models.Scenario) error
	Delete(id string) error
	// Activate marks one scenario active and deactivates all others.
	Activate(id string) error
	Deactivate(id string) error
}

type GormScenarioRepository struct {
	db *gorm.DB
}

func NewGormScenarioRepository(db *gorm.DB) *GormScenarioRepository {
	return &GormScenarioRepository{db: db}
}

func (r *GormScenarioRepository) Create(scenario *models.Scenario) error {
	return r.db.Create(scenario).Error
}

func (r *GormScenarioRepository) GetByID(id string) (*models.Scenario, error) {
	var scenario models.Scenario
	err := r.db.First(&scenario, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (r *GormScenarioRepository) List() ([]models.Scenario, error) {
	var scenarios []models.Scenario
	err := r.db.Order("created_at ASC").Find(&scenarios).Error
	return scenarios, err
}

func (r *GormScenarioRepository) Update(scenario *models.Scenario) error {
	return r.db.Save(scenario).Error
}

func (r *GormScenarioRepository) Delete(id string) error {
	return r.db.Delete(&models.Scenario{}, "id = ?", id).Error
}

func (r *GormScenarioRepository) Activate(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Scenario{}).Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		result := tx.Model(&models.Scenario{}).Where("id = ?", id).Update("is_active", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormScenarioRepository) Deactivate(id string) error {
	result := r.db.Model(&models.Scenario{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
