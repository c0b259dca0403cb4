package repository

import (
	"github.com/mkcodedev2/persona-realista/internal/models"

	"gorm.io/gorm"
)

type TemplateRepository interface {
	Create(template *models.CharacterTemplate) error
	GetByID(id string) (*models.CharacterTemplate, error)
	List() ([]models.CharacterTemplate, error)
	Delete(id string) error
	IncrementUsage(id string) error
}

type GormTemplateRepository struct {
	db *gorm.DB
}

func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

func (r *GormTemplateRepository) Create(template *models.CharacterTemplate) error {
	return r.db.Create(template).Error
}

func (r *GormTemplateRepository) GetByID(id string) (*models.CharacterTemplate, error) {
	var template models.CharacterTemplate
	err := r.db.First(&template, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *GormTemplateRepository) List() ([]models.CharacterTemplate, error) {
	var templates []models.CharacterTemplate
	err := r.db.Order("usage_count DESC").Find(&templates).Error
	return templates, err
}

func (r *GormTemplateRepository) Delete(id string) error {
	return r.db.Delete(&models.CharacterTemplate{}, "id = ?", id).Error
}

func (r *GormTemplateRepository) IncrementUsage(id string) error {
	return r.db.Model(&models.CharacterTemplate{}).Where("id = ?", id).
		Update("usage_count", gorm.Expr("usage_count + 1")).Error
}
