package repository

import (
	"github.com/mkcodedev2/persona-realista/internal/models"

	"gorm.io/gorm"
)

type CharacterRepository interface {
	Create(character *models.Character) error
	GetByID(id string) (*models.Character, error)
	List() ([]models.Character, error)
	Update(character *models.Character) error
	Delete(id string) error
}

type GormCharacterRepository struct {
	db *gorm.DB
}

func NewGormCharacterRepository(db *gorm.DB) *GormCharacterRepository {
	return &GormCharacterRepository{db: db}
}

func (r *GormCharacterRepository) Create(character *models.Character) error {
	return r.db.Create(character).Error
}

func (r *GormCharacterRepository) GetByID(id string) (*models.Character, error) {
	var character models.Character
	err := r.db.First(&character, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &character, nil
}

func (r *GormCharacterRepository) List() ([]models.Character, error) {
	var characters []models.Character
	err := r.db.Order("created_at ASC").Find(&characters).Error
	return characters, err
}

func (r *GormCharacterRepository) Update(character *models.Character) error {
	return r.db.Save(character).Error
}

func (r *GormCharacterRepository) Delete(id string) error {
	return r.db.Delete(&models.Character{}, "id = ?", id).Error
}
