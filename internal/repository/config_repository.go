package repository

import (
	"errors"

	"github.com/mkcodedev2/persona-realista/internal/models"

	"gorm.io/gorm"
)

// configRowID pins the AIConfig to a single row.
const configRowID = 1

type ConfigRepository interface {
	Get() (*models.AIConfig, error)
	Save(config *models.AIConfig) error
}

type GormConfigRepository struct {
	db *gorm.DB
}

func NewGormConfigRepository(db *gorm.DB) *GormConfigRepository {
	return &GormConfigRepository{db: db}
}

func (r *GormConfigRepository) Get() (*models.AIConfig, error) {
	var config models.AIConfig
	err := r.db.First(&config, "id = ?", configRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *GormConfigRepository) Save(config *models.AIConfig) error {
	config.ID = configRowID
	return r.db.Save(config).Error
}
