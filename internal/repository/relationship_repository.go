package repository

import (
	"github.com/mkcodedev2/persona-realista/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RelationshipRepository interface {
	GetByCharacter(characterID string) (*models.Relationship, error)
	Upsert(relationship *models.Relationship) error
	DeleteByCharacter(characterID string) error
	List() ([]models.Relationship, error)
}

type GormRelationshipRepository struct {
	db *gorm.DB
}

func NewGormRelationshipRepository(db *gorm.DB) *GormRelationshipRepository {
	return &GormRelationshipRepository{db: db}
}

func (r *GormRelationshipRepository) GetByCharacter(characterID string) (*models.Relationship, error) {
	var relationship models.Relationship
	err := r.db.First(&relationship, "character_id = ?", characterID).Error
	if err != nil {
		return nil, err
	}
	return &relationship, nil
}

func (r *GormRelationshipRepository) Upsert(relationship *models.Relationship) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "character_id"}},
		UpdateAll: true,
	}).Create(relationship).Error
}

func (r *GormRelationshipRepository) DeleteByCharacter(characterID string) error {
	return r.db.Delete(&models.Relationship{}, "character_id = ?", characterID).Error
}

func (r *GormRelationshipRepository) List() ([]models.Relationship, error) {
	var relationships []models.Relationship
	err := r.db.Order("level DESC").Find(&relationships).Error
	return relationships, err
}
