package repository

import (
	"github.com/mkcodedev2/persona-realista/internal/models"

	"gorm.io/gorm"
)

type SessionRepository interface {
	// GetByCharacter returns the character's session with its messages in
	// timestamp order, or gorm.ErrRecordNotFound when there is none.
	GetByCharacter(characterID string) (*models.ChatSession, error)
	// Replace persists the session, superseding any previous session for
	// the same character.
	Replace(session *models.ChatSession) error
	DeleteByCharacter(characterID string) error
	List() ([]models.ChatSession, error)
}

type GormSessionRepository struct {
	db *gorm.DB
}

func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

func (r *GormSessionRepository) GetByCharacter(characterID string) (*models.ChatSession, error) {
	var session models.ChatSession
	err := r.db.
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC")
		}).
		First(&session, "character_id = ?", characterID).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *GormSessionRepository) Replace(session *models.ChatSession) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id IN (?)",
			tx.Model(&models.ChatSession{}).Select("id").Where("character_id = ?", session.CharacterID),
		).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("character_id = ?", session.CharacterID).Delete(&models.ChatSession{}).Error; err != nil {
			return err
		}
		return tx.Create(session).Error
	})
}

func (r *GormSessionRepository) DeleteByCharacter(characterID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("character_id = ?", characterID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Where("character_id = ?", characterID).Delete(&models.ChatSession{}).Error
	})
}

func (r *GormSessionRepository) List() ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	err := r.db.
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC")
		}).
		Find(&sessions).Error
	return sessions, err
}
