package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/mkcodedev2/persona-realista/internal/models"
	apperrors "github.com/mkcodedev2/persona-realista/pkg/errors"

	"github.com/google/uuid"
)

// shareEnvelope is the portable form of a character. Versioned so older
// codes keep importing if the format ever changes.
type shareEnvelope struct {
	Version   int              `json:"version"`
	Character models.Character `json:"character"`
}

const shareEnvelopeVersion = 1

// ExportCharacter encodes a character as an opaque share code.
func (s *CharacterService) ExportCharacter(ctx context.Context, id string) (string, error) {
	character, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	raw, err := json.Marshal(shareEnvelope{
		Version:   shareEnvelopeVersion,
		Character: *character,
	})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// ImportCharacter decodes a share code and creates a fresh character from
// it. Identity and chat counters are reset; the import is a copy, not a
// transfer.
func (s *CharacterService) ImportCharacter(ctx context.Context, code string) (*models.Character, error) {
	raw, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		return nil, apperrors.NewBadRequestError("INVALID_SHARE_CODE", "share code is not valid")
	}

	var envelope shareEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Character.Name == "" {
		return nil, apperrors.NewBadRequestError("INVALID_SHARE_CODE", "share code is not valid")
	}

	character := envelope.Character
	character.ID = uuid.NewString()
	character.CreatedAt = time.Now()
	character.LastChatAt = nil
	character.TotalMessages = 0

	if err := s.characters.Create(&character); err != nil {
		return nil, err
	}
	if err := s.relationships.Upsert(models.NewRelationship(&character)); err != nil {
		s.log.WithCharacterID(character.ID).Warn("failed to seed relationship", "error", err)
	}
	return &character, nil
}
