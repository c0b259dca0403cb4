package service

import (
	"context"
	"testing"

	"github.com/mkcodedev2/persona-realista/internal/models"
	apperrors "github.com/mkcodedev2/persona-realista/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDefaults() models.AIConfig {
	return models.AIConfig{SelectedModel: "gpt-4o-mini", Temperature: 0.8, MaxTokens: 500}
}

func TestCreateCharacterAppliesDefaults(t *testing.T) {
	f := newChatFixture(t)

	character, err := f.characters.Create(context.Background(), &models.CreateCharacterRequest{
		Name:              "Luna",
		Personality:       "doce",
		ConversationStyle: models.StyleFriendly,
	}, testDefaults())

	require.NoError(t, err)
	assert.NotEmpty(t, character.ID)
	assert.Equal(t, 0.8, character.Temperature)
	assert.Equal(t, 500, character.MaxTokens)

	rel, err := f.relRepo.GetByCharacter(character.ID)
	require.NoError(t, err)
	assert.Equal(t, 70.0, rel.Friendship)
}

func TestCreateCharacterOverridesDefaults(t *testing.T) {
	f := newChatFixture(t)
	temperature := 0.3
	maxTokens := 900

	character, err := f.characters.Create(context.Background(), &models.CreateCharacterRequest{
		Name:              "Luna",
		Personality:       "doce",
		ConversationStyle: models.StyleFriendly,
		Temperature:       &temperature,
		MaxTokens:         &maxTokens,
	}, testDefaults())

	require.NoError(t, err)
	assert.Equal(t, 0.3, character.Temperature)
	assert.Equal(t, 900, character.MaxTokens)
}

func TestCreateCharacterRejectsUnknownStyle(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.characters.Create(context.Background(), &models.CreateCharacterRequest{
		Name:              "Luna",
		Personality:       "doce",
		ConversationStyle: "sarcastic",
	}, testDefaults())

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_CONVERSATION_STYLE", appErr.Code)
}

func TestUpdateCharacterNotFound(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.characters.Update(context.Background(), "missing", &models.CreateCharacterRequest{
		Name:              "Luna",
		Personality:       "doce",
		ConversationStyle: models.StyleFriendly,
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestDeleteCharacterCascades(t *testing.T) {
	f := newChatFixture(t)
	seedCharacter(f)

	_, err := f.chat.SendMessage(context.Background(), "char-1", "oi")
	require.NoError(t, err)

	require.NoError(t, f.characters.Delete(context.Background(), "char-1"))

	_, err = f.characterRepo.GetByID("char-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = f.sessionRepo.GetByCharacter("char-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = f.relRepo.GetByCharacter("char-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
