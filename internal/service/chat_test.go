package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/mkcodedev2/persona-realista/internal/ai"
	"github.com/mkcodedev2/persona-realista/internal/models"
	"github.com/mkcodedev2/persona-realista/pkg/cache"
	apperrors "github.com/mkcodedev2/persona-realista/pkg/errors"
	"github.com/mkcodedev2/persona-realista/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCharacterRepo struct {
	characters map[string]models.Character
}

func newFakeCharacterRepo() *fakeCharacterRepo {
	return &fakeCharacterRepo{characters: make(map[string]models.Character)}
}

func (r *fakeCharacterRepo) Create(ch *models.Character) error {
	r.characters[ch.ID] = *ch
	return nil
}

func (r *fakeCharacterRepo) GetByID(id string) (*models.Character, error) {
	ch, ok := r.characters[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := ch
	return &copied, nil
}

func (r *fakeCharacterRepo) List() ([]models.Character, error) {
	out := make([]models.Character, 0, len(r.characters))
	for _, ch := range r.characters {
		out = append(out, ch)
	}
	return out, nil
}

func (r *fakeCharacterRepo) Update(ch *models.Character) error {
	if _, ok := r.characters[ch.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.characters[ch.ID] = *ch
	return nil
}

func (r *fakeCharacterRepo) Delete(id string) error {
	delete(r.characters, id)
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]models.ChatSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]models.ChatSession)}
}

func (r *fakeSessionRepo) GetByCharacter(characterID string) (*models.ChatSession, error) {
	session, ok := r.sessions[characterID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := session
	copied.Messages = append([]models.Message(nil), session.Messages...)
	return &copied, nil
}

func (r *fakeSessionRepo) Replace(session *models.ChatSession) error {
	copied := *session
	copied.Messages = append([]models.Message(nil), session.Messages...)
	r.sessions[session.CharacterID] = copied
	return nil
}

func (r *fakeSessionRepo) DeleteByCharacter(characterID string) error {
	delete(r.sessions, characterID)
	return nil
}

func (r *fakeSessionRepo) List() ([]models.ChatSession, error) {
	out := make([]models.ChatSession, 0, len(r.sessions))
	for _, session := range r.sessions {
		out = append(out, session)
	}
	return out, nil
}

type fakeRelationshipRepo struct {
	relationships map[string]models.Relationship
}

func newFakeRelationshipRepo() *fakeRelationshipRepo {
	return &fakeRelationshipRepo{relationships: make(map[string]models.Relationship)}
}

func (r *fakeRelationshipRepo) GetByCharacter(characterID string) (*models.Relationship, error) {
	rel, ok := r.relationships[characterID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := rel
	return &copied, nil
}

func (r *fakeRelationshipRepo) Upsert(rel *models.Relationship) error {
	r.relationships[rel.CharacterID] = *rel
	return nil
}

func (r *fakeRelationshipRepo) DeleteByCharacter(characterID string) error {
	delete(r.relationships, characterID)
	return nil
}

func (r *fakeRelationshipRepo) List() ([]models.Relationship, error) {
	out := make([]models.Relationship, 0, len(r.relationships))
	for _, rel := range r.relationships {
		out = append(out, rel)
	}
	return out, nil
}

type fakeConfigRepo struct {
	stored *models.AIConfig
}

func (r *fakeConfigRepo) Get() (*models.AIConfig, error) {
	if r.stored == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r.stored
	return &copied, nil
}

func (r *fakeConfigRepo) Save(cfg *models.AIConfig) error {
	copied := *cfg
	r.stored = &copied
	return nil
}

type fakeGenerator struct {
	reply       string
	err         error
	calls       int
	lastHistory int
	lastMessage string
}

func (g *fakeGenerator) GenerateResponse(ctx context.Context, cfg models.AIConfig, ch *models.Character, history []models.Message, userMessage string) (string, error) {
	g.calls++
	g.lastHistory = len(history)
	g.lastMessage = userMessage
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

type chatFixture struct {
	chat          *ChatService
	characters    *CharacterService
	characterRepo *fakeCharacterRepo
	sessionRepo   *fakeSessionRepo
	relRepo       *fakeRelationshipRepo
	generator     *fakeGenerator
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	log := logger.New(logger.Config{Output: io.Discard})
	characterRepo := newFakeCharacterRepo()
	sessionRepo := newFakeSessionRepo()
	relRepo := newFakeRelationshipRepo()
	configRepo := &fakeConfigRepo{stored: &models.AIConfig{
		ID:            1,
		OpenAIAPIKey:  "sk-test",
		SelectedModel: "gpt-4o-mini",
		Temperature:   0.8,
		MaxTokens:     500,
	}}
	store := cache.NewMemoryStore(100, time.Minute)

	configService := NewConfigService(configRepo, log)
	characterService := NewCharacterService(characterRepo, sessionRepo, relRepo, store, log)
	relationshipService := NewRelationshipService(relRepo, characterRepo, log)
	generator := &fakeGenerator{reply: "resposta gerada"}

	chat := NewChatService(characterService, sessionRepo, relationshipService, configService, generator, log)

	return &chatFixture{
		chat:          chat,
		characters:    characterService,
		characterRepo: characterRepo,
		sessionRepo:   sessionRepo,
		relRepo:       relRepo,
		generator:     generator,
	}
}

func seedCharacter(f *chatFixture) *models.Character {
	ch := &models.Character{
		ID:                "char-1",
		Name:              "Luna",
		Personality:       "doce e curiosa",
		ConversationStyle: models.StyleRomantic,
		Temperature:       0.8,
		MaxTokens:         500,
		CreatedAt:         time.Now(),
	}
	f.characterRepo.characters[ch.ID] = *ch
	return ch
}

func TestSendMessageAppendsExchange(t *testing.T) {
	f := newChatFixture(t)
	seedCharacter(f)

	exchange, err := f.chat.SendMessage(context.Background(), "char-1", "oi, tudo bem?")
	require.NoError(t, err)

	assert.Equal(t, "oi, tudo bem?", exchange.UserMessage.Content)
	assert.True(t, exchange.UserMessage.IsUser)
	assert.Equal(t, "resposta gerada", exchange.Reply.Content)
	assert.False(t, exchange.Reply.IsUser)
	assert.Equal(t, "char-1-session", exchange.Session.ID)

	stored, err := f.sessionRepo.GetByCharacter("char-1")
	require.NoError(t, err)
	require.Len(t, stored.Messages, 2)
	assert.True(t, stored.Messages[0].IsUser)
	assert.False(t, stored.Messages[1].IsUser)

	character, err := f.characterRepo.GetByID("char-1")
	require.NoError(t, err)
	assert.Equal(t, 2, character.TotalMessages)
	require.NotNil(t, character.LastChatAt)
}

func TestSendMessageSecondTurnKeepsHistory(t *testing.T) {
	f := newChatFixture(t)
	seedCharacter(f)

	_, err := f.chat.SendMessage(context.Background(), "char-1", "primeira")
	require.NoError(t, err)
	_, err = f.chat.SendMessage(context.Background(), "char-1", "segunda")
	require.NoError(t, err)

	assert.Equal(t, 2, f.generator.calls)
	assert.Equal(t, 2, f.generator.lastHistory)
	assert.Equal(t, "segunda", f.generator.lastMessage)

	stored, err := f.sessionRepo.GetByCharacter("char-1")
	require.NoError(t, err)
	assert.Len(t, stored.Messages, 4)

	character, err := f.characterRepo.GetByID("char-1")
	require.NoError(t, err)
	assert.Equal(t, 4, character.TotalMessages)
}

func TestSendMessageFailureLeavesStateUnchanged(t *testing.T) {
	f := newChatFixture(t)
	seedCharacter(f)
	f.generator.err = &ai.Error{Kind: ai.ErrProvider, Provider: "OpenAI", Status: 500}

	_, err := f.chat.SendMessage(context.Background(), "char-1", "oi")

	var genErr *ai.Error
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, ai.ErrProvider, genErr.Kind)

	_, sessionErr := f.sessionRepo.GetByCharacter("char-1")
	assert.ErrorIs(t, sessionErr, gorm.ErrRecordNotFound)

	character, getErr := f.characterRepo.GetByID("char-1")
	require.NoError(t, getErr)
	assert.Equal(t, 0, character.TotalMessages)
	assert.Nil(t, character.LastChatAt)
}

func TestSendMessageUnknownCharacter(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.chat.SendMessage(context.Background(), "missing", "oi")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)
	assert.Equal(t, 0, f.generator.calls)
}

func TestSendMessageUpdatesRelationship(t *testing.T) {
	f := newChatFixture(t)
	seedCharacter(f)

	_, err := f.chat.SendMessage(context.Background(), "char-1", "oi")
	require.NoError(t, err)

	rel, err := f.relRepo.GetByCharacter("char-1")
	require.NoError(t, err)
	assert.Greater(t, rel.Level, 50.0)
}

func TestRepeatedProviderFailuresShortCircuit(t *testing.T) {
	f := newChatFixture(t)
	seedCharacter(f)
	f.generator.err = &ai.Error{Kind: ai.ErrProvider, Provider: "OpenAI", Status: 500}

	for i := 0; i < 5; i++ {
		_, err := f.chat.SendMessage(context.Background(), "char-1", "oi")
		require.Error(t, err)
	}

	_, err := f.chat.SendMessage(context.Background(), "char-1", "oi")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 503, appErr.StatusCode)
	assert.Equal(t, "PROVIDER_UNAVAILABLE", appErr.Code)
	// The short-circuited turn never reached the generator.
	assert.Equal(t, 5, f.generator.calls)
}

func TestMissingCredentialNeverTripsBreaker(t *testing.T) {
	f := newChatFixture(t)
	seedCharacter(f)
	f.generator.err = &ai.Error{Kind: ai.ErrMissingCredential, Provider: "OpenAI"}

	for i := 0; i < 6; i++ {
		_, err := f.chat.SendMessage(context.Background(), "char-1", "oi")

		var genErr *ai.Error
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, ai.ErrMissingCredential, genErr.Kind)
	}
	assert.Equal(t, 6, f.generator.calls)

	// Configuring the key recovers immediately, no retry window.
	f.generator.err = nil
	exchange, err := f.chat.SendMessage(context.Background(), "char-1", "oi")
	require.NoError(t, err)
	assert.Equal(t, "resposta gerada", exchange.Reply.Content)
}

func TestGetSessionEmptyWhenNoConversation(t *testing.T) {
	f := newChatFixture(t)
	seedCharacter(f)

	session, err := f.chat.GetSession(context.Background(), "char-1")
	require.NoError(t, err)
	assert.Equal(t, "char-1-session", session.ID)
	assert.Empty(t, session.Messages)
}

func TestClearSession(t *testing.T) {
	f := newChatFixture(t)
	seedCharacter(f)

	_, err := f.chat.SendMessage(context.Background(), "char-1", "oi")
	require.NoError(t, err)

	require.NoError(t, f.chat.ClearSession(context.Background(), "char-1"))

	session, err := f.chat.GetSession(context.Background(), "char-1")
	require.NoError(t, err)
	assert.Empty(t, session.Messages)
}
