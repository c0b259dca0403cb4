package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/mkcodedev2/persona-realista/internal/ai"
	"github.com/mkcodedev2/persona-realista/internal/models"
	"github.com/mkcodedev2/persona-realista/internal/repository"
	apperrors "github.com/mkcodedev2/persona-realista/pkg/errors"
	"github.com/mkcodedev2/persona-realista/pkg/logger"
	"github.com/mkcodedev2/persona-realista/pkg/resilience"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Generator produces one assistant reply for a chat turn.
type Generator interface {
	GenerateResponse(ctx context.Context, cfg models.AIConfig, ch *models.Character, history []models.Message, userMessage string) (string, error)
}

// Exchange is the outcome of one successful chat turn.
type Exchange struct {
	UserMessage models.Message     `json:"user_message"`
	Reply       models.Message     `json:"reply"`
	Session     models.ChatSession `json:"session"`
}

// ChatService runs the chat turn flow: load state, generate, persist. The
// transcript only changes after generation succeeds, so a failed turn
// leaves the session exactly as it was.
type ChatService struct {
	characters    *CharacterService
	sessions      repository.SessionRepository
	relationships *RelationshipService
	configs       *ConfigService
	generator     Generator
	log           *logger.Logger

	// One lock per character serializes concurrent turns against the same
	// transcript; turns for different characters proceed in parallel.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	// One breaker per provider so a flapping upstream only short-circuits
	// its own traffic.
	breakersMu sync.Mutex
	breakers   map[ai.Provider]*resilience.CircuitBreaker
}

func NewChatService(
	characters *CharacterService,
	sessions repository.SessionRepository,
	relationships *RelationshipService,
	configs *ConfigService,
	generator Generator,
	log *logger.Logger,
) *ChatService {
	return &ChatService{
		characters:    characters,
		sessions:      sessions,
		relationships: relationships,
		configs:       configs,
		generator:     generator,
		log:           log,
		locks:         make(map[string]*sync.Mutex),
		breakers:      make(map[ai.Provider]*resilience.CircuitBreaker),
	}
}

func (s *ChatService) characterLock(characterID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	lock, ok := s.locks[characterID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[characterID] = lock
	}
	return lock
}

func (s *ChatService) breakerFor(provider ai.Provider) *resilience.CircuitBreaker {
	s.breakersMu.Lock()
	defer s.breakersMu.Unlock()
	breaker, ok := s.breakers[provider]
	if !ok {
		breaker = resilience.NewCircuitBreaker(resilience.DefaultConfig("ai-"+provider.String()), s.log)
		s.breakers[provider] = breaker
	}
	return breaker
}

// upstreamFailure reports whether err reflects the provider being
// unhealthy, as opposed to a local configuration mistake.
func upstreamFailure(err error) bool {
	if err == nil {
		return false
	}
	var genErr *ai.Error
	if errors.As(err, &genErr) {
		return genErr.Kind == ai.ErrProvider || genErr.Kind == ai.ErrNetwork
	}
	return true
}

// SendMessage runs one chat turn for a character and returns the new
// exchange along with the updated session.
func (s *ChatService) SendMessage(ctx context.Context, characterID, content string) (*Exchange, error) {
	lock := s.characterLock(characterID)
	lock.Lock()
	defer lock.Unlock()

	character, err := s.characters.Get(ctx, characterID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.GetByCharacter(characterID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		session = &models.ChatSession{
			ID:          characterID + "-session",
			CharacterID: characterID,
			CreatedAt:   time.Now(),
		}
	} else if err != nil {
		return nil, err
	}

	cfg, err := s.configs.Current()
	if err != nil {
		return nil, err
	}

	model := character.AIModel
	if model == "" {
		model = cfg.SelectedModel
	}
	provider, _ := ai.ResolveProvider(model)

	var reply string
	var callErr error
	genErr := s.breakerFor(provider).Execute(func() error {
		reply, callErr = s.generator.GenerateResponse(ctx, cfg, character, session.Messages, content)
		// Configuration problems like a missing API key never reached the
		// provider, so they must not count toward its health.
		if upstreamFailure(callErr) {
			return callErr
		}
		return nil
	})
	if genErr == nil {
		genErr = callErr
	}
	if genErr != nil {
		if errors.Is(genErr, resilience.ErrCircuitOpen) {
			return nil, apperrors.NewError(http.StatusServiceUnavailable, "PROVIDER_UNAVAILABLE", "AI provider temporarily unavailable")
		}
		return nil, genErr
	}

	now := time.Now()
	userMessage := models.Message{
		ID:          uuid.NewString(),
		SessionID:   session.ID,
		CharacterID: characterID,
		Content:     content,
		IsUser:      true,
		Timestamp:   now,
	}
	aiMessage := models.Message{
		ID:          uuid.NewString(),
		SessionID:   session.ID,
		CharacterID: characterID,
		Content:     reply,
		IsUser:      false,
		Timestamp:   now.Add(time.Millisecond),
	}

	session.Messages = append(session.Messages, userMessage, aiMessage)
	session.LastMessageAt = now
	if err := s.sessions.Replace(session); err != nil {
		return nil, err
	}

	if err := s.characters.RecordChatActivity(ctx, characterID, len(session.Messages), now); err != nil {
		s.log.WithCharacterID(characterID).Warn("failed to record chat activity", "error", err)
	}
	if err := s.relationships.RecordExchange(ctx, character, len(session.Messages), now); err != nil {
		s.log.WithCharacterID(characterID).Warn("failed to update relationship", "error", err)
	}

	return &Exchange{
		UserMessage: userMessage,
		Reply:       aiMessage,
		Session:     *session,
	}, nil
}

// GetSession returns the character's transcript, or an empty session when
// no conversation has happened yet.
func (s *ChatService) GetSession(ctx context.Context, characterID string) (*models.ChatSession, error) {
	if _, err := s.characters.Get(ctx, characterID); err != nil {
		return nil, err
	}

	session, err := s.sessions.GetByCharacter(characterID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.ChatSession{
			ID:          characterID + "-session",
			CharacterID: characterID,
			Messages:    []models.Message{},
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// ClearSession wipes the character's transcript.
func (s *ChatService) ClearSession(ctx context.Context, characterID string) error {
	if _, err := s.characters.Get(ctx, characterID); err != nil {
		return err
	}
	return s.sessions.DeleteByCharacter(characterID)
}
