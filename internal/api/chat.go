package api

import (
	"errors"
	"net/http"

	"github.com/mkcodedev2/persona-realista/internal/ai"
	"github.com/mkcodedev2/persona-realista/internal/models"
	"github.com/mkcodedev2/persona-realista/internal/service"
	apperrors "github.com/mkcodedev2/persona-realista/pkg/errors"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chat *service.ChatService
}

func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// SendMessage handles one chat turn for a character.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewBadRequestError("INVALID_REQUEST", err.Error()))
		return
	}

	exchange, err := h.chat.SendMessage(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		c.Error(mapGenerationError(err))
		return
	}
	c.JSON(http.StatusOK, exchange)
}

func (h *ChatHandler) GetSession(c *gin.Context) {
	session, err := h.chat.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *ChatHandler) ClearSession(c *gin.Context) {
	if err := h.chat.ClearSession(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// mapGenerationError translates generation failures into HTTP-shaped
// application errors. Configuration problems are the caller's to fix (400);
// upstream failures surface as bad gateway.
func mapGenerationError(err error) error {
	var genErr *ai.Error
	if !errors.As(err, &genErr) {
		return err
	}

	switch genErr.Kind {
	case ai.ErrMissingCredential:
		return apperrors.NewBadRequestError("MISSING_API_KEY", genErr.Error())
	case ai.ErrUnsupportedProvider:
		return apperrors.NewBadRequestError("UNSUPPORTED_PROVIDER", genErr.Error())
	case ai.ErrProvider:
		return apperrors.NewBadGatewayError("PROVIDER_ERROR", genErr.Error())
	case ai.ErrNetwork:
		return apperrors.NewBadGatewayError("PROVIDER_UNREACHABLE", genErr.Error())
	}
	return apperrors.NewBadGatewayError("GENERATION_FAILED", genErr.Error())
}
