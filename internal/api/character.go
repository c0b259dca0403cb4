package api

import (
	"net/http"

	"github.com/mkcodedev2/persona-realista/internal/models"
	"github.com/mkcodedev2/persona-realista/internal/service"
	apperrors "github.com/mkcodedev2/persona-realista/pkg/errors"

	"github.com/gin-gonic/gin"
)

type CharacterHandler struct {
	characters *service.CharacterService
	configs    *service.ConfigService
}

func NewCharacterHandler(characters *service.CharacterService, configs *service.ConfigService) *CharacterHandler {
	return &CharacterHandler{characters: characters, configs: configs}
}

func (h *CharacterHandler) CreateCharacter(c *gin.Context) {
	var req models.CreateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewBadRequestError("INVALID_REQUEST", err.Error()))
		return
	}

	defaults, err := h.configs.Current()
	if err != nil {
		c.Error(err)
		return
	}

	character, err := h.characters.Create(c.Request.Context(), &req, defaults)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, character)
}

func (h *CharacterHandler) ListCharacters(c *gin.Context) {
	characters, err := h.characters.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, characters)
}

func (h *CharacterHandler) GetCharacter(c *gin.Context) {
	character, err := h.characters.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *CharacterHandler) UpdateCharacter(c *gin.Context) {
	var req models.CreateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewBadRequestError("INVALID_REQUEST", err.Error()))
		return
	}

	character, err := h.characters.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *CharacterHandler) DeleteCharacter(c *gin.Context) {
	if err := h.characters.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CharacterHandler) ExportCharacter(c *gin.Context) {
	code, err := h.characters.ExportCharacter(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"share_code": code})
}

type importCharacterRequest struct {
	ShareCode string `json:"share_code" binding:"required"`
}

func (h *CharacterHandler) ImportCharacter(c *gin.Context) {
	var req importCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewBadRequestError("INVALID_REQUEST", err.Error()))
		return
	}

	character, err := h.characters.ImportCharacter(c.Request.Context(), req.ShareCode)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, character)
}
