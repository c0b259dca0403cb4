package api

import (
	"net/http"

	"github.com/mkcodedev2/persona-realista/internal/service"
	apperrors "github.com/mkcodedev2/persona-realista/pkg/errors"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	templates *service.TemplateService
	configs   *service.ConfigService
}

func NewTemplateHandler(templates *service.TemplateService, configs *service.ConfigService) *TemplateHandler {
	return &TemplateHandler{templates: templates, configs: configs}
}

func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req service.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewBadRequestError("INVALID_REQUEST", err.Error()))
		return
	}

	template, err := h.templates.Create(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, template)
}

func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	templates, err := h.templates.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	template, err := h.templates.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	if err := h.templates.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// InstantiateTemplate creates a character from a template.
func (h *TemplateHandler) InstantiateTemplate(c *gin.Context) {
	defaults, err := h.configs.Current()
	if err != nil {
		c.Error(err)
		return
	}

	character, err := h.templates.Instantiate(c.Request.Context(), c.Param("id"), defaults)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, character)
}
