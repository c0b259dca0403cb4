package api

import (
	"net/http"

	"github.com/mkcodedev2/persona-realista/internal/models"
	"github.com/mkcodedev2/persona-realista/internal/service"
	apperrors "github.com/mkcodedev2/persona-realista/pkg/errors"

	"github.com/gin-gonic/gin"
)

type ScenarioHandler struct {
	scenarios *service.ScenarioService
}

func NewScenarioHandler(scenarios *service.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{scenarios: scenarios}
}

func (h *ScenarioHandler) CreateScenario(c *gin.Context) {
	var req models.CreateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewBadRequestError("INVALID_REQUEST", err.Error()))
		return
	}

	scenario, err := h.scenarios.Create(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, scenario)
}

func (h *ScenarioHandler) ListScenarios(c *gin.Context) {
	scenarios, err := h.scenarios.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, scenarios)
}

func (h *ScenarioHandler) GetScenario(c *gin.Context) {
	scenario, err := h.scenarios.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, scenario)
}

func (h *ScenarioHandler) UpdateScenario(c *gin.Context) {
	var req models.CreateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewBadRequestError("INVALID_REQUEST", err.Error()))
		return
	}

	scenario, err := h.scenarios.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, scenario)
}

func (h *ScenarioHandler) DeleteScenario(c *gin.Context) {
	if err := h.scenarios.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ScenarioHandler) ActivateScenario(c *gin.Context) {
	scenario, err := h.scenarios.Activate(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, scenario)
}

func (h *ScenarioHandler) DeactivateScenario(c *gin.Context) {
	if err := h.scenarios.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
