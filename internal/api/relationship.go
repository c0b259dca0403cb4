package api

import (
	"net/http"

	"github.com/mkcodedev2/persona-realista/internal/service"

	"github.com/gin-gonic/gin"
)

type RelationshipHandler struct {
	relationships *service.RelationshipService
}

func NewRelationshipHandler(relationships *service.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{relationships: relationships}
}

func (h *RelationshipHandler) ListRelationships(c *gin.Context) {
	relationships, err := h.relationships.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, relationships)
}

func (h *RelationshipHandler) GetRelationship(c *gin.Context) {
	relationship, err := h.relationships.GetByCharacter(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, relationship)
}
