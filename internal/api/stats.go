package api

import (
	"net/http"

	"github.com/mkcodedev2/persona-realista/internal/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	stats *service.StatsService
}

func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.stats.UserStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
