package handlers

import (
	"github.com/gin-gonic/gin"

	"portfolio-server/internal/services"
	"portfolio-server/internal/utils"
)

// StatsHandler serves the admin dashboard summary.
type StatsHandler struct {
	Stats *services.StatsService
}

func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{Stats: stats}
}

func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.Stats.Summary(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, stats)
}
