package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"townhub-backend/internal/core"
)

// StatsHandler serves the admin dashboard counters.
type StatsHandler struct {
	statsService core.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(ss core.StatsService) *StatsHandler {
	return &StatsHandler{statsService: ss}
}

// GetDashboard handles GET /admin/stats.
func (h *StatsHandler) GetDashboard(c *gin.Context) {
	stats, err := h.statsService.Dashboard(c.Request.Context())
	if err != nil {
		log.Printf("Internal Server Error in StatsHandler: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
		return
	}
	c.JSON(http.StatusOK, stats)
}
