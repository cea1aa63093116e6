package api

import (
	"github.com/gin-gonic/gin"

	"townhub-backend/internal/core"
	"townhub-backend/internal/models"
)

// ActivityHandler streams the merged admin activity feed.
type ActivityHandler struct {
	activityService core.ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(as core.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: as}
}

// StreamFeed handles GET /admin/activity/stream. Every event is a complete,
// newest-first feed; the client replaces its view wholesale.
func (h *ActivityHandler) StreamFeed(c *gin.Context) {
	updates := make(chan []models.ActivityItem, 1)
	stop := h.activityService.Subscribe(c.Request.Context(), func(items []models.ActivityItem) {
		pushLatest(updates, items)
	})
	defer stop()

	streamSSE(c, "activity", updates)
}
