package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"townhub-backend/internal/core"
	"townhub-backend/internal/models"
)

// NotificationHandler handles the admin inbox endpoints.
type NotificationHandler struct {
	notificationService core.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(ns core.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: ns}
}

func mapNotificationErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrNotificationNotFound.Error()})
	default:
		log.Printf("Internal Server Error in NotificationHandler: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// StreamInbox handles GET /admin/notifications/stream. Each event carries
// the full current feed with its unread count.
func (h *NotificationHandler) StreamInbox(c *gin.Context) {
	updates := make(chan models.NotificationFeed, 1)
	stop := h.notificationService.Subscribe(c.Request.Context(), func(feed models.NotificationFeed) {
		pushLatest(updates, feed)
	})
	defer stop()

	streamSSE(c, "inbox", updates)
}

// ListNotifications handles GET /admin/notifications.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	feed, err := h.notificationService.List(c.Request.Context())
	if err != nil {
		mapNotificationErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// MarkRead handles PATCH /admin/notifications/:notificationId/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id := c.Param("notificationId")
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Notification ID is required in path"})
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), id); err != nil {
		mapNotificationErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Notification marked as read"})
}

// MarkAllRead handles POST /admin/notifications/markallread. The client
// sends the IDs from its current snapshot; notifications arriving after
// that snapshot stay unread.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	var req models.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.notificationService.MarkAllRead(c.Request.Context(), req.IDs); err != nil {
		mapNotificationErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Notifications marked as read"})
}
