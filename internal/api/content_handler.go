package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"townhub-backend/internal/core"
	"townhub-backend/internal/models"
)

// ContentHandler handles the public content surface: news, events, alerts.
type ContentHandler struct {
	contentService core.ContentService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(cs core.ContentService) *ContentHandler {
	return &ContentHandler{contentService: cs}
}

func mapContentErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrContentNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrContentNotFound.Error()})
	case errors.Is(err, core.ErrInvalidContent):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrInvalidContent.Error()})
	case errors.Is(err, core.ErrInvalidAlert):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrInvalidAlert.Error()})
	default:
		log.Printf("Internal Server Error in ContentHandler: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

func listLimit(c *gin.Context, fallback int) int {
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// ListNews handles GET /news.
func (h *ContentHandler) ListNews(c *gin.Context) {
	articles, err := h.contentService.ListNews(c.Request.Context(), listLimit(c, 20))
	if err != nil {
		mapContentErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// GetNews handles GET /news/:newsId.
func (h *ContentHandler) GetNews(c *gin.Context) {
	article, err := h.contentService.GetNews(c.Request.Context(), c.Param("newsId"))
	if err != nil {
		mapContentErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// CreateNews handles POST /admin/news.
func (h *ContentHandler) CreateNews(c *gin.Context) {
	var req models.CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	article, err := h.contentService.CreateNews(c.Request.Context(), &models.NewsArticle{
		Title:    req.Title,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		mapContentErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// UpdateNews handles PUT /admin/news/:newsId.
func (h *ContentHandler) UpdateNews(c *gin.Context) {
	var req models.CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	article := &models.NewsArticle{
		ID:       c.Param("newsId"),
		Title:    req.Title,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	}
	if err := h.contentService.UpdateNews(c.Request.Context(), article); err != nil {
		mapContentErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// DeleteNews handles DELETE /admin/news/:newsId.
func (h *ContentHandler) DeleteNews(c *gin.Context) {
	if err := h.contentService.DeleteNews(c.Request.Context(), c.Param("newsId")); err != nil {
		mapContentErrorToStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListEvents handles GET /events.
func (h *ContentHandler) ListEvents(c *gin.Context) {
	events, err := h.contentService.ListEvents(c.Request.Context(), listLimit(c, 20))
	if err != nil {
		mapContentErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetEvent handles GET /events/:eventId.
func (h *ContentHandler) GetEvent(c *gin.Context) {
	event, err := h.contentService.GetEvent(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		mapContentErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// CreateEvent handles POST /admin/events.
func (h *ContentHandler) CreateEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	event, err := h.contentService.CreateEvent(c.Request.Context(), &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		mapContentErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// UpdateEvent handles PUT /admin/events/:eventId.
func (h *ContentHandler) UpdateEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	event := &models.Event{
		ID:          c.Param("eventId"),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		ImageURL:    req.ImageURL,
	}
	if err := h.contentService.UpdateEvent(c.Request.Context(), event); err != nil {
		mapContentErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// DeleteEvent handles DELETE /admin/events/:eventId.
func (h *ContentHandler) DeleteEvent(c *gin.Context) {
	if err := h.contentService.DeleteEvent(c.Request.Context(), c.Param("eventId")); err != nil {
		mapContentErrorToStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAlerts handles GET /alerts. Only the public alert types are served
// here; the admin console uses ListAllAlerts.
func (h *ContentHandler) ListAlerts(c *gin.Context) {
	alerts, err := h.contentService.ListPublicAlerts(c.Request.Context())
	if err != nil {
		mapContentErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// ListAllAlerts handles GET /admin/alerts.
func (h *ContentHandler) ListAllAlerts(c *gin.Context) {
	alerts, err := h.contentService.ListAllAlerts(c.Request.Context())
	if err != nil {
		mapContentErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// CreateAlert handles POST /admin/alerts.
func (h *ContentHandler) CreateAlert(c *gin.Context) {
	var req models.CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	alert, err := h.contentService.CreateAlert(c.Request.Context(), &models.Alert{
		Type:  req.Type,
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		mapContentErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, alert)
}

// DeleteAlert handles DELETE /admin/alerts/:alertId.
func (h *ContentHandler) DeleteAlert(c *gin.Context) {
	if err := h.contentService.DeleteAlert(c.Request.Context(), c.Param("alertId")); err != nil {
		mapContentErrorToStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
