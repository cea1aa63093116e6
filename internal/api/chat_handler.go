package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"townhub-backend/internal/core"
	"townhub-backend/internal/models"
)

// ChatHandler handles the resident/admin chat endpoints.
type ChatHandler struct {
	chatService core.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(cs core.ChatService) *ChatHandler {
	return &ChatHandler{chatService: cs}
}

func mapChatErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrEmptyMessage.Error()})
	case errors.Is(err, core.ErrInvalidSender):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrInvalidSender.Error()})
	default:
		log.Printf("Internal Server Error in ChatHandler: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// StreamThreads handles GET /admin/chat/stream. Each event is the full
// thread list, one entry per resident, newest conversation first.
func (h *ChatHandler) StreamThreads(c *gin.Context) {
	updates := make(chan []models.ChatThread, 1)
	stop := h.chatService.WatchThreads(c.Request.Context(), func(threads []models.ChatThread) {
		pushLatest(updates, threads)
	})
	defer stop()

	streamSSE(c, "threads", updates)
}

// StreamThread handles GET /admin/chat/threads/:userId/stream and, on the
// resident surface, GET /chat/stream against the caller's own thread.
func (h *ChatHandler) StreamThread(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		userID = c.GetString("userID")
	}
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	updates := make(chan []models.Message, 1)
	stop := h.chatService.WatchThread(c.Request.Context(), userID, func(msgs []models.Message) {
		pushLatest(updates, msgs)
	})
	defer stop()

	streamSSE(c, "thread", updates)
}

// SendMessage handles POST /chat for residents.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	msg, err := h.chatService.SendMessage(
		c.Request.Context(),
		userID.(string),
		c.GetString("userDisplayName"),
		req.Message,
		models.SenderUser,
	)
	if err != nil {
		mapChatErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// SendAdminReply handles POST /admin/chat/threads/:userId. The reply lands
// in the resident's thread under the admin sender.
func (h *ChatHandler) SendAdminReply(c *gin.Context) {
	targetID := c.Param("userId")
	if targetID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User ID is required in path"})
		return
	}

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	msg, err := h.chatService.SendMessage(
		c.Request.Context(),
		targetID,
		req.UserName,
		req.Message,
		models.SenderAdmin,
	)
	if err != nil {
		mapChatErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// MarkThreadRead handles POST /admin/chat/markread with the snapshot of
// message IDs to acknowledge.
func (h *ChatHandler) MarkThreadRead(c *gin.Context) {
	var req models.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.chatService.MarkThreadRead(c.Request.Context(), req.IDs); err != nil {
		mapChatErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Messages marked as read"})
}
