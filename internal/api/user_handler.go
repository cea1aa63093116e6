package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"townhub-backend/internal/core"
	"townhub-backend/internal/models"
)

// UserHandler handles profile initialization and the admin approval queue.
type UserHandler struct {
	userService core.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us core.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

func mapUserErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrUserNotFound.Error()})
	case errors.Is(err, core.ErrInvalidApproval):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrInvalidApproval.Error()})
	case errors.Is(err, core.ErrMissingIdentity):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrMissingIdentity.Error()})
	default:
		log.Printf("Internal Server Error in UserHandler: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// InitializeUserProfile handles POST /users/initialize. Called after
// client-side Firebase login to ensure a backend profile exists.
func (h *UserHandler) InitializeUserProfile(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	user, err := h.userService.InitializeProfile(
		c.Request.Context(),
		userID.(string),
		c.GetString("userEmail"),
		c.GetString("userDisplayName"),
	)
	if err != nil {
		mapUserErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetCurrentUserProfile handles GET /users/me.
func (h *UserHandler) GetCurrentUserProfile(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID.(string))
	if err != nil {
		mapUserErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListPendingUsers handles GET /admin/users/pending.
func (h *UserHandler) ListPendingUsers(c *gin.Context) {
	users, err := h.userService.ListPending(c.Request.Context())
	if err != nil {
		mapUserErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// SetApproval handles PATCH /admin/users/:userId/approval.
func (h *UserHandler) SetApproval(c *gin.Context) {
	targetID := c.Param("userId")
	if targetID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User ID is required in path"})
		return
	}

	var req models.SetApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.userService.SetApproval(c.Request.Context(), targetID, req.Status); err != nil {
		mapUserErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Approval status updated"})
}
