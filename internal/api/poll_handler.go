package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"townhub-backend/internal/core"
	"townhub-backend/internal/models"
)

// PollHandler handles poll lifecycle and voting endpoints.
type PollHandler struct {
	pollService core.PollService
}

// NewPollHandler creates a new PollHandler.
func NewPollHandler(ps core.PollService) *PollHandler {
	return &PollHandler{pollService: ps}
}

func mapPollErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrPollNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrPollNotFound.Error()})
	case errors.Is(err, core.ErrPollClosed):
		c.JSON(http.StatusConflict, ErrorResponse{Error: core.ErrPollClosed.Error()})
	case errors.Is(err, core.ErrInvalidPollChoice):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrInvalidPollChoice.Error()})
	case errors.Is(err, core.ErrInvalidPoll):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrInvalidPoll.Error()})
	default:
		log.Printf("Internal Server Error in PollHandler: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// ListPolls handles GET /polls.
func (h *PollHandler) ListPolls(c *gin.Context) {
	polls, err := h.pollService.ListPolls(c.Request.Context())
	if err != nil {
		mapPollErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, polls)
}

// CreatePoll handles POST /admin/polls.
func (h *PollHandler) CreatePoll(c *gin.Context) {
	var req models.CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	poll, err := h.pollService.CreatePoll(c.Request.Context(), req.Question, req.Options, req.Deadline)
	if err != nil {
		mapPollErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, poll)
}

// ClosePoll handles PATCH /admin/polls/:pollId/close.
func (h *PollHandler) ClosePoll(c *gin.Context) {
	pollID := c.Param("pollId")
	if pollID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Poll ID is required in path"})
		return
	}

	if err := h.pollService.ClosePoll(c.Request.Context(), pollID); err != nil {
		mapPollErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Poll closed"})
}

// CastVote handles POST /polls/:pollId/vote. Re-casting overwrites the
// caller's previous choice; the ledger never grows a second record.
func (h *PollHandler) CastVote(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	pollID := c.Param("pollId")
	if pollID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Poll ID is required in path"})
		return
	}

	var req models.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.pollService.CastVote(c.Request.Context(), pollID, userID.(string), req.Choice); err != nil {
		mapPollErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Vote recorded"})
}

// GetMyVote handles GET /polls/:pollId/vote.
func (h *PollHandler) GetMyVote(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	pollID := c.Param("pollId")
	if pollID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Poll ID is required in path"})
		return
	}

	voted, choice, err := h.pollService.HasVoted(c.Request.Context(), pollID, userID.(string))
	if err != nil {
		mapPollErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"voted": voted, "choice": choice})
}

// StreamMyVote handles GET /polls/:pollId/vote/stream. Events deliver the
// caller's current vote record, nil while none exists.
func (h *PollHandler) StreamMyVote(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	pollID := c.Param("pollId")
	if pollID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Poll ID is required in path"})
		return
	}

	updates := make(chan *models.VoteRecord, 1)
	stop := h.pollService.WatchVote(c.Request.Context(), pollID, userID.(string), func(v *models.VoteRecord) {
		pushLatest(updates, v)
	})
	defer stop()

	streamSSE(c, "vote", updates)
}

// Tally handles GET /admin/polls/:pollId/tally.
func (h *PollHandler) Tally(c *gin.Context) {
	pollID := c.Param("pollId")
	if pollID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Poll ID is required in path"})
		return
	}

	tally, err := h.pollService.Tally(c.Request.Context(), pollID)
	if err != nil {
		mapPollErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, tally)
}
