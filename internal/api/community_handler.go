package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"townhub-backend/internal/core"
	"townhub-backend/internal/models"
)

// CommunityHandler handles submissions, marketplace listings and donations.
type CommunityHandler struct {
	communityService core.CommunityService
}

// NewCommunityHandler creates a new CommunityHandler.
func NewCommunityHandler(cs core.CommunityService) *CommunityHandler {
	return &CommunityHandler{communityService: cs}
}

func mapCommunityErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrListingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrListingNotFound.Error()})
	case errors.Is(err, core.ErrSubmissionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrSubmissionNotFound.Error()})
	case errors.Is(err, core.ErrNotListingOwner):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: core.ErrNotListingOwner.Error()})
	case errors.Is(err, core.ErrInvalidListing):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrInvalidListing.Error()})
	case errors.Is(err, core.ErrInvalidDonation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrInvalidDonation.Error()})
	case errors.Is(err, models.ErrUnknownSubmissionType),
		errors.Is(err, models.ErrMissingLocation),
		errors.Is(err, models.ErrMissingSubject),
		errors.Is(err, models.ErrMissingDescription):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		log.Printf("Internal Server Error in CommunityHandler: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// CreateSubmission handles POST /submissions.
func (h *CommunityHandler) CreateSubmission(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	var req models.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	sub, err := h.communityService.CreateSubmission(c.Request.Context(), &models.Submission{
		Type:        req.Type,
		UserID:      userID.(string),
		UserName:    c.GetString("userDisplayName"),
		Subject:     req.Subject,
		Description: req.Description,
		Location:    req.Location,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		mapCommunityErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// ListMySubmissions handles GET /submissions/mine.
func (h *CommunityHandler) ListMySubmissions(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	subs, err := h.communityService.ListUserSubmissions(c.Request.Context(), userID.(string))
	if err != nil {
		mapCommunityErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// ListSubmissions handles GET /admin/submissions.
func (h *CommunityHandler) ListSubmissions(c *gin.Context) {
	subs, err := h.communityService.ListSubmissions(c.Request.Context())
	if err != nil {
		mapCommunityErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// ResolveSubmission handles PATCH /admin/submissions/:submissionId/resolve.
func (h *CommunityHandler) ResolveSubmission(c *gin.Context) {
	if err := h.communityService.ResolveSubmission(c.Request.Context(), c.Param("submissionId")); err != nil {
		mapCommunityErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Submission resolved"})
}

// ListListings handles GET /listings.
func (h *CommunityHandler) ListListings(c *gin.Context) {
	listings, err := h.communityService.ListListings(c.Request.Context(), listLimit(c, 50))
	if err != nil {
		mapCommunityErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, listings)
}

// CreateListing handles POST /listings.
func (h *CommunityHandler) CreateListing(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	var req models.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	listing, err := h.communityService.CreateListing(c.Request.Context(), &models.Listing{
		OwnerID:     userID.(string),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Phone:       req.Phone,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		mapCommunityErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, listing)
}

// UpdateListing handles PUT /listings/:listingId.
func (h *CommunityHandler) UpdateListing(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	var req models.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	listing := &models.Listing{
		ID:          c.Param("listingId"),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Phone:       req.Phone,
		ImageURL:    req.ImageURL,
	}
	if err := h.communityService.UpdateListing(c.Request.Context(), userID.(string), c.GetBool("isAdmin"), listing); err != nil {
		mapCommunityErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// DeleteListing handles DELETE /listings/:listingId.
func (h *CommunityHandler) DeleteListing(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	if err := h.communityService.DeleteListing(c.Request.Context(), userID.(string), c.GetBool("isAdmin"), c.Param("listingId")); err != nil {
		mapCommunityErrorToStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateDonation handles POST /donations.
func (h *CommunityHandler) CreateDonation(c *gin.Context) {
	var req models.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	donation, err := h.communityService.CreateDonation(c.Request.Context(), &models.Donation{
		UserID:    c.GetString("userID"),
		DonorName: req.DonorName,
		Amount:    req.Amount,
		Message:   req.Message,
	})
	if err != nil {
		mapCommunityErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, donation)
}

// ListDonations handles GET /donations.
func (h *CommunityHandler) ListDonations(c *gin.Context) {
	donations, err := h.communityService.ListDonations(c.Request.Context(), listLimit(c, 50))
	if err != nil {
		mapCommunityErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, donations)
}

// DonationTotal handles GET /donations/total.
func (h *CommunityHandler) DonationTotal(c *gin.Context) {
	total, err := h.communityService.DonationTotal(c.Request.Context())
	if err != nil {
		mapCommunityErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}
