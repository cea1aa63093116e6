package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"townhub-backend/internal/core"
	"townhub-backend/internal/models"
)

// JobHandler handles job postings and the application ledger.
type JobHandler struct {
	applicationService core.ApplicationService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(as core.ApplicationService) *JobHandler {
	return &JobHandler{applicationService: as}
}

func mapJobErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrJobNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrJobNotFound.Error()})
	case errors.Is(err, core.ErrJobClosed):
		c.JSON(http.StatusConflict, ErrorResponse{Error: core.ErrJobClosed.Error()})
	case errors.Is(err, core.ErrAlreadyApplied):
		c.JSON(http.StatusConflict, ErrorResponse{Error: core.ErrAlreadyApplied.Error()})
	case errors.Is(err, core.ErrInvalidApplication):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrInvalidApplication.Error()})
	case errors.Is(err, core.ErrInvalidJob):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrInvalidJob.Error()})
	default:
		log.Printf("Internal Server Error in JobHandler: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// ListJobs handles GET /jobs.
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.applicationService.ListJobs(c.Request.Context())
	if err != nil {
		mapJobErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// CreateJob handles POST /admin/jobs.
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req models.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	job, err := h.applicationService.CreateJob(c.Request.Context(), &models.Job{
		Title:       req.Title,
		Description: req.Description,
		Department:  req.Department,
	})
	if err != nil {
		mapJobErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// CloseJob handles PATCH /admin/jobs/:jobId/close.
func (h *JobHandler) CloseJob(c *gin.Context) {
	jobID := c.Param("jobId")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Job ID is required in path"})
		return
	}

	if err := h.applicationService.CloseJob(c.Request.Context(), jobID); err != nil {
		mapJobErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Job closed"})
}

// Apply handles POST /jobs/:jobId/apply. A second application by the same
// user is rejected with a conflict.
func (h *JobHandler) Apply(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	jobID := c.Param("jobId")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Job ID is required in path"})
		return
	}

	var req models.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	app := &models.JobApplication{
		JobID:    jobID,
		UserID:   userID.(string),
		FullName: req.FullName,
		Phone:    req.Phone,
		Profile:  req.Profile,
	}
	if err := h.applicationService.SubmitApplication(c.Request.Context(), app); err != nil {
		mapJobErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// GetMyApplication handles GET /jobs/:jobId/application.
func (h *JobHandler) GetMyApplication(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	jobID := c.Param("jobId")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Job ID is required in path"})
		return
	}

	applied, err := h.applicationService.HasApplied(c.Request.Context(), jobID, userID.(string))
	if err != nil {
		mapJobErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": applied})
}

// ListApplications handles GET /admin/jobs/:jobId/applications.
func (h *JobHandler) ListApplications(c *gin.Context) {
	jobID := c.Param("jobId")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Job ID is required in path"})
		return
	}

	apps, err := h.applicationService.ListApplications(c.Request.Context(), jobID)
	if err != nil {
		mapJobErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// SetApplicationStatus handles PATCH /admin/jobs/:jobId/applications.
func (h *JobHandler) SetApplicationStatus(c *gin.Context) {
	jobID := c.Param("jobId")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Job ID is required in path"})
		return
	}

	var req models.SetApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.applicationService.SetApplicationStatus(c.Request.Context(), jobID, req.UserID, req.Status); err != nil {
		mapJobErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Application status updated"})
}
