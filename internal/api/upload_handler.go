package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"townhub-backend/internal/core"
)

// maxUploadBytes caps a single attachment at 10 MiB.
const maxUploadBytes = 10 << 20

// UploadHandler stores attachments in the configured bucket.
type UploadHandler struct {
	storageService core.StorageService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(ss core.StorageService) *UploadHandler {
	return &UploadHandler{storageService: ss}
}

// Upload handles POST /uploads. Expects a multipart form with a "file"
// field and an optional "folder" field.
func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A 'file' form field is required", Details: err.Error()})
		return
	}

	folder := c.PostForm("folder")
	if folder == "" {
		folder = "uploads"
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read uploaded file", Details: err.Error()})
		return
	}
	defer f.Close()

	url, err := h.storageService.Upload(
		c.Request.Context(),
		folder,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		f,
	)
	if err != nil {
		log.Printf("Internal Server Error in UploadHandler: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to store the uploaded file."})
		return
	}

	c.JSON(http.StatusCreated, UploadResponse{URL: url})
}
