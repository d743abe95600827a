package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/napat/work-monitor-api/internal/dto"
	apierrors "github.com/napat/work-monitor-api/internal/errors"
	"github.com/napat/work-monitor-api/internal/middleware"
	"github.com/napat/work-monitor-api/internal/services"
)

// FileHandler coordinates file registration HTTP handlers. Uploads happen
// directly against the blob provider; these endpoints only move metadata.
type FileHandler struct {
	feedService *services.FeedService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(feedService *services.FeedService) *FileHandler {
	return &FileHandler{
		feedService: feedService,
	}
}

// RegisterFile records metadata for an already-uploaded object.
func (h *FileHandler) RegisterFile(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not loaded")
		return
	}
	member, ok := middleware.GetTaskMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not loaded")
		return
	}

	type RegisterFileRequest struct {
		FileName     string  `json:"file_name"`
		ContentType  string  `json:"content_type"`
		SizeBytes    int64   `json:"size_bytes"`
		PublicID     string  `json:"public_id"`
		SecureURL    string  `json:"secure_url"`
		TaskUpdateID *uint64 `json:"task_update_id"`
	}

	var req RegisterFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	file, err := h.feedService.RegisterFile(member, &task, services.RegisterFileInput{
		FileName:     req.FileName,
		ContentType:  req.ContentType,
		SizeBytes:    req.SizeBytes,
		PublicID:     req.PublicID,
		SecureURL:    req.SecureURL,
		TaskUpdateID: req.TaskUpdateID,
	})
	if err != nil {
		respondFileError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFileDTO(*file))
}

// DeleteFile removes a registered file.
func (h *FileHandler) DeleteFile(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not loaded")
		return
	}
	member, ok := middleware.GetTaskMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not loaded")
		return
	}

	fileID, err := strconv.ParseUint(c.Param("file_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid file ID")
		return
	}

	if err := h.feedService.DeleteFile(member, &task, fileID); err != nil {
		respondFileError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File deleted",
	})
}

func respondFileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrFileFieldsMissing),
		errors.Is(err, services.ErrFileTypeUnsupported),
		errors.Is(err, services.ErrFileTooLarge):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrFileNotFound),
		errors.Is(err, services.ErrUpdateNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFileDeleteForbidden):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
