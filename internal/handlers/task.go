package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/napat/work-monitor-api/internal/dto"
	apierrors "github.com/napat/work-monitor-api/internal/errors"
	"github.com/napat/work-monitor-api/internal/middleware"
	"github.com/napat/work-monitor-api/internal/models"
	"github.com/napat/work-monitor-api/internal/services"
	"github.com/napat/work-monitor-api/internal/utils"
)

// TaskHandler coordinates task and feed HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
	feedService *services.FeedService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, feedService *services.FeedService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		feedService: feedService,
	}
}

// CreateTask creates a task in the project from the route.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	member, ok := middleware.GetProjectMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not loaded")
		return
	}

	type CreateTaskRequest struct {
		Title        string `json:"title" binding:"required"`
		AssigneeName string `json:"assignee_name"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(member, services.CreateTaskInput{
		Title:        req.Title,
		AssigneeName: req.AssigneeName,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTaskFeed returns the task with its update feed.
func (h *TaskHandler) GetTaskFeed(c *gin.Context) {
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

	params := utils.GetPaginationParams(c)

	feed, err := h.feedService.GetFeed(member, &task, params)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskFeedResponse(task, *feed, params))
}

// SetStatus changes the task's status (manager roles only).
func (h *TaskHandler) SetStatus(c *gin.Context) {
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

	type SetStatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.taskService.SetStatus(member, &task, models.TaskStatus(req.Status)); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// SetProgress changes the task's progress percent (manager roles only).
func (h *TaskHandler) SetProgress(c *gin.Context) {
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

	type SetProgressRequest struct {
		Progress string `json:"progress"`
	}

	var req SetProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if _, err := h.taskService.SetProgress(member, &task, req.Progress); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// PostUpdate appends an update to the task's feed.
func (h *TaskHandler) PostUpdate(c *gin.Context) {
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

	type PostUpdateRequest struct {
		Content  string `json:"content" binding:"required"`
		Progress string `json:"progress"`
		Status   string `json:"status"`
		Links    string `json:"links"`
	}

	var req PostUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	update, err := h.feedService.PostUpdate(member, &task, services.PostUpdateInput{
		Content:   req.Content,
		Progress:  req.Progress,
		Status:    req.Status,
		LinkLines: req.Links,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"update": dto.ToUpdateDTO(*update, nil, nil),
		"task":   dto.ToTaskDTO(task),
	})
}

// GetUpdate returns one update with its links and files.
func (h *TaskHandler) GetUpdate(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	updateID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid update ID")
		return
	}

	detail, err := h.feedService.GetUpdateDetail(userID, updateID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUpdateDetailResponse(*detail))
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskTitleRequired),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrUpdateContentRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrManagerRoleRequired):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrUpdateNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotAMember):
		// Avoid leaking existence to non-members
		apierrors.NotFound(c, "Update not found")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
