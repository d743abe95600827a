package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/napat/work-monitor-api/internal/models"
	"github.com/napat/work-monitor-api/internal/repository"
)

var (
	ErrTaskTitleRequired = errors.New("task title cannot be empty")
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidTaskStatus = errors.New("status must be one of todo, doing, done, blocked")
)

// TaskService handles task business logic.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title        string
	AssigneeName string
}

// CreateTask creates a task in the member's project. Any role may create
// tasks; new tasks start at todo with zero progress.
func (s *TaskService) CreateTask(member models.ProjectMember, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTaskTitleRequired
	}

	task := &models.Task{
		ProjectID:       member.ProjectID,
		Title:           title,
		AssigneeName:    strings.TrimSpace(input.AssigneeName),
		Status:          models.TaskStatusTodo,
		ProgressPercent: 0,
		LastUpdated:     time.Now(),
		CreatedByID:     member.UserID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// SetStatus changes a task's status. Restricted to manager roles. The change
// is recorded in the task's feed as a system-authored update.
func (s *TaskService) SetStatus(member models.ProjectMember, task *models.Task, status models.TaskStatus) error {
	if err := requireRole(member, managerRoles...); err != nil {
		return err
	}
	if !status.Valid() {
		return ErrInvalidTaskStatus
	}

	task.Status = status
	task.LastUpdated = time.Now()

	update := &models.TaskUpdate{
		TaskID:   task.ID,
		AuthorID: member.UserID,
		Content:  fmt.Sprintf("status changed to %s", status),
		Status:   &status,
	}

	if err := s.taskRepo.ApplyChange(task, update); err != nil {
		return fmt.Errorf("failed to set status: %w", err)
	}

	return nil
}

// SetProgress changes a task's progress percent. Restricted to manager
// roles. The raw value is clamped into [0,100]; input that does not parse as
// an integer leaves the current progress unchanged rather than erroring. The
// change is recorded in the task's feed as a system-authored update.
func (s *TaskService) SetProgress(member models.ProjectMember, task *models.Task, raw string) (int, error) {
	if err := requireRole(member, managerRoles...); err != nil {
		return 0, err
	}

	percent := task.ProgressPercent
	if v, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		percent = models.ClampProgress(v)
	}

	task.ProgressPercent = percent
	task.LastUpdated = time.Now()

	update := &models.TaskUpdate{
		TaskID:          task.ID,
		AuthorID:        member.UserID,
		Content:         fmt.Sprintf("progress updated to %d%%", percent),
		ProgressPercent: &percent,
	}

	if err := s.taskRepo.ApplyChange(task, update); err != nil {
		return 0, fmt.Errorf("failed to set progress: %w", err)
	}

	return percent, nil
}
