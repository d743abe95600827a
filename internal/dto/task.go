package dto

import (
	"time"

	"github.com/napat/work-monitor-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID              uint64            `json:"id"`
	ProjectID       uint64            `json:"project_id"`
	Title           string            `json:"title"`
	AssigneeName    string            `json:"assignee_name,omitempty"`
	ProgressPercent int               `json:"progress_percent"`
	Status          models.TaskStatus `json:"status"`
	LastUpdated     time.Time         `json:"last_updated"`
	CreatedByID     uint64            `json:"created_by_id"`
	Creator         *UserDTO          `json:"creator,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:              task.ID,
		ProjectID:       task.ProjectID,
		Title:           task.Title,
		AssigneeName:    task.AssigneeName,
		ProgressPercent: task.ProgressPercent,
		Status:          task.Status,
		LastUpdated:     task.LastUpdated,
		CreatedByID:     task.CreatedByID,
	}

	// Include creator if preloaded
	if task.Creator.ID != 0 {
		creator := ToUserDTO(task.Creator)
		dto.Creator = &creator
	}

	return dto
}
