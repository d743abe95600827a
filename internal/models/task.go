package models

import "time"

type TaskStatus string

const (
	TaskStatusTodo    TaskStatus = "todo"
	TaskStatusDoing   TaskStatus = "doing"
	TaskStatusDone    TaskStatus = "done"
	TaskStatusBlocked TaskStatus = "blocked"
)

// Valid reports whether the status is one of the four enumerated values.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusDoing, TaskStatusDone, TaskStatusBlocked:
		return true
	}
	return false
}

// ClampProgress forces a progress value into [0,100].
func ClampProgress(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

type Task struct {
	ID        uint64 `gorm:"primarykey" json:"id"`
	ProjectID uint64 `gorm:"not null;index" json:"project_id"`
	Title     string `gorm:"type:varchar(200);not null" json:"title"`
	// AssigneeName is free text, not a user reference.
	AssigneeName    string     `gorm:"type:varchar(120)" json:"assignee_name"`
	ProgressPercent int        `gorm:"not null;default:0" json:"progress_percent"`
	Status          TaskStatus `gorm:"type:varchar(32);not null;default:'todo'" json:"status"`
	LastUpdated     time.Time  `json:"last_updated"`
	CreatedByID     uint64     `gorm:"not null" json:"created_by_id"`

	// Relations
	Project Project      `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Creator User         `gorm:"foreignKey:CreatedByID" json:"creator,omitempty"`
	Updates []TaskUpdate `gorm:"foreignKey:TaskID" json:"updates,omitempty"`
	Files   []TaskFile   `gorm:"foreignKey:TaskID" json:"files,omitempty"`
}
