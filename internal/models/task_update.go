package models

import "time"

// TaskUpdate is one entry in a task's append-only feed. Entries are never
// edited or deleted. Status/progress changes made directly on a task are
// recorded here too, as conventionally formatted system entries, so the
// feed stays a complete chronological record.
type TaskUpdate struct {
	ID              uint64      `gorm:"primarykey" json:"id"`
	TaskID          uint64      `gorm:"not null;index" json:"task_id"`
	AuthorID        uint64      `gorm:"not null" json:"author_id"`
	Content         string      `gorm:"type:text;not null" json:"content"`
	ProgressPercent *int        `json:"progress_percent,omitempty"`
	Status          *TaskStatus `gorm:"type:varchar(32)" json:"status,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`

	// Relations
	Task   Task             `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Author User             `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Links  []TaskUpdateLink `gorm:"foreignKey:TaskUpdateID" json:"links,omitempty"`
}
