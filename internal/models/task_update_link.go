package models

import "time"

type TaskUpdateLink struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	TaskUpdateID uint64    `gorm:"not null;index" json:"task_update_id"`
	Title        string    `gorm:"type:varchar(200)" json:"title,omitempty"`
	URL          string    `gorm:"type:varchar(1000);not null" json:"url"`
	CreatedAt    time.Time `json:"created_at"`
}
