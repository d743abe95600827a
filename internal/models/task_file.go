package models

import "time"

// TaskFile records metadata for an object that already lives in external
// blob storage. TaskUpdateID is nullable: a file with no update is "loose".
type TaskFile struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	TaskID       uint64    `gorm:"not null;index" json:"task_id"`
	TaskUpdateID *uint64   `json:"task_update_id,omitempty"`
	FileName     string    `gorm:"type:varchar(255);not null" json:"file_name"`
	ContentType  string    `gorm:"type:varchar(120)" json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	Provider     string    `gorm:"type:varchar(32)" json:"provider"`
	PublicID     string    `gorm:"type:varchar(255)" json:"public_id"`
	SecureURL    string    `gorm:"type:varchar(1000)" json:"secure_url"`
	CreatedAt    time.Time `json:"created_at"`
}
