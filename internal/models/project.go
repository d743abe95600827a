package models

import "time"

type Project struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(140);not null" json:"name"`
	// Status is a legacy column kept for backward compatibility; the
	// authoritative project status is derived from task statuses on read.
	Status      string    `gorm:"type:varchar(32);default:'in_progress'" json:"-"`
	JoinCode    string    `gorm:"type:varchar(8);uniqueIndex;not null" json:"join_code"`
	CreatedByID uint64    `gorm:"not null" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Creator User            `gorm:"foreignKey:CreatedByID" json:"creator,omitempty"`
	Members []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Tasks   []Task          `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
