package models

import "time"

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"username"`
	DisplayName  string    `gorm:"type:varchar(80);not null" json:"display_name"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	CreatedTasks []Task          `gorm:"foreignKey:CreatedByID" json:"-"`
	Memberships  []ProjectMember `gorm:"foreignKey:UserID" json:"-"`
}
