package models

import "time"

type ProjectRole string

const (
	RoleOwner  ProjectRole = "owner"
	RoleBA     ProjectRole = "ba"
	RoleMember ProjectRole = "member"
)

// Manager reports whether the role may change task status and progress.
func (r ProjectRole) Manager() bool {
	return r == RoleOwner || r == RoleBA
}

// Valid reports whether the role is one of the enumerated values.
func (r ProjectRole) Valid() bool {
	return r == RoleOwner || r == RoleBA || r == RoleMember
}

type ProjectMember struct {
	ProjectID uint64      `gorm:"primarykey" json:"project_id"`
	UserID    uint64      `gorm:"primarykey" json:"user_id"`
	Role      ProjectRole `gorm:"type:varchar(16);not null;default:'member'" json:"role"`
	JoinedAt  time.Time   `json:"joined_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
