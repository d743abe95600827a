package services

import (
	"errors"

	"github.com/napat/work-monitor-api/internal/models"
)

// ErrManagerRoleRequired is returned when an operation reserved for owner/ba
// roles is attempted by a plain member.
var ErrManagerRoleRequired = errors.New("owner or ba role required")

var managerRoles = []models.ProjectRole{models.RoleOwner, models.RoleBA}

// requireRole is the single authorization predicate used by every mutating
// operation with a role restriction.
func requireRole(member models.ProjectMember, allowed ...models.ProjectRole) error {
	for _, role := range allowed {
		if member.Role == role {
			return nil
		}
	}
	return ErrManagerRoleRequired
}
