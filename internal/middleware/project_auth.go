package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/napat/work-monitor-api/internal/database"
	apierrors "github.com/napat/work-monitor-api/internal/errors"
	"github.com/napat/work-monitor-api/internal/models"
)

const (
	contextKeyProject       = "project"
	contextKeyProjectMember = "project_member"
)

// RequireProjectAccess checks that the user is a member of the project in
// the :id route parameter, and loads the project and membership into the
// context for the handler.
func RequireProjectAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectIDStr := c.Param("id")
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var project models.Project
		if err := database.GetDB().First(&project, projectID).Error; err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		var member models.ProjectMember
		err = database.GetDB().
			Where("project_id = ? AND user_id = ?", projectID, userID).
			First(&member).Error
		if err != nil {
			// Return 404 instead of 403 to avoid leaking project existence
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		c.Set(contextKeyProject, project)
		c.Set(contextKeyProjectMember, member)
		c.Next()
	}
}

// GetProject retrieves the project loaded by RequireProjectAccess
func GetProject(c *gin.Context) (models.Project, bool) {
	value, exists := c.Get(contextKeyProject)
	if !exists {
		return models.Project{}, false
	}
	project, ok := value.(models.Project)
	return project, ok
}

// GetProjectMember retrieves the membership loaded by RequireProjectAccess
func GetProjectMember(c *gin.Context) (models.ProjectMember, bool) {
	value, exists := c.Get(contextKeyProjectMember)
	if !exists {
		return models.ProjectMember{}, false
	}
	member, ok := value.(models.ProjectMember)
	return member, ok
}
