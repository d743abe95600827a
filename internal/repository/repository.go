package repository

import (
	"github.com/napat/work-monitor-api/internal/models"
	"github.com/napat/work-monitor-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}

// ProjectRepository defines the interface for project and membership data access
type ProjectRepository interface {
	// CreateWithOwner creates a project and its owner membership within a
	// single transaction.
	CreateWithOwner(project *models.Project, member *models.ProjectMember) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// FindByJoinCode finds a project by join code
	FindByJoinCode(code string) (*models.Project, error)

	// DeleteCascade deletes a project and everything scoped to it (links,
	// updates, files, tasks, memberships, project, in that order) within a
	// single transaction.
	DeleteCascade(projectID uint64) error

	// AddMember adds a member to a project
	AddMember(member *models.ProjectMember) error

	// RemoveMember removes a member from a project
	RemoveMember(projectID, userID uint64) error

	// FindMember finds a specific project member
	FindMember(projectID, userID uint64) (*models.ProjectMember, error)

	// ListMembers lists all members of a project with their users
	ListMembers(projectID uint64) ([]models.ProjectMember, error)

	// ListMembershipsByUserID lists all memberships of a user with projects
	ListMembershipsByUserID(userID uint64) ([]models.ProjectMember, error)

	// CountMembers counts members per project
	CountMembers(projectIDs []uint64) (map[uint64]int64, error)

	// ListTaskStatuses collects task statuses per project for status derivation
	ListTaskStatuses(projectIDs []uint64) (map[uint64][]models.TaskStatus, error)

	// ListFiles lists every file registered under any of the project's tasks
	ListFiles(projectID uint64) ([]models.TaskFile, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByProject lists a project's tasks ordered by last update, newest first
	ListByProject(projectID uint64) ([]models.Task, error)

	// ApplyChange saves a task mutation together with the feed entry
	// recording it, atomically.
	ApplyChange(task *models.Task, update *models.TaskUpdate) error
}

// FeedRepository defines the interface for update-feed data access
type FeedRepository interface {
	// CreateUpdate persists an update, its links, and the parent task's new
	// state within a single transaction.
	CreateUpdate(update *models.TaskUpdate, links []models.TaskUpdateLink, task *models.Task) error

	// FindUpdateByID finds an update by ID
	FindUpdateByID(id uint64) (*models.TaskUpdate, error)

	// FindUpdateOnTask finds an update that belongs to the given task
	FindUpdateOnTask(updateID, taskID uint64) (*models.TaskUpdate, error)

	// ListUpdates lists a task's updates newest-first with pagination
	ListUpdates(taskID uint64, params utils.PaginationParams) ([]models.TaskUpdate, int64, error)

	// ListLinksByUpdateIDs lists links for a set of updates, oldest first
	ListLinksByUpdateIDs(updateIDs []uint64) ([]models.TaskUpdateLink, error)

	// CreateFile records metadata for an externally stored file
	CreateFile(file *models.TaskFile) error

	// FindFileOnTask finds a file that belongs to the given task
	FindFileOnTask(fileID, taskID uint64) (*models.TaskFile, error)

	// DeleteFile removes a file record
	DeleteFile(fileID uint64) error

	// ListFilesByTask lists a task's files, newest first
	ListFilesByTask(taskID uint64) ([]models.TaskFile, error)

	// ListFilesByUpdate lists the files attached to one update
	ListFilesByUpdate(updateID uint64) ([]models.TaskFile, error)
}
