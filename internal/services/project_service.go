package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/napat/work-monitor-api/internal/constants"
	"github.com/napat/work-monitor-api/internal/logging"
	"github.com/napat/work-monitor-api/internal/models"
	"github.com/napat/work-monitor-api/internal/repository"
	"github.com/napat/work-monitor-api/internal/storage"
	"github.com/napat/work-monitor-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNameRequired = errors.New("project name cannot be empty")
	ErrProjectNotFound     = errors.New("project not found")
	ErrJoinCodeConflict    = errors.New("could not generate a unique join code")
	ErrNotAMember          = errors.New("user is not a member of this project")
	ErrOwnerCannotLeave    = errors.New("owners cannot leave their project; delete it instead")
	ErrNotProjectOwner     = errors.New("only the project owner can perform this action")
)

// ProjectService provides business logic for projects and memberships.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	blobStore   storage.BlobStore
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, blobStore storage.BlobStore) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		blobStore:   blobStore,
	}
}

// CreateProject creates a project with a unique join code and assigns the
// creator as owner. A join-code collision is resolved by regenerating and
// retrying; only repeated collisions surface as an error.
func (s *ProjectService) CreateProject(ownerID uint64, name string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}

	for attempt := 0; attempt < constants.JoinCodeAttempts; attempt++ {
		code, err := utils.GenerateJoinCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate join code: %w", err)
		}

		project := &models.Project{
			Name:        name,
			Status:      string(models.ProjectStatusInProgress),
			JoinCode:    code,
			CreatedByID: ownerID,
		}
		member := &models.ProjectMember{
			UserID:   ownerID,
			Role:     models.RoleOwner,
			JoinedAt: time.Now(),
		}

		err = s.projectRepo.CreateWithOwner(project, member)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// The owner membership rows are fresh, so a duplicate key here
			// can only be the join code. Regenerate and retry.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create project: %w", err)
		}

		return project, nil
	}

	return nil, ErrJoinCodeConflict
}

// JoinProject adds the user to the project matching the join code with the
// default member role. Joining a project the user already belongs to is a
// no-op success.
func (s *ProjectService) JoinProject(userID uint64, joinCode string) (*models.Project, error) {
	code := strings.ToUpper(strings.TrimSpace(joinCode))

	project, err := s.projectRepo.FindByJoinCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project by join code: %w", err)
	}

	if _, err := s.projectRepo.FindMember(project.ID, userID); err == nil {
		return project, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.ProjectMember{
		ProjectID: project.ID,
		UserID:    userID,
		Role:      models.RoleMember,
		JoinedAt:  time.Now(),
	}

	if err := s.projectRepo.AddMember(member); err != nil {
		// A concurrent join already inserted the row; same outcome.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return project, nil
		}
		return nil, fmt.Errorf("failed to add member to project: %w", err)
	}

	return project, nil
}

// LeaveProject removes the user's membership. Owners cannot leave; the only
// way out for an owner is deleting the project.
func (s *ProjectService) LeaveProject(userID, projectID uint64) error {
	member, err := s.projectRepo.FindMember(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotAMember
		}
		return fmt.Errorf("failed to find membership: %w", err)
	}

	if member.Role == models.RoleOwner {
		return ErrOwnerCannotLeave
	}

	if err := s.projectRepo.RemoveMember(projectID, userID); err != nil {
		return fmt.Errorf("failed to remove membership: %w", err)
	}

	return nil
}

// DeleteProject deletes a project and everything scoped to it. Externally
// stored files are deleted first, best-effort: a storage outage is logged
// and never blocks the local cascade.
func (s *ProjectService) DeleteProject(member models.ProjectMember, projectID uint64) error {
	if err := requireRole(member, models.RoleOwner); err != nil {
		return ErrNotProjectOwner
	}

	if s.blobStore.DeleteEnabled() {
		files, err := s.projectRepo.ListFiles(projectID)
		if err != nil {
			logging.Log.WithError(err).WithField("project_id", projectID).
				Warn("could not list files for external cleanup")
		}
		for _, f := range files {
			if f.PublicID == "" {
				continue
			}
			if err := s.blobStore.Delete(f.PublicID); err != nil {
				logging.Log.WithError(err).WithField("public_id", f.PublicID).
					Warn("external file delete failed")
			}
		}
	}

	if err := s.projectRepo.DeleteCascade(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// ProjectOverview is one row of the project list read model.
type ProjectOverview struct {
	Project     models.Project
	Role        models.ProjectRole
	MemberCount int64
	Status      models.ProjectStatus
}

// ProjectSummary aggregates derived statuses across the listed projects.
type ProjectSummary struct {
	Total      int
	Done       int
	InProgress int
	Blocked    int
}

// ListProjects returns the user's projects with derived status, the user's
// role and member counts, newest first, plus summary counts.
func (s *ProjectService) ListProjects(userID uint64) ([]ProjectOverview, ProjectSummary, error) {
	memberships, err := s.projectRepo.ListMembershipsByUserID(userID)
	if err != nil {
		return nil, ProjectSummary{}, fmt.Errorf("failed to list projects: %w", err)
	}

	projectIDs := make([]uint64, len(memberships))
	for i, m := range memberships {
		projectIDs[i] = m.ProjectID
	}

	statuses, err := s.projectRepo.ListTaskStatuses(projectIDs)
	if err != nil {
		return nil, ProjectSummary{}, fmt.Errorf("failed to collect task statuses: %w", err)
	}

	counts, err := s.projectRepo.CountMembers(projectIDs)
	if err != nil {
		return nil, ProjectSummary{}, fmt.Errorf("failed to count members: %w", err)
	}

	overviews := make([]ProjectOverview, len(memberships))
	var summary ProjectSummary
	for i, m := range memberships {
		status := models.DeriveProjectStatus(statuses[m.ProjectID])
		overviews[i] = ProjectOverview{
			Project:     m.Project,
			Role:        m.Role,
			MemberCount: counts[m.ProjectID],
			Status:      status,
		}

		summary.Total++
		switch status {
		case models.ProjectStatusDone:
			summary.Done++
		case models.ProjectStatusBlocked:
			summary.Blocked++
		default:
			summary.InProgress++
		}
	}

	sort.Slice(overviews, func(i, j int) bool {
		return overviews[i].Project.CreatedAt.After(overviews[j].Project.CreatedAt)
	})

	return overviews, summary, nil
}

// ProjectDetail is the single-project read model.
type ProjectDetail struct {
	Project   models.Project
	Status    models.ProjectStatus
	Tasks     []models.Task
	Members   []models.ProjectMember
	YourRole  models.ProjectRole
	IsManager bool
}

// GetProject returns a project with its tasks (most recently updated first),
// members and the caller's role. The derived status is recomputed on every
// read and never persisted.
func (s *ProjectService) GetProject(project models.Project, member models.ProjectMember) (*ProjectDetail, error) {
	tasks, err := s.taskRepo.ListByProject(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	members, err := s.projectRepo.ListMembers(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	taskStatuses := make([]models.TaskStatus, len(tasks))
	for i, t := range tasks {
		taskStatuses[i] = t.Status
	}

	return &ProjectDetail{
		Project:   project,
		Status:    models.DeriveProjectStatus(taskStatuses),
		Tasks:     tasks,
		Members:   members,
		YourRole:  member.Role,
		IsManager: member.Role.Manager(),
	}, nil
}
