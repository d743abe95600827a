package repository

import (
	"github.com/napat/work-monitor-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// CreateWithOwner creates the project and the owner membership atomically.
func (r *GormProjectRepository) CreateWithOwner(project *models.Project, member *models.ProjectMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		member.ProjectID = project.ID

		return tx.Create(member).Error
	})
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByJoinCode finds a project by join code
func (r *GormProjectRepository) FindByJoinCode(code string) (*models.Project, error) {
	var project models.Project
	if err := r.db.Where("join_code = ?", code).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteCascade deletes everything scoped to a project, then the project
// itself. Order matters: links, updates, files, tasks, memberships, project.
func (r *GormProjectRepository) DeleteCascade(projectID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint64
		if err := tx.Model(&models.Task{}).
			Where("project_id = ?", projectID).
			Pluck("id", &taskIDs).Error; err != nil {
			return err
		}

		if len(taskIDs) > 0 {
			var updateIDs []uint64
			if err := tx.Model(&models.TaskUpdate{}).
				Where("task_id IN ?", taskIDs).
				Pluck("id", &updateIDs).Error; err != nil {
				return err
			}

			if len(updateIDs) > 0 {
				if err := tx.Where("task_update_id IN ?", updateIDs).
					Delete(&models.TaskUpdateLink{}).Error; err != nil {
					return err
				}
			}

			if err := tx.Where("task_id IN ?", taskIDs).
				Delete(&models.TaskUpdate{}).Error; err != nil {
				return err
			}

			if err := tx.Where("task_id IN ?", taskIDs).
				Delete(&models.TaskFile{}).Error; err != nil {
				return err
			}

			if err := tx.Where("project_id = ?", projectID).
				Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("project_id = ?", projectID).
			Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, projectID).Error
	})
}

// AddMember adds a member to a project
func (r *GormProjectRepository) AddMember(member *models.ProjectMember) error {
	return r.db.Create(member).Error
}

// RemoveMember removes a member from a project
func (r *GormProjectRepository) RemoveMember(projectID, userID uint64) error {
	return r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error
}

// FindMember finds a specific project member
func (r *GormProjectRepository) FindMember(projectID, userID uint64) (*models.ProjectMember, error) {
	var member models.ProjectMember
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists all members of a project
func (r *GormProjectRepository) ListMembers(projectID uint64) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	if err := r.db.Preload("User").
		Where("project_id = ?", projectID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListMembershipsByUserID lists all projects a user is a member of
func (r *GormProjectRepository) ListMembershipsByUserID(userID uint64) ([]models.ProjectMember, error) {
	var memberships []models.ProjectMember
	if err := r.db.Preload("Project").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// CountMembers counts members per project
func (r *GormProjectRepository) CountMembers(projectIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(projectIDs))
	if len(projectIDs) == 0 {
		return counts, nil
	}

	type row struct {
		ProjectID uint64
		Count     int64
	}
	var rows []row
	if err := r.db.Model(&models.ProjectMember{}).
		Select("project_id, COUNT(*) AS count").
		Where("project_id IN ?", projectIDs).
		Group("project_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, rw := range rows {
		counts[rw.ProjectID] = rw.Count
	}
	return counts, nil
}

// ListTaskStatuses collects every task status per project
func (r *GormProjectRepository) ListTaskStatuses(projectIDs []uint64) (map[uint64][]models.TaskStatus, error) {
	statuses := make(map[uint64][]models.TaskStatus, len(projectIDs))
	if len(projectIDs) == 0 {
		return statuses, nil
	}

	type row struct {
		ProjectID uint64
		Status    models.TaskStatus
	}
	var rows []row
	if err := r.db.Model(&models.Task{}).
		Select("project_id, status").
		Where("project_id IN ?", projectIDs).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, rw := range rows {
		statuses[rw.ProjectID] = append(statuses[rw.ProjectID], rw.Status)
	}
	return statuses, nil
}

// ListFiles lists every file under any of the project's tasks
func (r *GormProjectRepository) ListFiles(projectID uint64) ([]models.TaskFile, error) {
	var files []models.TaskFile
	if err := r.db.
		Joins("JOIN tasks ON tasks.id = task_files.task_id").
		Where("tasks.project_id = ?", projectID).
		Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}
