package repository

import (
	"github.com/napat/work-monitor-api/internal/database"
	"github.com/napat/work-monitor-api/internal/models"
	"github.com/napat/work-monitor-api/internal/utils"
	"gorm.io/gorm"
)

// GormFeedRepository is a GORM implementation of FeedRepository
type GormFeedRepository struct {
	db *gorm.DB
}

// NewFeedRepository creates a new FeedRepository
func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &GormFeedRepository{db: db}
}

// CreateUpdate persists the update, its links, and the task's new state
// atomically. Links need the update's ID, so they are attached after the
// update insert.
func (r *GormFeedRepository) CreateUpdate(update *models.TaskUpdate, links []models.TaskUpdateLink, task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(update).Error; err != nil {
			return err
		}

		for i := range links {
			links[i].TaskUpdateID = update.ID
		}
		if len(links) > 0 {
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}

		return tx.Save(task).Error
	})
}

// FindUpdateByID finds an update by ID
func (r *GormFeedRepository) FindUpdateByID(id uint64) (*models.TaskUpdate, error) {
	var update models.TaskUpdate
	if err := r.db.Preload("Author").First(&update, id).Error; err != nil {
		return nil, err
	}
	return &update, nil
}

// FindUpdateOnTask finds an update that belongs to the given task
func (r *GormFeedRepository) FindUpdateOnTask(updateID, taskID uint64) (*models.TaskUpdate, error) {
	var update models.TaskUpdate
	if err := r.db.Where("id = ? AND task_id = ?", updateID, taskID).
		First(&update).Error; err != nil {
		return nil, err
	}
	return &update, nil
}

// ListUpdates lists a task's updates newest-first with pagination
func (r *GormFeedRepository) ListUpdates(taskID uint64, params utils.PaginationParams) ([]models.TaskUpdate, int64, error) {
	query := r.db.Model(&models.TaskUpdate{}).Where("task_id = ?", taskID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var updates []models.TaskUpdate
	if err := query.Preload("Author").
		Order("created_at DESC, id DESC").
		Scopes(database.Paginate(params)).
		Find(&updates).Error; err != nil {
		return nil, 0, err
	}

	return updates, total, nil
}

// ListLinksByUpdateIDs lists links for a set of updates, in insertion order
func (r *GormFeedRepository) ListLinksByUpdateIDs(updateIDs []uint64) ([]models.TaskUpdateLink, error) {
	if len(updateIDs) == 0 {
		return []models.TaskUpdateLink{}, nil
	}

	var links []models.TaskUpdateLink
	if err := r.db.Where("task_update_id IN ?", updateIDs).
		Order("id ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// CreateFile records metadata for an externally stored file
func (r *GormFeedRepository) CreateFile(file *models.TaskFile) error {
	return r.db.Create(file).Error
}

// FindFileOnTask finds a file that belongs to the given task
func (r *GormFeedRepository) FindFileOnTask(fileID, taskID uint64) (*models.TaskFile, error) {
	var file models.TaskFile
	if err := r.db.Where("id = ? AND task_id = ?", fileID, taskID).
		First(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// DeleteFile removes a file record
func (r *GormFeedRepository) DeleteFile(fileID uint64) error {
	return r.db.Delete(&models.TaskFile{}, fileID).Error
}

// ListFilesByTask lists a task's files, newest first
func (r *GormFeedRepository) ListFilesByTask(taskID uint64) ([]models.TaskFile, error) {
	var files []models.TaskFile
	if err := r.db.Where("task_id = ?", taskID).
		Order("created_at DESC, id DESC").
		Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// ListFilesByUpdate lists the files attached to one update
func (r *GormFeedRepository) ListFilesByUpdate(updateID uint64) ([]models.TaskFile, error) {
	var files []models.TaskFile
	if err := r.db.Where("task_update_id = ?", updateID).
		Order("created_at DESC, id DESC").
		Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}
