package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
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
	ErrUpdateContentRequired = errors.New("update content cannot be empty")
	ErrUpdateNotFound        = errors.New("update not found")
	ErrFileFieldsMissing     = errors.New("file name and secure url are required")
	ErrFileTypeUnsupported   = errors.New("unsupported file type")
	ErrFileTooLarge          = errors.New("file too large")
	ErrFileNotFound          = errors.New("file not found")
	ErrFileDeleteForbidden   = errors.New("no permission to delete this file")
)

// FeedService handles the append-only update feed and file registrations.
type FeedService struct {
	feedRepo    repository.FeedRepository
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	blobStore   storage.BlobStore
}

// NewFeedService creates a new FeedService.
func NewFeedService(feedRepo repository.FeedRepository, taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, blobStore storage.BlobStore) *FeedService {
	return &FeedService{
		feedRepo:    feedRepo,
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		blobStore:   blobStore,
	}
}

// PostUpdateInput represents input for posting an update. Progress and
// Status arrive as raw strings; tolerating malformed values without failing
// the whole post is part of the contract.
type PostUpdateInput struct {
	Content   string
	Progress  string
	Status    string
	LinkLines string
}

// PostUpdate appends an update to the task's feed. Progress and status are
// applied to the update and the parent task only when the author holds a
// manager role; anyone else's values are silently ignored and the update is
// posted with text only. The task's last-updated timestamp always moves.
func (s *FeedService) PostUpdate(member models.ProjectMember, task *models.Task, input PostUpdateInput) (*models.TaskUpdate, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrUpdateContentRequired
	}

	update := &models.TaskUpdate{
		TaskID:   task.ID,
		AuthorID: member.UserID,
		Content:  content,
	}

	if member.Role.Manager() {
		if raw := strings.TrimSpace(input.Progress); raw != "" {
			// Unparseable progress drops the field, it never fails the post.
			if v, err := strconv.Atoi(raw); err == nil {
				percent := models.ClampProgress(v)
				update.ProgressPercent = &percent
				task.ProgressPercent = percent
			}
		}
		if raw := strings.TrimSpace(input.Status); raw != "" {
			// Unknown status values are ignored the same way.
			if status := models.TaskStatus(raw); status.Valid() {
				update.Status = &status
				task.Status = status
			}
		}
	}

	task.LastUpdated = time.Now()

	links := ParseLinkLines(input.LinkLines)

	if err := s.feedRepo.CreateUpdate(update, links, task); err != nil {
		return nil, fmt.Errorf("failed to post update: %w", err)
	}

	return update, nil
}

// ParseLinkLines extracts links from free text, one URL per line. A line is
// kept only if, after trimming, it starts with http:// or https://; anything
// else is dropped. Order is preserved.
func ParseLinkLines(text string) []models.TaskUpdateLink {
	var links []models.TaskUpdateLink
	for _, line := range strings.Split(text, "\n") {
		url := strings.TrimSpace(line)
		if url == "" {
			continue
		}
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			continue
		}
		links = append(links, models.TaskUpdateLink{URL: url})
	}
	return links
}

// FeedUpdate is one feed entry with its nested links and files.
type FeedUpdate struct {
	Update models.TaskUpdate
	Links  []models.TaskUpdateLink
	Files  []models.TaskFile
}

// TaskFeed is the task feed read model: updates newest-first with their
// links and files, plus files not attached to any update ("loose").
type TaskFeed struct {
	Updates    []FeedUpdate
	LooseFiles []models.TaskFile
	Total      int64
	IsManager  bool
}

// GetFeed assembles the feed for a task.
func (s *FeedService) GetFeed(member models.ProjectMember, task *models.Task, params utils.PaginationParams) (*TaskFeed, error) {
	updates, total, err := s.feedRepo.ListUpdates(task.ID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list updates: %w", err)
	}

	updateIDs := make([]uint64, len(updates))
	for i, u := range updates {
		updateIDs[i] = u.ID
	}

	allLinks, err := s.feedRepo.ListLinksByUpdateIDs(updateIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	linksByUpdate := make(map[uint64][]models.TaskUpdateLink)
	for _, l := range allLinks {
		linksByUpdate[l.TaskUpdateID] = append(linksByUpdate[l.TaskUpdateID], l)
	}

	allFiles, err := s.feedRepo.ListFilesByTask(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	filesByUpdate := make(map[uint64][]models.TaskFile)
	var looseFiles []models.TaskFile
	for _, f := range allFiles {
		if f.TaskUpdateID != nil {
			filesByUpdate[*f.TaskUpdateID] = append(filesByUpdate[*f.TaskUpdateID], f)
		} else {
			looseFiles = append(looseFiles, f)
		}
	}

	feed := &TaskFeed{
		Updates:    make([]FeedUpdate, len(updates)),
		LooseFiles: looseFiles,
		Total:      total,
		IsManager:  member.Role.Manager(),
	}
	for i, u := range updates {
		feed.Updates[i] = FeedUpdate{
			Update: u,
			Links:  linksByUpdate[u.ID],
			Files:  filesByUpdate[u.ID],
		}
	}

	return feed, nil
}

// UpdateDetail is the single-update read model.
type UpdateDetail struct {
	Update models.TaskUpdate
	Task   models.Task
	Links  []models.TaskUpdateLink
	Files  []models.TaskFile
}

// GetUpdateDetail returns one update with its links and files, after
// checking that the caller belongs to the parent task's project.
func (s *FeedService) GetUpdateDetail(userID, updateID uint64) (*UpdateDetail, error) {
	update, err := s.feedRepo.FindUpdateByID(updateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUpdateNotFound
		}
		return nil, fmt.Errorf("failed to find update: %w", err)
	}

	task, err := s.taskRepo.FindByID(update.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if _, err := s.projectRepo.FindMember(task.ProjectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAMember
		}
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	links, err := s.feedRepo.ListLinksByUpdateIDs([]uint64{update.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}

	files, err := s.feedRepo.ListFilesByUpdate(update.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return &UpdateDetail{
		Update: *update,
		Task:   *task,
		Links:  links,
		Files:  files,
	}, nil
}

// RegisterFileInput represents metadata for an already-uploaded object.
type RegisterFileInput struct {
	FileName     string
	ContentType  string
	SizeBytes    int64
	PublicID     string
	SecureURL    string
	TaskUpdateID *uint64
}

// RegisterFile records metadata for a file whose bytes already live in
// external storage. When an update id is given it must reference an update
// on the same task.
func (s *FeedService) RegisterFile(member models.ProjectMember, task *models.Task, input RegisterFileInput) (*models.TaskFile, error) {
	if input.FileName == "" || input.SecureURL == "" {
		return nil, ErrFileFieldsMissing
	}
	if !allowedFileName(input.FileName) {
		return nil, ErrFileTypeUnsupported
	}
	if input.SizeBytes > constants.MaxFileSizeBytes {
		return nil, ErrFileTooLarge
	}

	if input.TaskUpdateID != nil {
		if _, err := s.feedRepo.FindUpdateOnTask(*input.TaskUpdateID, task.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUpdateNotFound
			}
			return nil, fmt.Errorf("failed to verify update: %w", err)
		}
	}

	file := &models.TaskFile{
		TaskID:       task.ID,
		TaskUpdateID: input.TaskUpdateID,
		FileName:     input.FileName,
		ContentType:  input.ContentType,
		SizeBytes:    input.SizeBytes,
		Provider:     s.blobStore.Provider(),
		PublicID:     input.PublicID,
		SecureURL:    input.SecureURL,
	}

	if err := s.feedRepo.CreateFile(file); err != nil {
		return nil, fmt.Errorf("failed to register file: %w", err)
	}

	return file, nil
}

// DeleteFile removes a file record. Allowed for manager roles and for the
// task's creator. The external object delete is best-effort: it is only
// attempted when delete credentials are configured, and its failure is
// logged, never surfaced.
func (s *FeedService) DeleteFile(member models.ProjectMember, task *models.Task, fileID uint64) error {
	file, err := s.feedRepo.FindFileOnTask(fileID, task.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFileNotFound
		}
		return fmt.Errorf("failed to find file: %w", err)
	}

	if requireRole(member, managerRoles...) != nil && task.CreatedByID != member.UserID {
		return ErrFileDeleteForbidden
	}

	if s.blobStore.DeleteEnabled() && file.PublicID != "" {
		if err := s.blobStore.Delete(file.PublicID); err != nil {
			logging.Log.WithError(err).WithField("public_id", file.PublicID).
				Warn("external file delete failed")
		}
	}

	if err := s.feedRepo.DeleteFile(file.ID); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

func allowedFileName(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	for _, allowed := range constants.AllowedFileExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
