package dto

import (
	"time"

	"github.com/napat/work-monitor-api/internal/models"
	"github.com/napat/work-monitor-api/internal/services"
	"github.com/napat/work-monitor-api/internal/utils"
)

// LinkDTO represents an update link in API responses
type LinkDTO struct {
	ID    uint64 `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// FileDTO represents a registered file in API responses
type FileDTO struct {
	ID           uint64    `json:"id"`
	TaskUpdateID *uint64   `json:"task_update_id,omitempty"`
	FileName     string    `json:"file_name"`
	ContentType  string    `json:"content_type,omitempty"`
	SizeBytes    int64     `json:"size_bytes"`
	Provider     string    `json:"provider"`
	SecureURL    string    `json:"secure_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// UpdateDTO represents one feed entry in API responses
type UpdateDTO struct {
	ID              uint64             `json:"id"`
	TaskID          uint64             `json:"task_id"`
	Content         string             `json:"content"`
	ProgressPercent *int               `json:"progress_percent,omitempty"`
	Status          *models.TaskStatus `json:"status,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	Author          *UserDTO           `json:"author,omitempty"`
	Links           []LinkDTO          `json:"links,omitempty"`
	Files           []FileDTO          `json:"files,omitempty"`
}

// TaskFeedResponse is the task feed endpoint payload
type TaskFeedResponse struct {
	Task       TaskDTO                  `json:"task"`
	Updates    []UpdateDTO              `json:"updates"`
	LooseFiles []FileDTO                `json:"loose_files,omitempty"`
	IsManager  bool                     `json:"is_manager"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// UpdateDetailResponse is the single-update endpoint payload
type UpdateDetailResponse struct {
	Update UpdateDTO `json:"update"`
	Task   TaskDTO   `json:"task"`
}

// ToLinkDTO converts a TaskUpdateLink model to LinkDTO
func ToLinkDTO(link models.TaskUpdateLink) LinkDTO {
	return LinkDTO{
		ID:    link.ID,
		URL:   link.URL,
		Title: link.Title,
	}
}

// ToFileDTO converts a TaskFile model to FileDTO
func ToFileDTO(file models.TaskFile) FileDTO {
	return FileDTO{
		ID:           file.ID,
		TaskUpdateID: file.TaskUpdateID,
		FileName:     file.FileName,
		ContentType:  file.ContentType,
		SizeBytes:    file.SizeBytes,
		Provider:     file.Provider,
		SecureURL:    file.SecureURL,
		CreatedAt:    file.CreatedAt,
	}
}

// ToUpdateDTO converts a feed entry with nested links and files to DTO
func ToUpdateDTO(update models.TaskUpdate, links []models.TaskUpdateLink, files []models.TaskFile) UpdateDTO {
	dto := UpdateDTO{
		ID:              update.ID,
		TaskID:          update.TaskID,
		Content:         update.Content,
		ProgressPercent: update.ProgressPercent,
		Status:          update.Status,
		CreatedAt:       update.CreatedAt,
	}

	// Include author if preloaded
	if update.Author.ID != 0 {
		author := ToUserDTO(update.Author)
		dto.Author = &author
	}

	if len(links) > 0 {
		dto.Links = make([]LinkDTO, len(links))
		for i, l := range links {
			dto.Links[i] = ToLinkDTO(l)
		}
	}

	if len(files) > 0 {
		dto.Files = make([]FileDTO, len(files))
		for i, f := range files {
			dto.Files[i] = ToFileDTO(f)
		}
	}

	return dto
}

// ToTaskFeedResponse converts the feed read model to the endpoint payload
func ToTaskFeedResponse(task models.Task, feed services.TaskFeed, params utils.PaginationParams) TaskFeedResponse {
	updates := make([]UpdateDTO, len(feed.Updates))
	for i, entry := range feed.Updates {
		updates[i] = ToUpdateDTO(entry.Update, entry.Links, entry.Files)
	}

	var looseFiles []FileDTO
	for _, f := range feed.LooseFiles {
		looseFiles = append(looseFiles, ToFileDTO(f))
	}

	return TaskFeedResponse{
		Task:       ToTaskDTO(task),
		Updates:    updates,
		LooseFiles: looseFiles,
		IsManager:  feed.IsManager,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: feed.Total,
		},
	}
}

// ToUpdateDetailResponse converts the single-update read model to payload
func ToUpdateDetailResponse(detail services.UpdateDetail) UpdateDetailResponse {
	return UpdateDetailResponse{
		Update: ToUpdateDTO(detail.Update, detail.Links, detail.Files),
		Task:   ToTaskDTO(detail.Task),
	}
}
