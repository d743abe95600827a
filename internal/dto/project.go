package dto

import (
	"time"

	"github.com/napat/work-monitor-api/internal/models"
	"github.com/napat/work-monitor-api/internal/services"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	JoinCode  string    `json:"join_code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectOverviewDTO is one row of the project list
type ProjectOverviewDTO struct {
	ProjectDTO
	Role        models.ProjectRole   `json:"role"`
	MemberCount int64                `json:"member_count"`
	Status      models.ProjectStatus `json:"status"`
}

// ProjectSummaryDTO aggregates derived statuses across the listed projects
type ProjectSummaryDTO struct {
	Total      int `json:"total"`
	Done       int `json:"done"`
	InProgress int `json:"in_progress"`
	Blocked    int `json:"blocked"`
}

// ProjectMemberDTO represents a member in a project
type ProjectMemberDTO struct {
	User     UserDTO            `json:"user"`
	Role     models.ProjectRole `json:"role"`
	JoinedAt time.Time          `json:"joined_at"`
}

// ProjectDetailDTO represents detailed project information
type ProjectDetailDTO struct {
	ProjectDTO
	Status    models.ProjectStatus `json:"status"`
	Tasks     []TaskDTO            `json:"tasks"`
	Members   []ProjectMemberDTO   `json:"members"`
	YourRole  models.ProjectRole   `json:"your_role"`
	IsManager bool                 `json:"is_manager"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project, includeJoinCode bool) ProjectDTO {
	dto := ProjectDTO{
		ID:        project.ID,
		Name:      project.Name,
		CreatedAt: project.CreatedAt,
	}
	if includeJoinCode {
		dto.JoinCode = project.JoinCode
	}
	return dto
}

// ToProjectOverviewDTO converts a list read-model row to DTO
func ToProjectOverviewDTO(overview services.ProjectOverview) ProjectOverviewDTO {
	return ProjectOverviewDTO{
		ProjectDTO:  ToProjectDTO(overview.Project, true),
		Role:        overview.Role,
		MemberCount: overview.MemberCount,
		Status:      overview.Status,
	}
}

// ToProjectSummaryDTO converts the list summary to DTO
func ToProjectSummaryDTO(summary services.ProjectSummary) ProjectSummaryDTO {
	return ProjectSummaryDTO{
		Total:      summary.Total,
		Done:       summary.Done,
		InProgress: summary.InProgress,
		Blocked:    summary.Blocked,
	}
}

// ToProjectMemberDTO converts a member to DTO
func ToProjectMemberDTO(member models.ProjectMember) ProjectMemberDTO {
	return ProjectMemberDTO{
		User:     ToUserDTO(member.User),
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
}

// ToProjectDetailDTO converts the project detail read model to DTO
func ToProjectDetailDTO(detail services.ProjectDetail) ProjectDetailDTO {
	memberDTOs := make([]ProjectMemberDTO, len(detail.Members))
	for i, member := range detail.Members {
		memberDTOs[i] = ToProjectMemberDTO(member)
	}

	taskDTOs := make([]TaskDTO, len(detail.Tasks))
	for i, task := range detail.Tasks {
		taskDTOs[i] = ToTaskDTO(task)
	}

	return ProjectDetailDTO{
		ProjectDTO: ToProjectDTO(detail.Project, detail.IsManager),
		Status:     detail.Status,
		Tasks:      taskDTOs,
		Members:    memberDTOs,
		YourRole:   detail.YourRole,
		IsManager:  detail.IsManager,
	}
}
