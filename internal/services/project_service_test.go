package services

import (
	"testing"

	"github.com/napat/work-monitor-api/internal/constants"
	"github.com/napat/work-monitor-api/internal/models"
	"github.com/napat/work-monitor-api/internal/repository"
	"github.com/napat/work-monitor-api/internal/storage"
	"github.com/napat/work-monitor-api/internal/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubProjectRepo fails CreateWithOwner with a scripted error sequence so
// join-code collision handling can be exercised without a real database.
type stubProjectRepo struct {
	repository.ProjectRepository
	createErrs []error
	calls      int
	codes      []string
	member     *models.ProjectMember
}

func (s *stubProjectRepo) CreateWithOwner(project *models.Project, member *models.ProjectMember) error {
	err := s.createErrs[s.calls]
	s.calls++
	s.codes = append(s.codes, project.JoinCode)
	if err == nil {
		s.member = member
	}
	return err
}

func TestCreateProject_RetriesOnJoinCodeCollision(t *testing.T) {
	repo := &stubProjectRepo{
		createErrs: []error{gorm.ErrDuplicatedKey, gorm.ErrDuplicatedKey, nil},
	}
	svc := NewProjectService(repo, nil, storage.NoopStore{})

	project, err := svc.CreateProject(7, "Launch Plan")
	require.NoError(t, err)
	require.Equal(t, 3, repo.calls)
	require.Len(t, project.JoinCode, utils.JoinCodeLength)

	// A fresh code is generated for every attempt.
	for _, code := range repo.codes {
		require.Len(t, code, utils.JoinCodeLength)
	}

	require.NotNil(t, repo.member)
	require.Equal(t, models.RoleOwner, repo.member.Role)
	require.Equal(t, uint64(7), repo.member.UserID)
}

func TestCreateProject_GivesUpAfterRepeatedCollisions(t *testing.T) {
	errs := make([]error, constants.JoinCodeAttempts)
	for i := range errs {
		errs[i] = gorm.ErrDuplicatedKey
	}
	repo := &stubProjectRepo{createErrs: errs}
	svc := NewProjectService(repo, nil, storage.NoopStore{})

	_, err := svc.CreateProject(7, "Launch Plan")
	require.ErrorIs(t, err, ErrJoinCodeConflict)
	require.Equal(t, constants.JoinCodeAttempts, repo.calls)
}

func TestCreateProject_EmptyName(t *testing.T) {
	svc := NewProjectService(&stubProjectRepo{}, nil, storage.NoopStore{})

	_, err := svc.CreateProject(7, "   ")
	require.ErrorIs(t, err, ErrProjectNameRequired)
}
