package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/napat/work-monitor-api/internal/constants"
	"github.com/napat/work-monitor-api/internal/database"
	"github.com/napat/work-monitor-api/internal/dto"
	"github.com/napat/work-monitor-api/internal/models"
	"github.com/napat/work-monitor-api/internal/repository"
	"github.com/napat/work-monitor-api/internal/services"
	"github.com/napat/work-monitor-api/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fileTestEnv struct {
	db      *gorm.DB
	handler *FileHandler
}

func setupFileTestEnv(t *testing.T) fileTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.TaskUpdate{},
		&models.TaskUpdateLink{},
		&models.TaskFile{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	feedRepo := repository.NewFeedRepository(db)
	feedService := services.NewFeedService(feedRepo, taskRepo, projectRepo, storage.NoopStore{})
	handler := NewFileHandler(feedService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return fileTestEnv{db: db, handler: handler}
}

// fileFixture is one task with a creator membership, set up once per test.
type fileFixture struct {
	user   *models.User
	member models.ProjectMember
	task   *models.Task
}

func (env fileTestEnv) newFixture(t *testing.T, role models.ProjectRole) fileFixture {
	t.Helper()

	user := &models.User{Username: "uploader", DisplayName: "Uploader", PasswordHash: "x"}
	require.NoError(t, env.db.Create(user).Error)

	project := &models.Project{Name: "proj", JoinCode: "PROJCODE", CreatedByID: user.ID}
	require.NoError(t, env.db.Create(project).Error)

	member := models.ProjectMember{
		ProjectID: project.ID,
		UserID:    user.ID,
		Role:      role,
		JoinedAt:  time.Now(),
	}
	require.NoError(t, env.db.Create(&member).Error)

	task := &models.Task{
		ProjectID:   project.ID,
		Title:       "Test Task",
		Status:      models.TaskStatusTodo,
		LastUpdated: time.Now(),
		CreatedByID: user.ID,
	}
	require.NoError(t, env.db.Create(task).Error)

	return fileFixture{user: user, member: member, task: task}
}

func newFileContext(t *testing.T, method, url string, payload any, fix fileFixture) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	c.Request = req
	c.Set(constants.ContextKeyUserID, fix.user.ID)
	c.Set("task", *fix.task)
	c.Set("task_member", fix.member)

	return c, w
}

func TestFileHandler_RegisterFile(t *testing.T) {
	env := setupFileTestEnv(t)
	fix := env.newFixture(t, models.RoleMember)

	c, w := newFileContext(t, http.MethodPost, "/api/tasks/1/files", map[string]any{
		"file_name":    "Report.PDF",
		"content_type": "application/pdf",
		"size_bytes":   2048,
		"public_id":    "obj-123",
		"secure_url":   "https://files.example.com/obj-123",
	}, fix)

	env.handler.RegisterFile(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.FileDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Report.PDF", response.FileName)
	require.Equal(t, "none", response.Provider)
	require.Nil(t, response.TaskUpdateID)

	var file models.TaskFile
	require.NoError(t, env.db.First(&file, response.ID).Error)
	require.Equal(t, fix.task.ID, file.TaskID)
}

func TestFileHandler_RegisterFile_UnsupportedType(t *testing.T) {
	env := setupFileTestEnv(t)
	fix := env.newFixture(t, models.RoleMember)

	c, w := newFileContext(t, http.MethodPost, "/api/tasks/1/files", map[string]any{
		"file_name":  "malware.exe",
		"size_bytes": 100,
		"secure_url": "https://files.example.com/x",
	}, fix)

	env.handler.RegisterFile(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFileHandler_RegisterFile_TooLarge(t *testing.T) {
	env := setupFileTestEnv(t)
	fix := env.newFixture(t, models.RoleMember)

	c, w := newFileContext(t, http.MethodPost, "/api/tasks/1/files", map[string]any{
		"file_name":  "big.pdf",
		"size_bytes": constants.MaxFileSizeBytes + 1,
		"secure_url": "https://files.example.com/big",
	}, fix)

	env.handler.RegisterFile(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFileHandler_RegisterFile_MissingFields(t *testing.T) {
	env := setupFileTestEnv(t)
	fix := env.newFixture(t, models.RoleMember)

	c, w := newFileContext(t, http.MethodPost, "/api/tasks/1/files", map[string]any{
		"file_name": "orphan.pdf",
	}, fix)

	env.handler.RegisterFile(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFileHandler_RegisterFile_AttachedToUpdate(t *testing.T) {
	env := setupFileTestEnv(t)
	fix := env.newFixture(t, models.RoleMember)

	update := models.TaskUpdate{TaskID: fix.task.ID, AuthorID: fix.user.ID, Content: "with file"}
	require.NoError(t, env.db.Create(&update).Error)

	c, w := newFileContext(t, http.MethodPost, "/api/tasks/1/files", map[string]any{
		"file_name":      "scan.jpg",
		"size_bytes":     512,
		"secure_url":     "https://files.example.com/scan",
		"task_update_id": update.ID,
	}, fix)

	env.handler.RegisterFile(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.FileDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.TaskUpdateID)
	require.Equal(t, update.ID, *response.TaskUpdateID)
}

func TestFileHandler_RegisterFile_UpdateOnOtherTask(t *testing.T) {
	env := setupFileTestEnv(t)
	fix := env.newFixture(t, models.RoleMember)

	otherTask := &models.Task{
		ProjectID:   fix.task.ProjectID,
		Title:       "Other Task",
		Status:      models.TaskStatusTodo,
		LastUpdated: time.Now(),
		CreatedByID: fix.user.ID,
	}
	require.NoError(t, env.db.Create(otherTask).Error)

	update := models.TaskUpdate{TaskID: otherTask.ID, AuthorID: fix.user.ID, Content: "elsewhere"}
	require.NoError(t, env.db.Create(&update).Error)

	c, w := newFileContext(t, http.MethodPost, "/api/tasks/1/files", map[string]any{
		"file_name":      "scan.jpg",
		"size_bytes":     512,
		"secure_url":     "https://files.example.com/scan",
		"task_update_id": update.ID,
	}, fix)

	env.handler.RegisterFile(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func (env fileTestEnv) createFile(t *testing.T, taskID uint64) *models.TaskFile {
	t.Helper()

	file := &models.TaskFile{
		TaskID:    taskID,
		FileName:  "evidence.png",
		SizeBytes: 256,
		Provider:  "none",
		SecureURL: "https://files.example.com/evidence",
	}
	require.NoError(t, env.db.Create(file).Error)
	return file
}

func TestFileHandler_DeleteFile_CreatorAllowed(t *testing.T) {
	env := setupFileTestEnv(t)
	fix := env.newFixture(t, models.RoleMember)
	file := env.createFile(t, fix.task.ID)

	c, w := newFileContext(t, http.MethodDelete, "/api/tasks/1/files/1", nil, fix)
	c.Params = gin.Params{{Key: "file_id", Value: "1"}}

	env.handler.DeleteFile(c)

	require.Equal(t, http.StatusOK, w.Code)

	err := env.db.First(&models.TaskFile{}, file.ID).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFileHandler_DeleteFile_ManagerAllowed(t *testing.T) {
	env := setupFileTestEnv(t)
	fix := env.newFixture(t, models.RoleBA)
	file := env.createFile(t, fix.task.ID)

	// The BA is not the task creator here.
	require.NoError(t, env.db.Model(fix.task).Update("created_by_id", fix.user.ID+100).Error)
	fix.task.CreatedByID = fix.user.ID + 100

	c, w := newFileContext(t, http.MethodDelete, "/api/tasks/1/files/1", nil, fix)
	c.Params = gin.Params{{Key: "file_id", Value: "1"}}

	env.handler.DeleteFile(c)

	require.Equal(t, http.StatusOK, w.Code)

	err := env.db.First(&models.TaskFile{}, file.ID).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFileHandler_DeleteFile_PlainMemberForbidden(t *testing.T) {
	env := setupFileTestEnv(t)
	fix := env.newFixture(t, models.RoleMember)
	file := env.createFile(t, fix.task.ID)

	// Neither a manager nor the task creator.
	require.NoError(t, env.db.Model(fix.task).Update("created_by_id", fix.user.ID+100).Error)
	fix.task.CreatedByID = fix.user.ID + 100

	c, w := newFileContext(t, http.MethodDelete, "/api/tasks/1/files/1", nil, fix)
	c.Params = gin.Params{{Key: "file_id", Value: "1"}}

	env.handler.DeleteFile(c)

	require.Equal(t, http.StatusForbidden, w.Code)

	// The record is still there.
	require.NoError(t, env.db.First(&models.TaskFile{}, file.ID).Error)
}

func TestFileHandler_DeleteFile_NotFound(t *testing.T) {
	env := setupFileTestEnv(t)
	fix := env.newFixture(t, models.RoleOwner)

	c, w := newFileContext(t, http.MethodDelete, "/api/tasks/1/files/999", nil, fix)
	c.Params = gin.Params{{Key: "file_id", Value: "999"}}

	env.handler.DeleteFile(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}
