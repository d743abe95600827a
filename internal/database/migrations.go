package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task indexes for project pages and status derivation
		{"tasks", "idx_tasks_project_id", "project_id"},
		{"tasks", "idx_tasks_status", "status"},
		{"tasks", "idx_tasks_last_updated", "last_updated"},

		// Feed indexes
		{"task_updates", "idx_task_updates_task_id", "task_id"},
		{"task_updates", "idx_task_updates_created_at", "created_at"},
		{"task_update_links", "idx_task_update_links_update_id", "task_update_id"},
		{"task_files", "idx_task_files_task_id", "task_id"},
		{"task_files", "idx_task_files_update_id", "task_update_id"},

		// Membership indexes
		{"project_members", "idx_project_members_project_id", "project_id"},
		{"project_members", "idx_project_members_user_id", "user_id"},

		// Join code lookup
		{"projects", "idx_projects_join_code", "join_code"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
