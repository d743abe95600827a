package models

type ProjectStatus string

const (
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusDone       ProjectStatus = "done"
	ProjectStatusBlocked    ProjectStatus = "blocked"
)

// DeriveProjectStatus computes a project's status from its tasks' statuses.
// The result is never persisted. The all-done check runs before the blocked
// check, so a done+blocked mix with nothing in progress reports blocked.
func DeriveProjectStatus(statuses []TaskStatus) ProjectStatus {
	if len(statuses) == 0 {
		return ProjectStatusInProgress
	}

	allDone := true
	anyBlocked := false
	anyDoing := false
	for _, s := range statuses {
		if s != TaskStatusDone {
			allDone = false
		}
		if s == TaskStatusBlocked {
			anyBlocked = true
		}
		if s == TaskStatusDoing {
			anyDoing = true
		}
	}

	if allDone {
		return ProjectStatusDone
	}
	if anyBlocked && !anyDoing {
		return ProjectStatusBlocked
	}
	return ProjectStatusInProgress
}
