package constants

// Session
const (
	SessionCookieName = "wm_session"
	ContextKeyUserID  = "user_id"
)

// Validation limits
const (
	MinPasswordLength = 8

	// MaxFileSizeBytes is the largest file registration accepted (10 MiB).
	MaxFileSizeBytes = 10 * 1024 * 1024
)

// JoinCodeAttempts caps how many times project creation regenerates a join
// code after a uniqueness collision before giving up.
const JoinCodeAttempts = 5

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// AllowedFileExtensions lists the file extensions accepted by file
// registration, lowercase and without the leading dot.
var AllowedFileExtensions = []string{"png", "jpg", "jpeg", "pdf", "docx", "xlsx"}
