package utils

import "regexp"

var usernameRe = regexp.MustCompile(`^[a-z0-9_]{3,20}$`)

// IsAllowedUsername reports whether a (already lowercased) username matches
// the allowed pattern: a-z, 0-9 and underscore, 3 to 20 characters.
func IsAllowedUsername(username string) bool {
	return usernameRe.MatchString(username)
}
