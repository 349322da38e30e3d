// Package validation provides input validation functions for hey-codex.
// This package has no dependencies to avoid import cycles.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// pathSafeRegex matches alphanumeric characters, underscores, and hyphens only.
// Used to validate keys that will be used in file names.
var pathSafeRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateSessionKey validates that a session key is safe to embed in a file name.
// Session keys name the per-session counter and log files in the state directory.
func ValidateSessionKey(key string) error {
	if key == "" {
		return errors.New("session key cannot be empty")
	}
	if !pathSafeRegex.MatchString(key) {
		return fmt.Errorf("invalid session key %q: must be alphanumeric with underscores/hyphens only", key)
	}
	return nil
}

// ValidateTrackedPath validates a file path before it is appended to a
// newline-delimited counter file.
func ValidateTrackedPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("tracked path cannot be blank")
	}
	if strings.ContainsAny(path, "\n\r") {
		return fmt.Errorf("invalid tracked path %q: contains line breaks", path)
	}
	return nil
}
