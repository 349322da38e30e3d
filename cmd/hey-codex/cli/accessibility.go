package cli

import (
	"os"

	"github.com/charmbracelet/huh"
)

// AccessibleEnvVar switches interactive forms to plain line-based prompts.
const AccessibleEnvVar = "ACCESSIBLE"

// IsAccessibleMode reports whether ACCESSIBLE is set to a non-empty value.
func IsAccessibleMode() bool {
	return os.Getenv(AccessibleEnvVar) != ""
}

// NewAccessibleForm creates a huh form that honours accessible mode.
func NewAccessibleForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithAccessible(IsAccessibleMode())
}
