// Package agent describes the coding agents hey-codex can advise.
// Each agent registers itself, declares its hook vocabulary and knows how to
// install those hooks into its own configuration files.
package agent

import "bytes"

// Agent identifies a coding agent.
type Agent interface {
	// Name returns the agent identifier (e.g. "claude-code").
	Name() string

	// Description returns a human-readable description for UI.
	Description() string

	// DetectPresence checks if this agent is configured in the project.
	DetectPresence() (bool, error)
}

// InstallOptions controls how hooks are written.
type InstallOptions struct {
	// Local targets the agent's uncommitted local settings file.
	Local bool
	// Force removes existing hey-codex hooks before installing.
	Force bool
	// DryRun computes the change without writing it.
	DryRun bool
	// LocalDev points hooks at `go run` of this checkout instead of the binary.
	LocalDev bool
}

// SettingsChange describes one edit to an agent configuration file.
type SettingsChange struct {
	// Path is the configuration file.
	Path string
	// Before is the file content prior to the change (nil if it did not exist).
	Before []byte
	// After is the content written, or that would be written on a dry run.
	After []byte
	// Count is the number of hook entries added or removed.
	Count int
}

// Changed reports whether the file content differs.
func (c *SettingsChange) Changed() bool {
	return c != nil && !bytes.Equal(c.Before, c.After)
}

// HookSupport is implemented by agents with lifecycle hooks.
type HookSupport interface {
	Agent

	// InstallHooks adds the hey-codex hooks to the agent configuration.
	InstallHooks(opts InstallOptions) (*SettingsChange, error)

	// UninstallHooks removes every hey-codex hook from the agent configuration.
	UninstallHooks(opts InstallOptions) (*SettingsChange, error)

	// AreHooksInstalled checks if any hey-codex hook is installed.
	AreHooksInstalled() bool
}

// HookHandler is implemented by agents that define their own hook vocabulary.
// Each verb becomes a subcommand under `hey-codex hooks <agent>`; the handlers
// themselves are registered by the cli package.
type HookHandler interface {
	Agent

	// GetHookNames returns the hook verbs this agent supports.
	GetHookNames() []string
}
