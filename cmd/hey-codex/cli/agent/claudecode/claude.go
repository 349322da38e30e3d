// Package claudecode implements the Agent interface for Claude Code.
package claudecode

import (
	"os"
	"path/filepath"

	"github.com/heycodex/cli/cmd/hey-codex/cli/agent"
	"github.com/heycodex/cli/cmd/hey-codex/cli/paths"
)

//nolint:gochecknoinits // Agent self-registration is the intended pattern
func init() {
	agent.Register(agent.AgentNameClaudeCode, NewClaudeCodeAgent)
}

// ClaudeCodeAgent implements the Agent interface for Claude Code.
//
//nolint:revive // ClaudeCodeAgent is clearer than Agent in this context
type ClaudeCodeAgent struct {
	// RootDir is the project whose .claude directory is managed.
	// Empty means the repository root, or the working directory outside a repository.
	RootDir string
}

// NewClaudeCodeAgent creates a new Claude Code agent instance.
func NewClaudeCodeAgent() agent.Agent {
	return &ClaudeCodeAgent{}
}

// Name returns the agent identifier.
func (c *ClaudeCodeAgent) Name() string {
	return agent.AgentNameClaudeCode
}

// Description returns a human-readable description.
func (c *ClaudeCodeAgent) Description() string {
	return "Claude Code - Anthropic's CLI coding assistant"
}

// DetectPresence checks if the project has a .claude directory.
func (c *ClaudeCodeAgent) DetectPresence() (bool, error) {
	if _, err := os.Stat(filepath.Join(c.root(), paths.ClaudeDir)); err == nil {
		return true, nil
	}
	return false, nil
}

func (c *ClaudeCodeAgent) root() string {
	if c.RootDir != "" {
		return c.RootDir
	}
	cwd, err := os.Getwd() //nolint:forbidigo // fallback when not inside a git repository
	if err != nil {
		cwd = "."
	}
	return paths.RepoRootOr(cwd)
}

// SettingsPath returns the Claude settings file hooks are written to.
func (c *ClaudeCodeAgent) SettingsPath(local bool) string {
	name := ClaudeSettingsFileName
	if local {
		name = ClaudeSettingsLocalFileName
	}
	return filepath.Join(c.root(), paths.ClaudeDir, name)
}
