// Package paths resolves the directories hey-codex reads and writes.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
)

// Directory constants
const (
	HeyCodexDir = ".hey-codex"
	ClaudeDir   = ".claude"
)

// Environment variables
const (
	// StateDirEnvVar overrides the directory holding counter and log files.
	StateDirEnvVar = "HEY_CODEX_STATE_DIR"
	// ProjectDirEnvVar is set by Claude Code for every hook invocation.
	ProjectDirEnvVar = "CLAUDE_PROJECT_DIR"
)

// repoRootCache is keyed by working directory.
var (
	repoRootMu       sync.RWMutex
	repoRootCache    string
	repoRootCacheDir string
)

// RepoRoot returns the root of the git worktree containing the working
// directory. It walks up parent directories the way `git rev-parse
// --show-toplevel` does. The result is cached per working directory.
func RepoRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	repoRootMu.RLock()
	if repoRootCache != "" && repoRootCacheDir == cwd {
		cached := repoRootCache
		repoRootMu.RUnlock()
		return cached, nil
	}
	repoRootMu.RUnlock()

	root, err := repoRootFrom(cwd)
	if err != nil {
		return "", err
	}

	repoRootMu.Lock()
	repoRootCache = root
	repoRootCacheDir = cwd
	repoRootMu.Unlock()

	return root, nil
}

func repoRootFrom(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("failed to find git repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return "", fmt.Errorf("repository at %s has no worktree: %w", dir, err)
		}
		return "", fmt.Errorf("opening worktree: %w", err)
	}
	return wt.Filesystem.Root(), nil
}

// RepoRootOr returns the repository root, or fallback outside a repository.
func RepoRootOr(fallback string) string {
	root, err := RepoRoot()
	if err != nil {
		return fallback
	}
	return root
}

// ProjectDir returns the directory hey-codex treats as the project:
// $CLAUDE_PROJECT_DIR when set, else the repository root, else the working
// directory.
func ProjectDir() string {
	if dir := strings.TrimSpace(os.Getenv(ProjectDirEnvVar)); dir != "" {
		return dir
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return RepoRootOr(cwd)
}

// StateDir returns the directory for the edit counter and log files:
// $HEY_CODEX_STATE_DIR, then configured, then the OS temp directory.
func StateDir(configured string) string {
	if dir := strings.TrimSpace(os.Getenv(StateDirEnvVar)); dir != "" {
		return dir
	}
	if dir := strings.TrimSpace(configured); dir != "" {
		return dir
	}
	return os.TempDir()
}

// ToRelativePath converts an absolute path to one relative to base.
// Returns absPath unchanged when it lies outside base.
func ToRelativePath(absPath, base string) string {
	if !filepath.IsAbs(absPath) {
		return absPath
	}
	rel, err := filepath.Rel(base, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return absPath
	}
	return rel
}
