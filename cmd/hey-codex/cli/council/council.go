// Package council locates the council.sh helper script that advisory
// messages point the user at.
package council

import (
	"os"
	"path/filepath"
)

// ScriptName is the helper script file name.
const ScriptName = "council.sh"

// ProjectDirEnvVar names the project root exported by Claude Code to hooks.
const ProjectDirEnvVar = "CLAUDE_PROJECT_DIR"

// Env is the slice of the process environment that resolution depends on.
type Env struct {
	LookupEnv func(key string) (string, bool)
	Getwd     func() (string, error)
	HomeDir   func() (string, error)
}

// OSEnv returns an Env backed by the real process environment.
func OSEnv() Env {
	return Env{
		LookupEnv: os.LookupEnv,
		Getwd:     os.Getwd,
		HomeDir:   os.UserHomeDir,
	}
}

// ProjectDir returns $CLAUDE_PROJECT_DIR, or the working directory when unset.
// It returns "" when neither is available.
func (e Env) ProjectDir() string {
	if e.LookupEnv != nil {
		if dir, ok := e.LookupEnv(ProjectDirEnvVar); ok && dir != "" {
			return dir
		}
	}
	if e.Getwd != nil {
		if wd, err := e.Getwd(); err == nil {
			return wd
		}
	}
	return ""
}

// Home returns $HOME, falling back to the user's home directory.
func (e Env) Home() string {
	if e.LookupEnv != nil {
		if home, ok := e.LookupEnv("HOME"); ok && home != "" {
			return home
		}
	}
	if e.HomeDir != nil {
		if home, err := e.HomeDir(); err == nil {
			return home
		}
	}
	return ""
}

// Candidates returns the locations searched for the helper, in order.
// Locations whose base directory is unknown are omitted.
func Candidates(env Env) []string {
	project := env.ProjectDir()
	home := env.Home()

	var out []string
	if project != "" {
		out = append(out, filepath.Join(project, ".claude", "hey-codex", "scripts", ScriptName))
	}
	if home != "" {
		out = append(out, filepath.Join(home, ".claude", "hey-codex", "scripts", ScriptName))
	}
	if project != "" {
		out = append(out, filepath.Join(project, "scripts", ScriptName))
	}
	return out
}

// Resolve returns the first candidate that exists as a regular file.
// Stat failures count as "not there" and the search moves on.
func Resolve(env Env) (string, bool) {
	for _, candidate := range Candidates(env) {
		info, err := os.Stat(candidate)
		if err != nil {
			continue
		}
		if info.Mode().IsRegular() {
			return candidate, true
		}
	}
	return "", false
}
