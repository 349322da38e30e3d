package council

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeEnv(vars map[string]string, wd string) Env {
	return Env{
		LookupEnv: func(key string) (string, bool) {
			v, ok := vars[key]
			return v, ok
		},
		Getwd: func() (string, error) {
			if wd == "" {
				return "", errors.New("no working directory")
			}
			return wd, nil
		},
		HomeDir: func() (string, error) {
			return "", errors.New("no home")
		},
	}
}

func writeScript(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o600))
}

func TestCandidates_Order(t *testing.T) {
	t.Parallel()

	env := fakeEnv(map[string]string{ProjectDirEnvVar: "/proj", "HOME": "/home/u"}, "/cwd")
	assert.Equal(t, []string{
		filepath.Join("/proj", ".claude", "hey-codex", "scripts", ScriptName),
		filepath.Join("/home/u", ".claude", "hey-codex", "scripts", ScriptName),
		filepath.Join("/proj", "scripts", ScriptName),
	}, Candidates(env))
}

func TestCandidates_FallsBackToWorkingDirectory(t *testing.T) {
	t.Parallel()

	env := fakeEnv(map[string]string{"HOME": "/home/u"}, "/cwd")
	got := Candidates(env)
	require.Len(t, got, 3)
	assert.Equal(t, filepath.Join("/cwd", ".claude", "hey-codex", "scripts", ScriptName), got[0])
}

func TestCandidates_EmptyProjectDirEnvIgnored(t *testing.T) {
	t.Parallel()

	env := fakeEnv(map[string]string{ProjectDirEnvVar: "", "HOME": "/home/u"}, "/cwd")
	assert.Equal(t, "/cwd", env.ProjectDir())
}

func TestResolve_FirstExistingWins(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	home := t.TempDir()
	writeScript(t, filepath.Join(home, ".claude", "hey-codex", "scripts", ScriptName))
	writeScript(t, filepath.Join(project, "scripts", ScriptName))

	env := fakeEnv(map[string]string{ProjectDirEnvVar: project, "HOME": home}, "")
	got, ok := Resolve(env)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(home, ".claude", "hey-codex", "scripts", ScriptName), got)
}

func TestResolve_ProjectScriptsFallback(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	writeScript(t, filepath.Join(project, "scripts", ScriptName))

	env := fakeEnv(map[string]string{ProjectDirEnvVar: project, "HOME": t.TempDir()}, "")
	got, ok := Resolve(env)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(project, "scripts", ScriptName), got)
}

func TestResolve_DirectoryIsNotAScript(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(project, ".claude", "hey-codex", "scripts", ScriptName), 0o750))
	writeScript(t, filepath.Join(project, "scripts", ScriptName))

	env := fakeEnv(map[string]string{ProjectDirEnvVar: project, "HOME": t.TempDir()}, "")
	got, ok := Resolve(env)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(project, "scripts", ScriptName), got)
}

func TestResolve_NotFound(t *testing.T) {
	t.Parallel()

	env := fakeEnv(map[string]string{ProjectDirEnvVar: t.TempDir(), "HOME": t.TempDir()}, "")
	got, ok := Resolve(env)
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestResolve_NoDirectoriesKnown(t *testing.T) {
	t.Parallel()

	env := fakeEnv(map[string]string{}, "")
	_, ok := Resolve(env)
	assert.False(t, ok)
}
