package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/heycodex/cli/cmd/hey-codex/cli/paths"
	"github.com/heycodex/cli/cmd/hey-codex/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	t.Parallel()

	s, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
	assert.True(t, s.Enabled)
}

func TestLoadFrom_EnabledDefaultsToTrueWhenFieldMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, SettingsFile, `{"log_level": "debug"}`)

	s, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.True(t, s.Enabled)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoadFrom_LocalOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, SettingsFile, `{"enabled": true, "log_level": "info", "state_dir": "/shared", "review_threshold": 4}`)
	testutil.WriteFile(t, dir, SettingsLocalFile, `{"enabled": false, "review_threshold": 5, "log_level": ""}`)

	s, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.False(t, s.Enabled)
	assert.Equal(t, 5, s.ReviewThreshold)
	assert.Equal(t, "info", s.LogLevel, "empty local value keeps base value")
	assert.Equal(t, "/shared", s.StateDir)
}

func TestLoadFrom_NegativeThresholdMeansDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, SettingsFile, `{"review_threshold": -2}`)

	s, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Zero(t, s.ReviewThreshold)
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, SettingsFile, `{not json`)
	_, err := LoadFrom(dir)
	require.Error(t, err)

	dir = t.TempDir()
	testutil.WriteFile(t, dir, SettingsLocalFile, `{"enabled": "yes"}`)
	_, err = LoadFrom(dir)
	require.ErrorContains(t, err, "enabled")
}

func TestSetEnabled_CreatesFile(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "fresh")
	require.NoError(t, SetEnabled(dir, false, false))

	assert.JSONEq(t, `{"enabled": false}`, testutil.ReadFile(t, dir, SettingsFile))
	assert.False(t, testutil.FileExists(dir, SettingsLocalFile))

	s, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.False(t, s.Enabled)
}

func TestSetEnabled_KeepsOtherKeys(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, SettingsFile, `{"enabled": true, "review_threshold": 4, "future_key": {"a": [1, 2]}}`)

	require.NoError(t, SetEnabled(dir, false, false))

	assert.JSONEq(t, `{"enabled": false, "review_threshold": 4, "future_key": {"a": [1, 2]}}`,
		testutil.ReadFile(t, dir, SettingsFile))
}

func TestSetEnabled_DoesNotCopyLocalOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, SettingsLocalFile, `{"log_level": "debug", "state_dir": "/tmp/mine"}`)

	require.NoError(t, SetEnabled(dir, false, false))

	shared := testutil.ReadFile(t, dir, SettingsFile)
	assert.JSONEq(t, `{"enabled": false}`, shared)
	assert.NotContains(t, shared, "log_level")
	assert.JSONEq(t, `{"log_level": "debug", "state_dir": "/tmp/mine"}`, testutil.ReadFile(t, dir, SettingsLocalFile))
}

func TestSetEnabled_Local(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, SettingsFile, `{"review_threshold": 6}`)
	testutil.WriteFile(t, dir, SettingsLocalFile, `null`)

	require.NoError(t, SetEnabled(dir, true, false))

	assert.JSONEq(t, `{"enabled": false}`, testutil.ReadFile(t, dir, SettingsLocalFile))
	assert.JSONEq(t, `{"review_threshold": 6}`, testutil.ReadFile(t, dir, SettingsFile))
	assert.True(t, LocalFileExists(dir))
}

func TestSetEnabled_InvalidFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, SettingsFile, `{not json`)

	require.ErrorContains(t, SetEnabled(dir, false, true), "parsing settings file")
	assert.Equal(t, `{not json`, testutil.ReadFile(t, dir, SettingsFile))
}

func TestLoad_UsesProjectDirEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(paths.ProjectDirEnvVar, dir)
	testutil.WriteFile(t, dir, SettingsFile, `{"enabled": false}`)

	s, err := Load()
	require.NoError(t, err)
	assert.False(t, s.Enabled)
}

func TestResolvedStateDir(t *testing.T) {
	t.Setenv(paths.StateDirEnvVar, "")
	s := &Settings{StateDir: "/configured"}
	assert.Equal(t, "/configured", s.ResolvedStateDir())

	t.Setenv(paths.StateDirEnvVar, "/from-env")
	assert.Equal(t, "/from-env", s.ResolvedStateDir())

	t.Setenv(paths.StateDirEnvVar, "")
	assert.Equal(t, os.TempDir(), Defaults().ResolvedStateDir())
}
