// Package settings loads and saves the .hey-codex/settings.json configuration.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/heycodex/cli/cmd/hey-codex/cli/jsonutil"
	"github.com/heycodex/cli/cmd/hey-codex/cli/paths"
)

const (
	// SettingsFile is the path to the hey-codex settings file, relative to the project.
	SettingsFile = ".hey-codex/settings.json"
	// SettingsLocalFile is the path to the local override file (not committed).
	SettingsLocalFile = ".hey-codex/settings.local.json"
)

// Settings represents the .hey-codex/settings.json configuration.
type Settings struct {
	// Enabled controls whether hooks emit advice. When false, every hook
	// exits silently. Defaults to true.
	Enabled bool `json:"enabled"`

	// LogLevel enables the per-session debug log (debug, info, warn, error).
	// Empty means no log file. HEY_CODEX_LOG_LEVEL takes precedence.
	LogLevel string `json:"log_level,omitempty"`

	// StateDir is where counter and log files live. HEY_CODEX_STATE_DIR
	// takes precedence; empty means the OS temp directory.
	StateDir string `json:"state_dir,omitempty"`

	// ReviewThreshold is the distinct-file count that triggers a review
	// suggestion. Zero means the built-in default.
	ReviewThreshold int `json:"review_threshold,omitempty"`
}

// Defaults returns settings with every field at its default.
func Defaults() *Settings {
	return &Settings{Enabled: true}
}

// Load reads settings for the current project (see paths.ProjectDir).
func Load() (*Settings, error) {
	return LoadFrom(paths.ProjectDir())
}

// LoadFrom reads <dir>/.hey-codex/settings.json, then applies any overrides
// from settings.local.json. Missing files yield defaults.
func LoadFrom(dir string) (*Settings, error) {
	s, err := loadFromFile(filepath.Join(dir, SettingsFile))
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	localData, err := os.ReadFile(filepath.Join(dir, SettingsLocalFile)) //nolint:gosec // path is from project dir and constant
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading local settings file: %w", err)
		}
	} else {
		if err := mergeJSON(s, localData); err != nil {
			return nil, fmt.Errorf("merging local settings: %w", err)
		}
	}

	applyDefaults(s)
	return s, nil
}

func loadFromFile(filePath string) (*Settings, error) {
	s := Defaults()

	data, err := os.ReadFile(filePath) //nolint:gosec // path is from caller
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("%w", err)
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}
	return s, nil
}

// mergeJSON applies the fields present in data on top of s.
func mergeJSON(s *Settings, data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}

	if enabledRaw, ok := raw["enabled"]; ok {
		var e bool
		if err := json.Unmarshal(enabledRaw, &e); err != nil {
			return fmt.Errorf("parsing enabled field: %w", err)
		}
		s.Enabled = e
	}

	if logLevelRaw, ok := raw["log_level"]; ok {
		var ll string
		if err := json.Unmarshal(logLevelRaw, &ll); err != nil {
			return fmt.Errorf("parsing log_level field: %w", err)
		}
		if ll != "" {
			s.LogLevel = ll
		}
	}

	if stateDirRaw, ok := raw["state_dir"]; ok {
		var sd string
		if err := json.Unmarshal(stateDirRaw, &sd); err != nil {
			return fmt.Errorf("parsing state_dir field: %w", err)
		}
		if sd != "" {
			s.StateDir = sd
		}
	}

	if thresholdRaw, ok := raw["review_threshold"]; ok {
		var n int
		if err := json.Unmarshal(thresholdRaw, &n); err != nil {
			return fmt.Errorf("parsing review_threshold field: %w", err)
		}
		if n != 0 {
			s.ReviewThreshold = n
		}
	}

	return nil
}

func applyDefaults(s *Settings) {
	if s.ReviewThreshold < 0 {
		s.ReviewThreshold = 0
	}
}

// ResolvedStateDir returns the state directory after environment overrides.
func (s *Settings) ResolvedStateDir() string {
	return paths.StateDir(s.StateDir)
}

// SetEnabled writes the enabled flag to <dir>/.hey-codex/settings.json, or to
// settings.local.json when local is set. Every other key already in that file
// is kept as is, and nothing from the other file is copied in.
func SetEnabled(dir string, local, enabled bool) error {
	name := SettingsFile
	if local {
		name = SettingsLocalFile
	}
	filePath := filepath.Join(dir, name)

	var raw map[string]json.RawMessage
	data, err := os.ReadFile(filePath) //nolint:gosec // path is from project dir and constant
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("reading settings file: %w", err)
		}
	} else if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing settings file: %w", err)
	}
	if raw == nil {
		raw = make(map[string]json.RawMessage)
	}

	value, err := json.Marshal(enabled)
	if err != nil {
		return fmt.Errorf("marshaling enabled field: %w", err)
	}
	raw["enabled"] = value

	return writeFile(filePath, raw)
}

// LocalFileExists reports whether <dir>/.hey-codex/settings.local.json exists.
func LocalFileExists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, SettingsLocalFile))
	return err == nil
}

func writeFile(filePath string, v any) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o750); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	data, err := jsonutil.MarshalIndentWithNewline(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	//nolint:gosec // G306: settings file is config, not secrets; 0o644 is appropriate
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}
