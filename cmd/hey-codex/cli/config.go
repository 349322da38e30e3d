package cli

import (
	"github.com/heycodex/cli/cmd/hey-codex/cli/settings"

	// Import claudecode to register the agent
	_ "github.com/heycodex/cli/cmd/hey-codex/cli/agent/claudecode"
)

// loadSettingsOrDefault loads project settings, falling back to defaults.
// The load error is returned so callers can report it.
func loadSettingsOrDefault() (*settings.Settings, error) {
	s, err := settings.Load()
	if err != nil {
		return settings.Defaults(), err
	}
	return s, nil
}
