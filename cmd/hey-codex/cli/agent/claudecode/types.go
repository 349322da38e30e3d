package claudecode

// Claude settings files, relative to the .claude directory.
const (
	ClaudeSettingsFileName      = "settings.json"
	ClaudeSettingsLocalFileName = "settings.local.json"
)

// Claude Code hook events hey-codex subscribes to.
const (
	EventUserPromptSubmit = "UserPromptSubmit"
	EventPreToolUse       = "PreToolUse"
	EventPostToolUse      = "PostToolUse"
)

// WriteToolMatcher selects the file-writing tools for tool-use hooks.
const WriteToolMatcher = "Edit|Write"

// ClaudeHookMatcher matches hooks to specific patterns
type ClaudeHookMatcher struct {
	Matcher string            `json:"matcher"`
	Hooks   []ClaudeHookEntry `json:"hooks"`
}

// ClaudeHookEntry represents a single hook command
type ClaudeHookEntry struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Timeout int    `json:"timeout,omitempty"`
}
