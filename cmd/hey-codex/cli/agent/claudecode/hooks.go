package claudecode

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/heycodex/cli/cmd/hey-codex/cli/agent"
	"github.com/heycodex/cli/cmd/hey-codex/cli/jsonutil"
)

// Ensure ClaudeCodeAgent implements HookSupport and HookHandler
var (
	_ agent.HookSupport = (*ClaudeCodeAgent)(nil)
	_ agent.HookHandler = (*ClaudeCodeAgent)(nil)
)

// Claude Code hook names - these become subcommands under `hey-codex hooks claude-code`
const (
	HookNameUserPromptSubmit = "user-prompt-submit"
	HookNamePreWrite         = "pre-write"
	HookNamePostWrite        = "post-write"
)

const (
	binaryCommandPrefix = "hey-codex hooks claude-code "

	// localDevCommandPrefix runs the checkout under go run. The hook's parent
	// process is then go run itself, so every call sees a new session key and
	// the edit counter never reaches the review threshold.
	localDevCommandPrefix = "go run ${CLAUDE_PROJECT_DIR}/cmd/hey-codex/main.go hooks claude-code "

	// legacyScriptMarker identifies the script-based hooks that preceded this binary.
	legacyScriptMarker = "hey-codex/hooks/"
)

// hookSpec binds a hook verb to the Claude event and matcher that trigger it.
type hookSpec struct {
	event   string
	matcher string
	verb    string
}

var hookSpecs = []hookSpec{
	{event: EventUserPromptSubmit, matcher: "", verb: HookNameUserPromptSubmit},
	{event: EventPreToolUse, matcher: WriteToolMatcher, verb: HookNamePreWrite},
	{event: EventPostToolUse, matcher: WriteToolMatcher, verb: HookNamePostWrite},
}

// GetHookNames returns the hook verbs Claude Code supports.
func (c *ClaudeCodeAgent) GetHookNames() []string {
	names := make([]string, 0, len(hookSpecs))
	for _, hs := range hookSpecs {
		names = append(names, hs.verb)
	}
	return names
}

// HookCommand returns the command line Claude Code runs for verb.
func HookCommand(verb string, localDev bool) string {
	if localDev {
		return localDevCommandPrefix + verb
	}
	return binaryCommandPrefix + verb
}

// claudeSettingsFile holds a settings.json with unknown keys preserved.
type claudeSettingsFile struct {
	path   string
	before []byte
	raw    map[string]json.RawMessage
	hooks  map[string]json.RawMessage
}

func readClaudeSettings(path string) (*claudeSettingsFile, error) {
	f := &claudeSettingsFile{
		path:  path,
		raw:   make(map[string]json.RawMessage),
		hooks: make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is constructed from project root + fixed path
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	f.before = data

	if err := json.Unmarshal(data, &f.raw); err != nil {
		return nil, fmt.Errorf("failed to parse existing %s: %w", filepath.Base(path), err)
	}
	if f.raw == nil {
		f.raw = make(map[string]json.RawMessage)
	}
	if hooksRaw, ok := f.raw["hooks"]; ok {
		if err := json.Unmarshal(hooksRaw, &f.hooks); err != nil {
			return nil, fmt.Errorf("failed to parse hooks in %s: %w", filepath.Base(path), err)
		}
		if f.hooks == nil {
			f.hooks = make(map[string]json.RawMessage)
		}
	}
	return f, nil
}

func (f *claudeSettingsFile) matchers(event string) ([]ClaudeHookMatcher, error) {
	raw, ok := f.hooks[event]
	if !ok {
		return nil, nil
	}
	var matchers []ClaudeHookMatcher
	if err := json.Unmarshal(raw, &matchers); err != nil {
		return nil, fmt.Errorf("failed to parse %s hooks: %w", event, err)
	}
	return matchers, nil
}

func (f *claudeSettingsFile) setMatchers(event string, matchers []ClaudeHookMatcher) error {
	if len(matchers) == 0 {
		delete(f.hooks, event)
		return nil
	}
	data, err := json.Marshal(matchers)
	if err != nil {
		return fmt.Errorf("failed to marshal %s hooks: %w", event, err)
	}
	f.hooks[event] = data
	return nil
}

// render returns the file content with the current hooks applied.
func (f *claudeSettingsFile) render() ([]byte, error) {
	if len(f.hooks) == 0 {
		delete(f.raw, "hooks")
	} else {
		hooksJSON, err := json.Marshal(f.hooks)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal hooks: %w", err)
		}
		f.raw["hooks"] = hooksJSON
	}
	out, err := jsonutil.MarshalIndentWithNewline(f.raw, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	return out, nil
}

func (f *claudeSettingsFile) write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o750); err != nil {
		return fmt.Errorf("failed to create .claude directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(f.path), err)
	}
	return nil
}

// InstallHooks installs the hey-codex hooks in .claude/settings.json
// (or settings.local.json). Unrelated settings and hooks are preserved.
func (c *ClaudeCodeAgent) InstallHooks(opts agent.InstallOptions) (*agent.SettingsChange, error) {
	f, err := readClaudeSettings(c.SettingsPath(opts.Local))
	if err != nil {
		return nil, err
	}

	count := 0
	for _, hs := range hookSpecs {
		matchers, err := f.matchers(hs.event)
		if err != nil {
			return nil, err
		}
		if opts.Force {
			matchers = removeHeyCodexHooks(matchers)
		}
		command := HookCommand(hs.verb, opts.LocalDev)
		if !hookCommandExistsWithMatcher(matchers, hs.matcher, command) {
			matchers = addHookToMatcher(matchers, hs.matcher, command)
			count++
		}
		if err := f.setMatchers(hs.event, matchers); err != nil {
			return nil, err
		}
	}

	return c.finish(f, count, opts.DryRun)
}

// UninstallHooks removes hey-codex hooks from the Claude settings file.
// A missing file is not an error.
func (c *ClaudeCodeAgent) UninstallHooks(opts agent.InstallOptions) (*agent.SettingsChange, error) {
	f, err := readClaudeSettings(c.SettingsPath(opts.Local))
	if err != nil {
		return nil, err
	}
	if f.before == nil {
		return &agent.SettingsChange{Path: f.path}, nil
	}

	count := 0
	for event := range f.hooks {
		matchers, err := f.matchers(event)
		if err != nil {
			return nil, err
		}
		kept := removeHeyCodexHooks(matchers)
		removed := countHooks(matchers) - countHooks(kept)
		if removed == 0 {
			continue
		}
		count += removed
		if err := f.setMatchers(event, kept); err != nil {
			return nil, err
		}
	}

	return c.finish(f, count, opts.DryRun)
}

func (c *ClaudeCodeAgent) finish(f *claudeSettingsFile, count int, dryRun bool) (*agent.SettingsChange, error) {
	change := &agent.SettingsChange{Path: f.path, Before: f.before, After: f.before, Count: count}
	if count == 0 {
		return change, nil
	}

	out, err := f.render()
	if err != nil {
		return nil, err
	}
	change.After = out

	if dryRun || !change.Changed() {
		return change, nil
	}
	if err := f.write(out); err != nil {
		return nil, err
	}
	return change, nil
}

// AreHooksInstalled checks whether any hey-codex hook is present in either
// the shared or the local Claude settings file.
func (c *ClaudeCodeAgent) AreHooksInstalled() bool {
	for _, local := range []bool{false, true} {
		f, err := readClaudeSettings(c.SettingsPath(local))
		if err != nil || f.before == nil {
			continue
		}
		for event := range f.hooks {
			matchers, err := f.matchers(event)
			if err != nil {
				continue
			}
			if countHooks(matchers) != countHooks(removeHeyCodexHooks(matchers)) {
				return true
			}
		}
	}
	return false
}

// Helper functions for hook management

func hookCommandExistsWithMatcher(matchers []ClaudeHookMatcher, matcherName, command string) bool {
	for _, matcher := range matchers {
		if matcher.Matcher != matcherName {
			continue
		}
		for _, hook := range matcher.Hooks {
			if hook.Command == command {
				return true
			}
		}
	}
	return false
}

func addHookToMatcher(matchers []ClaudeHookMatcher, matcherName, command string) []ClaudeHookMatcher {
	entry := ClaudeHookEntry{
		Type:    "command",
		Command: command,
	}

	for i, matcher := range matchers {
		if matcher.Matcher == matcherName {
			matchers[i].Hooks = append(matchers[i].Hooks, entry)
			return matchers
		}
	}

	return append(matchers, ClaudeHookMatcher{
		Matcher: matcherName,
		Hooks:   []ClaudeHookEntry{entry},
	})
}

// isHeyCodexHook reports whether command was installed by hey-codex,
// including the script-based hooks of earlier releases.
func isHeyCodexHook(command string) bool {
	return strings.HasPrefix(command, binaryCommandPrefix) ||
		strings.HasPrefix(command, localDevCommandPrefix) ||
		strings.Contains(command, legacyScriptMarker)
}

// removeHeyCodexHooks drops hey-codex entries, and any matcher left empty.
func removeHeyCodexHooks(matchers []ClaudeHookMatcher) []ClaudeHookMatcher {
	result := make([]ClaudeHookMatcher, 0, len(matchers))
	for _, matcher := range matchers {
		filtered := make([]ClaudeHookEntry, 0, len(matcher.Hooks))
		for _, hook := range matcher.Hooks {
			if !isHeyCodexHook(hook.Command) {
				filtered = append(filtered, hook)
			}
		}
		if len(filtered) > 0 {
			matcher.Hooks = filtered
			result = append(result, matcher)
		}
	}
	return result
}

func countHooks(matchers []ClaudeHookMatcher) int {
	n := 0
	for _, m := range matchers {
		n += len(m.Hooks)
	}
	return n
}
