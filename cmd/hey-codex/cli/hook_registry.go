package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/heycodex/cli/cmd/hey-codex/cli/agent"
	"github.com/heycodex/cli/cmd/hey-codex/cli/agent/claudecode"
	"github.com/heycodex/cli/cmd/hey-codex/cli/council"
	"github.com/heycodex/cli/cmd/hey-codex/cli/edittrack"
	"github.com/heycodex/cli/cmd/hey-codex/cli/logging"
	"github.com/heycodex/cli/cmd/hey-codex/cli/settings"

	"github.com/spf13/cobra"
)

// HookContext is the per-invocation state handed to a hook handler.
type HookContext struct {
	Stdin  io.Reader
	Stdout io.Writer

	Settings *settings.Settings
	Env      council.Env

	// SessionKey identifies the host session (the parent process id).
	SessionKey string
	Store      edittrack.Store
}

// HookHandlerFunc is a function that handles a specific hook event.
type HookHandlerFunc func(ctx context.Context, hc *HookContext) error

// hookRegistry maps (agentName, hookName) to handler functions.
// Agents define their hook vocabulary; handler logic lives in this package.
var hookRegistry = map[string]map[string]HookHandlerFunc{}

// RegisterHookHandler registers a handler for an agent's hook.
func RegisterHookHandler(agentName, hookName string, handler HookHandlerFunc) {
	if hookRegistry[agentName] == nil {
		hookRegistry[agentName] = make(map[string]HookHandlerFunc)
	}
	hookRegistry[agentName][hookName] = handler
}

// GetHookHandler returns the handler for an agent's hook, or nil if not found.
func GetHookHandler(agentName, hookName string) HookHandlerFunc {
	if handlers, ok := hookRegistry[agentName]; ok {
		return handlers[hookName]
	}
	return nil
}

//nolint:gochecknoinits // Hook handler registration at startup is the intended pattern
func init() {
	RegisterHookHandler(agent.AgentNameClaudeCode, claudecode.HookNameUserPromptSubmit, handleUserPromptSubmit)
	RegisterHookHandler(agent.AgentNameClaudeCode, claudecode.HookNamePreWrite, handlePreWrite)
	RegisterHookHandler(agent.AgentNameClaudeCode, claudecode.HookNamePostWrite, handlePostWrite)
}

// newHookContext assembles the production HookContext for cmd. A settings
// load failure yields defaults plus the error for logging.
func newHookContext(cmd *cobra.Command) (*HookContext, error) {
	s, err := loadSettingsOrDefault()
	return &HookContext{
		Stdin:      cmd.InOrStdin(),
		Stdout:     cmd.OutOrStdout(),
		Settings:   s,
		Env:        council.OSEnv(),
		SessionKey: strconv.Itoa(os.Getppid()),
		Store:      edittrack.NewFileStore(s.ResolvedStateDir()),
	}, err
}

// initHookLogging opens the per-session log when a level is configured.
// It returns the cleanup function to run when the hook finishes.
func initHookLogging(hc *HookContext) func() {
	logging.SetLogLevelGetter(func() string { return hc.Settings.LogLevel })
	if err := logging.Init(hc.Settings.ResolvedStateDir(), hc.SessionKey); err != nil {
		return func() {}
	}
	return logging.Close
}

// newAgentHooksCmd creates a hooks subcommand for an agent that implements HookHandler.
func newAgentHooksCmd(agentName string, handler agent.HookHandler) *cobra.Command {
	cmd := &cobra.Command{
		Use:    agentName,
		Short:  handler.Description() + " hook handlers",
		Hidden: true,
	}

	for _, hookName := range handler.GetHookNames() {
		cmd.AddCommand(newAgentHookVerbCmdWithLogging(agentName, hookName))
	}

	return cmd
}

// newAgentHookVerbCmdWithLogging creates the command for one hook verb.
// Hooks are advisory: every failure is logged and the command still exits 0.
func newAgentHookVerbCmdWithLogging(agentName, hookName string) *cobra.Command {
	return &cobra.Command{
		Use:   hookName,
		Short: "Called on " + hookName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hc, settingsErr := newHookContext(cmd)
			cleanup := initHookLogging(hc)
			defer cleanup()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if settingsErr != nil {
				logging.Warn(ctx, "settings unreadable, using defaults",
					slog.String("error", settingsErr.Error()))
			}

			runHook(ctx, agentName, hookName, hc)
			return nil
		},
	}
}

// runHook dispatches one hook invocation. It never fails.
func runHook(ctx context.Context, agentName, hookName string, hc *HookContext) {
	start := time.Now()

	ctx = logging.WithComponent(ctx, "hooks")
	ctx = logging.WithAgent(ctx, agentName)
	ctx = logging.WithHook(ctx, hookName)
	ctx = logging.WithInvocation(ctx, uuid.NewString())
	ctx = logging.WithSessionKey(ctx, hc.SessionKey)

	logging.Debug(ctx, "hook invoked")

	if hc.Settings != nil && !hc.Settings.Enabled {
		logging.Debug(ctx, "hey-codex disabled, skipping hook")
		return
	}

	handler := GetHookHandler(agentName, hookName)
	if handler == nil {
		logging.Error(ctx, "no handler registered")
		return
	}

	hookErr := handler(ctx, hc)
	if hookErr != nil {
		logging.Warn(ctx, "hook failed", slog.String("error", hookErr.Error()))
	}

	logging.LogDuration(ctx, slog.LevelDebug, "hook completed", start,
		slog.Bool("success", hookErr == nil),
	)
}
