package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heycodex/cli/cmd/hey-codex/cli/agent"
	"github.com/heycodex/cli/cmd/hey-codex/cli/agent/claudecode"
	"github.com/heycodex/cli/cmd/hey-codex/cli/council"
	"github.com/heycodex/cli/cmd/hey-codex/cli/edittrack"
	"github.com/heycodex/cli/cmd/hey-codex/cli/logging"
	"github.com/heycodex/cli/cmd/hey-codex/cli/paths"
	"github.com/heycodex/cli/cmd/hey-codex/cli/settings"

	"github.com/charmbracelet/huh"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type enableOptions struct {
	local    bool
	force    bool
	dryRun   bool
	yes      bool
	localDev bool
}

// confirmFunc asks the user to approve a pending change.
type confirmFunc func(title string) (bool, error)

func newEnableCmd() *cobra.Command {
	var opts enableOptions

	cmd := &cobra.Command{
		Use:   "enable",
		Short: "Install the Claude Code hooks and enable hey-codex",
		Long: `Install the hey-codex hooks into .claude/settings.json and enable them.

Existing settings and hooks are preserved. Running enable again is safe:
hooks that are already present are not duplicated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := paths.ProjectDir()
			var confirm confirmFunc
			if isInteractive() {
				confirm = promptConfirm
			}
			return runEnable(cmd.OutOrStdout(), dir, &claudecode.ClaudeCodeAgent{RootDir: dir}, opts, confirm)
		},
	}

	cmd.Flags().BoolVar(&opts.local, "local", false, "Write to settings.local.json files instead of the shared settings")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Force reinstall hooks (removes existing hey-codex hooks first)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Show the settings change without writing it")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Do not ask for confirmation")
	cmd.Flags().BoolVar(&opts.localDev, "local-dev", false,
		"Use go run instead of the hey-codex binary for hooks (edit counts reset on every call: the session key is the short-lived go run process)")
	cmd.Flags().MarkHidden("local-dev") //nolint:errcheck,gosec // flag is defined above

	return cmd
}

func runEnable(w io.Writer, projectDir string, hs agent.HookSupport, opts enableOptions, confirm confirmFunc) error {
	installOpts := agent.InstallOptions{
		Local:    opts.local,
		Force:    opts.force,
		DryRun:   true,
		LocalDev: opts.localDev,
	}

	preview, err := hs.InstallHooks(installOpts)
	if err != nil {
		return fmt.Errorf("failed to prepare Claude Code hooks: %w", err)
	}

	target := paths.ToRelativePath(preview.Path, projectDir)

	if opts.dryRun {
		if !preview.Changed() {
			fmt.Fprintf(w, "%s already contains the hey-codex hooks.\n", target)
			return nil
		}
		fmt.Fprintf(w, "Would update %s:\n\n", target)
		fmt.Fprint(w, renderSettingsDiff(preview.Before, preview.After))
		return nil
	}

	if preview.Changed() && !opts.yes && confirm != nil {
		ok, err := confirm(fmt.Sprintf("Add %d hey-codex hook(s) to %s?", preview.Count, target))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Aborted. No files were changed.")
			return NewSilentError(errors.New("enable aborted"))
		}
	}

	installOpts.DryRun = false
	change, err := hs.InstallHooks(installOpts)
	if err != nil {
		return fmt.Errorf("failed to install Claude Code hooks: %w", err)
	}
	if change.Changed() {
		fmt.Fprintf(w, "✓ Installed %d Claude Code hook(s) in %s\n", change.Count, target)
	} else {
		fmt.Fprintf(w, "✓ Claude Code hooks already installed in %s\n", target)
	}

	if err := settings.SetEnabled(projectDir, opts.local, true); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	// A local file written by disable still overrides the shared one.
	if !opts.local && settings.LocalFileExists(projectDir) {
		s, err := settings.LoadFrom(projectDir)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		if !s.Enabled {
			if err := settings.SetEnabled(projectDir, true, true); err != nil {
				return fmt.Errorf("failed to save local settings: %w", err)
			}
		}
	}
	fmt.Fprintln(w, "hey-codex is enabled.")
	return nil
}

func newDisableCmd() *cobra.Command {
	var useProjectSettings bool
	var uninstall bool

	cmd := &cobra.Command{
		Use:   "disable",
		Short: "Disable hey-codex",
		Long: `Disable hey-codex in the current project. Hooks stay installed but
exit silently until 'hey-codex enable' is run again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := paths.ProjectDir()
			return runDisable(cmd.OutOrStdout(), dir, &claudecode.ClaudeCodeAgent{RootDir: dir}, useProjectSettings, uninstall)
		},
	}

	cmd.Flags().BoolVar(&useProjectSettings, "project", false, "Write to settings.json even if settings.local.json exists")
	cmd.Flags().BoolVar(&uninstall, "uninstall", false, "Also remove the hey-codex hooks from the Claude settings files")

	return cmd
}

func runDisable(w io.Writer, projectDir string, hs agent.HookSupport, useProjectSettings, uninstall bool) error {
	// An existing local file would override the shared one.
	local := !useProjectSettings && settings.LocalFileExists(projectDir)
	if err := settings.SetEnabled(projectDir, local, false); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Fprintln(w, "hey-codex is now disabled.")

	if !uninstall {
		return nil
	}
	for _, localFile := range []bool{false, true} {
		change, err := hs.UninstallHooks(agent.InstallOptions{Local: localFile})
		if err != nil {
			return fmt.Errorf("failed to remove Claude Code hooks: %w", err)
		}
		if change.Changed() {
			fmt.Fprintf(w, "✓ Removed %d hook(s) from %s\n", change.Count, paths.ToRelativePath(change.Path, projectDir))
		}
	}
	return nil
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show hey-codex status",
		Long:  "Show whether hey-codex is enabled, where its hooks are installed, and where it keeps state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := paths.ProjectDir()
			return runStatus(cmd.OutOrStdout(), dir, council.OSEnv(), &claudecode.ClaudeCodeAgent{RootDir: dir})
		},
	}
}

func runStatus(w io.Writer, projectDir string, env council.Env, hs agent.HookSupport) error {
	s, err := settings.LoadFrom(projectDir)
	if err != nil {
		return fmt.Errorf("failed to check status: %w", err)
	}
	present, err := hs.DetectPresence()
	if err != nil {
		return fmt.Errorf("failed to check status: %w", err)
	}

	if s.Enabled {
		fmt.Fprintln(w, "● enabled")
	} else {
		fmt.Fprintln(w, "○ disabled")
	}

	switch {
	case hs.AreHooksInstalled():
		fmt.Fprintf(w, "  hooks:            %s\n", hs.Name())
	case present:
		fmt.Fprintln(w, "  hooks:            not installed (run `hey-codex enable`)")
	default:
		fmt.Fprintf(w, "  hooks:            not installed, no %s directory (run `hey-codex enable`)\n", paths.ClaudeDir)
	}

	if helper, found := council.Resolve(env); found {
		fmt.Fprintf(w, "  council.sh:       %s\n", helper)
	} else {
		fmt.Fprintln(w, "  council.sh:       not found")
		for _, candidate := range council.Candidates(env) {
			fmt.Fprintf(w, "                    searched %s\n", candidate)
		}
	}

	fmt.Fprintf(w, "  state dir:        %s\n", s.ResolvedStateDir())
	fmt.Fprintf(w, "  review threshold: %d\n", edittrack.NewTracker(nil, s.ReviewThreshold).Threshold())

	level := strings.TrimSpace(os.Getenv(logging.LogLevelEnvVar))
	if level == "" {
		level = s.LogLevel
	}
	if level == "" {
		level = "off"
	}
	fmt.Fprintf(w, "  log level:        %s\n", level)
	return nil
}

// renderSettingsDiff returns a line diff of before and after, with "+ " and
// "- " marking added and removed lines.
func renderSettingsDiff(before, after []byte) string {
	dmp := diffmatchpatch.New()

	text1, text2, lineArray := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffMain(text1, text2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffEqual:
		}
		for _, line := range splitLines(d.Text) {
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func promptConfirm(title string) (bool, error) {
	confirmed := true

	form := NewAccessibleForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get confirmation: %w", err)
	}
	return confirmed, nil
}
