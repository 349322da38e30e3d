package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

const gettingStarted = `

Getting Started:
  Run 'hey-codex enable' inside a project to install the Claude Code hooks.
  Claude Code then calls 'hey-codex hooks claude-code <verb>' on every prompt
  and file write, and hey-codex suggests when to hand work to Codex CLI.

`

const environmentHelp = `
Environment Variables:
  HEY_CODEX_STATE_DIR   Directory for edit counters and logs (default: OS temp dir)
  HEY_CODEX_LOG_LEVEL   Enable the hook log at this level (debug, info, warn, error)
  ACCESSIBLE            Set to any value to use plain prompts instead of TUI forms
`

// Version information (can be set at build time)
var (
	Version = "dev"
	Commit  = "unknown"
)

// NewRootCmd builds the hey-codex command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hey-codex",
		Short: "Suggest when to delegate work from Claude Code to Codex CLI",
		Long:  "Advisory hooks that suggest delegating work to Codex CLI" + gettingStarted + environmentHelp,
		// Let main.go handle error printing to avoid duplication
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newEnableCmd())
	cmd.AddCommand(newDisableCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newClassifyCmd())
	cmd.AddCommand(newHooksCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "hey-codex %s (%s)\n", Version, Commit)
			fmt.Fprintf(w, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(w, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
