package cli

import (
	"github.com/heycodex/cli/cmd/hey-codex/cli/agent"
	// Import agents to ensure they are registered before we iterate
	_ "github.com/heycodex/cli/cmd/hey-codex/cli/agent/claudecode"

	"github.com/spf13/cobra"
)

func newHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "hooks",
		Short:  "Hook handlers",
		Long:   "Commands called by agent hooks. These are internal and not for direct user use.",
		Hidden: true,
	}

	// Each agent that implements HookHandler gets its own subcommand tree
	for _, agentName := range agent.List() {
		ag, err := agent.Get(agentName)
		if err != nil {
			continue
		}
		if handler, ok := ag.(agent.HookHandler); ok {
			cmd.AddCommand(newAgentHooksCmd(agentName, handler))
		}
	}

	return cmd
}
