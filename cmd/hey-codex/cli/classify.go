package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/heycodex/cli/cmd/hey-codex/cli/council"
	"github.com/heycodex/cli/cmd/hey-codex/cli/routing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// classifyKind selects which classifier `hey-codex classify` runs.
type classifyKind string

const (
	classifyPrompt    classifyKind = "prompt"
	classifyWrite     classifyKind = "write"
	classifyPostWrite classifyKind = "post-write"
)

var _ pflag.Value = (*classifyKind)(nil)

func (k *classifyKind) String() string { return string(*k) }

func (k *classifyKind) Set(v string) error {
	switch classifyKind(v) {
	case classifyPrompt, classifyWrite, classifyPostWrite:
		*k = classifyKind(v)
		return nil
	default:
		return fmt.Errorf("must be one of %s, %s, %s", classifyPrompt, classifyWrite, classifyPostWrite)
	}
}

func (k *classifyKind) Type() string { return "kind" }

func newClassifyCmd() *cobra.Command {
	kind := classifyPrompt

	cmd := &cobra.Command{
		Use:   "classify <text-or-path>...",
		Short: "Show how a prompt or file path would be routed",
		Long: `Run the routing rules against a prompt or file path and print the result.

Nothing is read from stdin and no edit is recorded, so this is safe to use
while tuning a project.`,
		Example: `  hey-codex classify "write a bash script to rotate logs"
  hey-codex classify --as write Dockerfile
  hey-codex classify --as post-write src/api/auth/login.ts`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd.OutOrStdout(), kind, strings.Join(args, " "), council.OSEnv())
		},
	}

	cmd.Flags().Var(&kind, "as", "Classifier to run: prompt, write or post-write")
	//nolint:errcheck,gosec // completion is optional, flag is defined above
	cmd.RegisterFlagCompletionFunc("as", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(classifyPrompt), string(classifyWrite), string(classifyPostWrite)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runClassify(w io.Writer, kind classifyKind, input string, env council.Env) error {
	var message string

	switch kind {
	case classifyPrompt:
		c := routing.ClassifyPrompt(input, routing.PromptKeywordSets)
		if c.Tier == routing.TierMust {
			if helper, found := council.Resolve(env); found {
				c.HelperPath = helper
			}
		}
		printClassification(w, c)
		message = routing.PromptMessage(c)
	case classifyWrite:
		c := routing.ClassifyWritePath(input, routing.WritePathRules)
		printClassification(w, c)
		message = routing.WritePathMessage(c, input)
	case classifyPostWrite:
		label, ok := routing.VerifyLabel(input, routing.SensitivePathRules)
		if ok {
			fmt.Fprintln(w, "verify:  yes")
			fmt.Fprintf(w, "label:   %s\n", label)
			message = routing.VerifyMessage(label)
		} else {
			fmt.Fprintln(w, "verify:  no")
		}
	default:
		return fmt.Errorf("unknown classifier %q", kind)
	}

	if message == "" {
		fmt.Fprintln(w, "message: (none)")
		return nil
	}
	fmt.Fprintln(w, "message:")
	fmt.Fprintln(w, message)
	return nil
}

func printClassification(w io.Writer, c routing.Classification) {
	fmt.Fprintf(w, "tier:    %s\n", c.Tier)
	if c.Trigger != "" {
		fmt.Fprintf(w, "trigger: %s\n", c.Trigger)
	}
	if c.Label != "" {
		fmt.Fprintf(w, "label:   %s\n", c.Label)
	}
}
